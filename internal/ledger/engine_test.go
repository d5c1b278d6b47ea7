package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-backend/internal/models"
)

func tx(id, date string, createdAt time.Time, typ models.SupplierTransactionType, amount float64) *models.SupplierTransaction {
	return &models.SupplierTransaction{
		ID:        id,
		Date:      date,
		Type:      typ,
		Amount:    amount,
		CreatedAt: createdAt,
	}
}

func TestChronologicalTieBreaks(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Second)

	txs := []*models.SupplierTransaction{
		tx("c", "2025-01-05", t1, models.SupplierTxTruck, 1),
		tx("b", "2025-01-05", t0, models.SupplierTxTruck, 1), // same date, earlier insert
		tx("a", "2025-01-04", t1, models.SupplierTxTruck, 1), // earlier date wins over timestamp
		tx("e", "2025-01-05", t1, models.SupplierTxTruck, 1), // full tie, id decides
	}

	got := Chronological(txs)
	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []string{"a", "b", "c", "e"}, ids)

	// input order is untouched
	assert.Equal(t, "c", txs[0].ID)
}

func TestWithBalancesRunningBalance(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	rows := WithBalances(1000, []*models.SupplierTransaction{
		tx("t1", "2025-01-05", t0, models.SupplierTxTruck, 500),
		tx("p1", "2025-01-05", t0.Add(time.Second), models.SupplierTxPayment, 200),
	})
	require.Len(t, rows, 2)
	assert.InDelta(t, 1500, rows[0].BalanceAfter, 1e-9)
	assert.InDelta(t, 1300, rows[1].BalanceAfter, 1e-9)
}

func TestWithBalancesEmpty(t *testing.T) {
	assert.Empty(t, WithBalances(250, nil))
}

func TestDisplayOrderKeepsChronologicalBalances(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	rows := WithBalances(0, []*models.SupplierTransaction{
		tx("t1", "2025-01-01", t0, models.SupplierTxTruck, 100),
		tx("t2", "2025-01-02", t0, models.SupplierTxTruck, 50),
		tx("p1", "2025-01-03", t0, models.SupplierTxPayment, 30),
	})
	disp := DisplayOrder(rows)
	require.Len(t, disp, 3)
	assert.Equal(t, "p1", disp[0].ID)
	assert.InDelta(t, 120, disp[0].BalanceAfter, 1e-9)
	assert.Equal(t, "t1", disp[2].ID)
	assert.InDelta(t, 100, disp[2].BalanceAfter, 1e-9)
}

func TestSummarize(t *testing.T) {
	t0 := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	sup := &models.Supplier{OpeningBalance: 1000}

	txs := []*models.SupplierTransaction{
		tx("t1", "2025-01-05", t0, models.SupplierTxTruck, 500),
		tx("p1", "2025-01-06", t0, models.SupplierTxPayment, 200),
		tx("t2", "2025-01-07", t0, models.SupplierTxTruck, 300),
	}
	txs[0].Quantity = 120
	txs[2].Quantity = 80

	sum := Summarize(sup, txs)
	assert.Equal(t, 2, sum.TotalTrucks)
	assert.InDelta(t, 800, sum.TotalMaterialAmount, 1e-9)
	assert.InDelta(t, 200, sum.TotalMaterialQuantity, 1e-9)
	assert.InDelta(t, 200, sum.TotalPaid, 1e-9)
	assert.InDelta(t, 1600, sum.Balance, 1e-9)

	// the summary balance is the last chronological running balance
	rows := WithBalances(sup.OpeningBalance, txs)
	assert.InDelta(t, rows[len(rows)-1].BalanceAfter, sum.Balance, 1e-9)
}

func TestSummarizeEmptyLedger(t *testing.T) {
	sum := Summarize(&models.Supplier{OpeningBalance: 750}, nil)
	assert.InDelta(t, 750, sum.Balance, 1e-9)
	assert.Zero(t, sum.TotalTrucks)
}
