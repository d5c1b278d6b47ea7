// Package ledger derives supplier running balances from raw transaction rows.
//
// Everything here is a pure function over an immutable snapshot: balances are
// recomputed on every read and never persisted, so editing or deleting a
// historical transaction can never leave a stale balance behind.
package ledger

import (
	"sort"

	"ops-backend/internal/models"
)

// Row is a supplier transaction with its derived running balance
type Row struct {
	models.SupplierTransaction
	BalanceAfter float64 `json:"balance_after"`
}

// Summary aggregates a supplier's full ledger
type Summary struct {
	TotalTrucks           int     `json:"total_trucks"`
	TotalMaterialAmount   float64 `json:"total_material_amount"`
	TotalMaterialQuantity float64 `json:"total_material_quantity"`
	TotalPaid             float64 `json:"total_paid"`
	Balance               float64 `json:"balance"` // opening + material - paid
}

// less orders two transactions chronologically: calendar date first, then
// insertion timestamp, then id. The id comparison is arbitrary but stable;
// it only decides ties between rows inserted in the same clock tick.
func less(a, b *models.SupplierTransaction) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Chronological returns the transactions sorted ascending by
// (date, created_at, id). The input slice is not modified.
func Chronological(txs []*models.SupplierTransaction) []*models.SupplierTransaction {
	out := make([]*models.SupplierTransaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// WithBalances walks the transactions in chronological order, accumulating
// the running balance from the opening balance: truck rows add their amount,
// payment rows subtract theirs. The returned rows are in chronological order.
func WithBalances(openingBalance float64, txs []*models.SupplierTransaction) []Row {
	ordered := Chronological(txs)
	rows := make([]Row, 0, len(ordered))
	balance := openingBalance
	for _, tx := range ordered {
		switch tx.Type {
		case models.SupplierTxTruck:
			balance += tx.Amount
		case models.SupplierTxPayment:
			balance -= tx.Amount
		}
		rows = append(rows, Row{SupplierTransaction: *tx, BalanceAfter: balance})
	}
	return rows
}

// DisplayOrder re-sorts computed rows most-recent-first for presentation.
// Each row keeps the balance it was assigned chronologically.
func DisplayOrder(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[j].SupplierTransaction, &out[i].SupplierTransaction)
	})
	return out
}

// Summarize aggregates the ledger. The resulting Balance always equals the
// BalanceAfter of the chronologically last row (or the opening balance for an
// empty ledger).
func Summarize(s *models.Supplier, txs []*models.SupplierTransaction) Summary {
	sum := Summary{}
	for _, tx := range txs {
		switch tx.Type {
		case models.SupplierTxTruck:
			sum.TotalTrucks++
			sum.TotalMaterialAmount += tx.Amount
			sum.TotalMaterialQuantity += tx.Quantity
		case models.SupplierTxPayment:
			sum.TotalPaid += tx.Amount
		}
	}
	sum.Balance = s.OpeningBalance + sum.TotalMaterialAmount - sum.TotalPaid
	return sum
}
