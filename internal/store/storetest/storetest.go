// Package storetest holds the backend contract suite. Every Store
// implementation must pass it unchanged; the file and postgres backends are
// interchangeable exactly as far as this suite proves.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ops-backend/internal/models"
	"ops-backend/internal/store"
)

// Factory returns a fresh, empty store for one subtest. Implementations own
// cleanup (temp dirs, table truncation) via t.Cleanup.
type Factory func(t *testing.T) store.Store

// Deps returns deterministic dependencies: a clock that advances one second
// per call from a fixed origin, and sequential ids. Sequential ids keep the
// (date, created_at, id) tie-break stable across backends.
func Deps() store.Deps {
	var mu sync.Mutex
	var ticks, ids int
	base := time.Date(2025, time.January, 2, 6, 0, 0, 0, time.UTC)
	return store.Deps{
		Clock: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			ticks++
			return base.Add(time.Duration(ticks) * time.Second)
		},
		NewID: func() string {
			mu.Lock()
			defer mu.Unlock()
			ids++
			return fmt.Sprintf("id-%06d", ids)
		},
	}
}

// Run drives the full contract against one backend.
func Run(t *testing.T, open Factory) {
	t.Run("Authenticate", func(t *testing.T) { testAuthenticate(t, open(t)) })
	t.Run("SupplierCRUD", func(t *testing.T) { testSupplierCRUD(t, open(t)) })
	t.Run("DeliveryAndStatement", func(t *testing.T) { testDeliveryAndStatement(t, open(t)) })
	t.Run("LinkedPairDeletion", func(t *testing.T) { testLinkedPairDeletion(t, open(t)) })
	t.Run("EmployeesAndAttendance", func(t *testing.T) { testEmployeesAndAttendance(t, open(t)) })
	t.Run("AdvancesAndAdjustment", func(t *testing.T) { testAdvancesAndAdjustment(t, open(t)) })
	t.Run("SalaryLedgerAndSlip", func(t *testing.T) { testSalaryLedgerAndSlip(t, open(t)) })
	t.Run("FlatLedgers", func(t *testing.T) { testFlatLedgers(t, open(t)) })
	t.Run("Billing", func(t *testing.T) { testBilling(t, open(t)) })
	t.Run("Dashboard", func(t *testing.T) { testDashboard(t, open(t)) })
}

func testAuthenticate(t *testing.T, s store.Store) {
	ctx := context.Background()

	u, err := s.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
	assert.Equal(t, "admin", u.Role)

	_, err = s.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody", "admin123")
	assert.ErrorIs(t, err, store.ErrInvalidCredentials)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func testSupplierCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.CreateSupplier(ctx, &models.CreateSupplierRequest{Name: ""})
	assert.True(t, store.IsValidation(err), "empty name must fail validation, got %v", err)

	b, err := s.CreateSupplier(ctx, &models.CreateSupplierRequest{Name: "Bharat Traders", OpeningBalance: 250})
	require.NoError(t, err)
	a, err := s.CreateSupplier(ctx, &models.CreateSupplierRequest{Name: "Anand Suppliers", Phone: "9876500000"})
	require.NoError(t, err)

	got, err := s.GetSupplier(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.OpeningBalance)

	list, err := s.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID, "suppliers list by name")
	assert.Equal(t, b.ID, list[1].ID)

	upd, err := s.UpdateSupplier(ctx, a.ID, &models.UpdateSupplierRequest{Name: "Anand Suppliers", MaterialType: "bardana"})
	require.NoError(t, err)
	assert.Equal(t, "bardana", upd.MaterialType)

	_, err = s.GetSupplier(ctx, "missing")
	assert.True(t, store.IsNotFound(err))

	// deleting a supplier takes its transactions with it
	_, err = s.RecordDelivery(ctx, b.ID, &models.RecordDeliveryRequest{Date: "2025-01-10", Amount: 100})
	require.NoError(t, err)
	require.NoError(t, s.DeleteSupplier(ctx, b.ID))
	_, err = s.GetSupplier(ctx, b.ID)
	assert.True(t, store.IsNotFound(err))
	_, err = s.ListSupplierTransactions(ctx, b.ID)
	assert.True(t, store.IsNotFound(err))

	assert.True(t, store.IsNotFound(s.DeleteSupplier(ctx, b.ID)))
}

func testDeliveryAndStatement(t *testing.T, s store.Store) {
	ctx := context.Background()

	sup, err := s.CreateSupplier(ctx, &models.CreateSupplierRequest{Name: "Ganga Bardana", OpeningBalance: 1000})
	require.NoError(t, err)

	// paid_now above the truck amount never passes validation
	_, err = s.RecordDelivery(ctx, sup.ID, &models.RecordDeliveryRequest{Date: "2025-01-05", Amount: 500, PaidNow: 600})
	assert.True(t, store.IsValidation(err))

	res, err := s.RecordDelivery(ctx, sup.ID, &models.RecordDeliveryRequest{
		Date: "2025-01-05", Amount: 500, PaidNow: 200,
		TruckNumber: "UP32 AB 1234", Material: "bardana", Quantity: 120, Rate: 4.1,
		PaymentMode: "cash",
	})
	require.NoError(t, err)
	require.NotNil(t, res.AutoPayment)
	assert.Equal(t, models.SupplierTxTruck, res.Truck.Type)
	assert.Equal(t, models.SupplierTxPayment, res.AutoPayment.Type)
	assert.Equal(t, 200.0, res.AutoPayment.Amount)
	assert.True(t, res.AutoPayment.IsAutoPayment)
	assert.Equal(t, res.Truck.ID, res.AutoPayment.LinkedTransactionID)

	// no auto payment without paid_now
	res2, err := s.RecordDelivery(ctx, sup.ID, &models.RecordDeliveryRequest{Date: "2025-01-08", Amount: 300})
	require.NoError(t, err)
	assert.Nil(t, res2.AutoPayment)

	pay, err := s.RecordSupplierPayment(ctx, sup.ID, &models.RecordSupplierPaymentRequest{
		Date: "2025-01-09", Amount: 400, PaymentMode: "upi", PaymentRef: "UPI123",
	})
	require.NoError(t, err)
	assert.False(t, pay.IsAutoPayment)

	txs, err := s.ListSupplierTransactions(ctx, sup.ID)
	require.NoError(t, err)
	require.Len(t, txs, 4)
	// chronological: truck(05), auto payment(05), truck(08), payment(09)
	assert.Equal(t, res.Truck.ID, txs[0].ID)
	assert.Equal(t, res.AutoPayment.ID, txs[1].ID)
	assert.Equal(t, res2.Truck.ID, txs[2].ID)
	assert.Equal(t, pay.ID, txs[3].ID)

	st, err := s.SupplierStatement(ctx, sup.ID)
	require.NoError(t, err)
	require.Len(t, st.Rows, 4)
	// display order is newest first, balances assigned chronologically:
	// 1000 +500 = 1500, -200 = 1300, +300 = 1600, -400 = 1200
	assert.Equal(t, pay.ID, st.Rows[0].ID)
	assert.InDelta(t, 1200, st.Rows[0].BalanceAfter, 1e-9)
	assert.InDelta(t, 1600, st.Rows[1].BalanceAfter, 1e-9)
	assert.InDelta(t, 1300, st.Rows[2].BalanceAfter, 1e-9)
	assert.InDelta(t, 1500, st.Rows[3].BalanceAfter, 1e-9)

	assert.Equal(t, 2, st.Summary.TotalTrucks)
	assert.InDelta(t, 800, st.Summary.TotalMaterialAmount, 1e-9)
	assert.InDelta(t, 120, st.Summary.TotalMaterialQuantity, 1e-9)
	assert.InDelta(t, 600, st.Summary.TotalPaid, 1e-9)
	assert.InDelta(t, 1200, st.Summary.Balance, 1e-9)
	assert.InDelta(t, st.Rows[0].BalanceAfter, st.Summary.Balance, 1e-9)

	_, err = s.SupplierStatement(ctx, "missing")
	assert.True(t, store.IsNotFound(err))
}

func testLinkedPairDeletion(t *testing.T, s store.Store) {
	ctx := context.Background()

	sup, err := s.CreateSupplier(ctx, &models.CreateSupplierRequest{Name: "Jai Kisan"})
	require.NoError(t, err)

	// deleting the truck row removes its auto payment
	res, err := s.RecordDelivery(ctx, sup.ID, &models.RecordDeliveryRequest{Date: "2025-01-03", Amount: 900, PaidNow: 100})
	require.NoError(t, err)
	require.NoError(t, s.DeleteSupplierTransaction(ctx, res.Truck.ID))
	txs, err := s.ListSupplierTransactions(ctx, sup.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)

	// deleting the auto payment removes its parent truck row
	res, err = s.RecordDelivery(ctx, sup.ID, &models.RecordDeliveryRequest{Date: "2025-01-04", Amount: 700, PaidNow: 50})
	require.NoError(t, err)
	require.NoError(t, s.DeleteSupplierTransaction(ctx, res.AutoPayment.ID))
	txs, err = s.ListSupplierTransactions(ctx, sup.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)

	// a standalone payment deletes alone
	pay, err := s.RecordSupplierPayment(ctx, sup.ID, &models.RecordSupplierPaymentRequest{Date: "2025-01-05", Amount: 40})
	require.NoError(t, err)
	res, err = s.RecordDelivery(ctx, sup.ID, &models.RecordDeliveryRequest{Date: "2025-01-06", Amount: 10})
	require.NoError(t, err)
	require.NoError(t, s.DeleteSupplierTransaction(ctx, pay.ID))
	txs, err = s.ListSupplierTransactions(ctx, sup.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, res.Truck.ID, txs[0].ID)

	assert.True(t, store.IsNotFound(s.DeleteSupplierTransaction(ctx, pay.ID)))
}

func testEmployeesAndAttendance(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.CreateEmployee(ctx, &models.CreateEmployeeRequest{Name: "Ramu", MonthlySalary: -5, JoiningDate: "2024-06-01"})
	assert.True(t, store.IsValidation(err))

	emp, err := s.CreateEmployee(ctx, &models.CreateEmployeeRequest{
		Name: "Ramu", Role: "driver", MonthlySalary: 9000, JoiningDate: "2024-06-01", Active: true,
	})
	require.NoError(t, err)

	// marking the same day twice keeps one record and flips the status
	rec, err := s.UpsertAttendance(ctx, emp.ID, &models.UpsertAttendanceRequest{Date: "2025-01-10", Status: models.AttendancePresent})
	require.NoError(t, err)
	rec2, err := s.UpsertAttendance(ctx, emp.ID, &models.UpsertAttendanceRequest{Date: "2025-01-10", Status: models.AttendanceAbsent})
	require.NoError(t, err)
	assert.Equal(t, rec.ID, rec2.ID)
	assert.Equal(t, models.AttendanceAbsent, rec2.Status)

	_, err = s.UpsertAttendance(ctx, emp.ID, &models.UpsertAttendanceRequest{Date: "2025-01-11", Status: models.AttendancePresent})
	require.NoError(t, err)
	_, err = s.UpsertAttendance(ctx, emp.ID, &models.UpsertAttendanceRequest{Date: "2025-02-01", Status: models.AttendancePresent})
	require.NoError(t, err)

	jan, err := s.ListAttendance(ctx, emp.ID, "2025-01")
	require.NoError(t, err)
	require.Len(t, jan, 2)
	assert.Equal(t, "2025-01-10", jan[0].Date)
	assert.Equal(t, "2025-01-11", jan[1].Date)

	day, err := s.AttendanceForDate(ctx, "2025-01-10")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, models.AttendanceAbsent, day[0].Status)

	_, err = s.UpsertAttendance(ctx, "missing", &models.UpsertAttendanceRequest{Date: "2025-01-10", Status: models.AttendancePresent})
	assert.True(t, store.IsNotFound(err))

	// employee deletion cascades attendance
	require.NoError(t, s.DeleteEmployee(ctx, emp.ID))
	day, err = s.AttendanceForDate(ctx, "2025-01-10")
	require.NoError(t, err)
	assert.Empty(t, day)
}

func testAdvancesAndAdjustment(t *testing.T, s store.Store) {
	ctx := context.Background()

	emp, err := s.CreateEmployee(ctx, &models.CreateEmployeeRequest{
		Name: "Shyam", MonthlySalary: 8000, JoiningDate: "2024-01-15", Active: true,
	})
	require.NoError(t, err)

	_, err = s.CreateSalaryAdvance(ctx, emp.ID, &models.CreateSalaryAdvanceRequest{Date: "2025-01-04", Amount: 100})
	require.NoError(t, err)
	_, err = s.CreateSalaryAdvance(ctx, emp.ID, &models.CreateSalaryAdvanceRequest{Date: "2025-01-02", Amount: 200})
	require.NoError(t, err)

	advs, err := s.ListSalaryAdvances(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, advs, 2)
	assert.Equal(t, "2025-01-02", advs[0].Date, "advances list by date")

	// month total 300 -> 500 inserts a single +200 adjustment on the 15th
	adj, err := s.SetMonthlyAdvanceTotal(ctx, emp.ID, "2025-01", 500)
	require.NoError(t, err)
	assert.InDelta(t, 200, adj.Amount, 1e-9)
	assert.Equal(t, "2025-01-15", adj.Date)

	advs, err = s.ListSalaryAdvances(ctx, emp.ID)
	require.NoError(t, err)
	assert.Len(t, advs, 3)

	// already at target: nothing to insert
	_, err = s.SetMonthlyAdvanceTotal(ctx, emp.ID, "2025-01", 500)
	assert.True(t, store.IsValidation(err))

	// lowering the total inserts a negative row
	adj, err = s.SetMonthlyAdvanceTotal(ctx, emp.ID, "2025-01", 350)
	require.NoError(t, err)
	assert.InDelta(t, -150, adj.Amount, 1e-9)

	require.NoError(t, s.DeleteSalaryAdvance(ctx, adj.ID))
	assert.True(t, store.IsNotFound(s.DeleteSalaryAdvance(ctx, adj.ID)))
}

func testSalaryLedgerAndSlip(t *testing.T, s store.Store) {
	ctx := context.Background()

	emp, err := s.CreateEmployee(ctx, &models.CreateEmployeeRequest{
		Name: "Mohan", MonthlySalary: 3000, JoiningDate: "2024-05-01", Active: true,
	})
	require.NoError(t, err)

	_, err = s.GetSalaryLedger(ctx, emp.ID)
	assert.True(t, store.IsNotFound(err))

	led, err := s.UpsertSalaryLedger(ctx, emp.ID, &models.UpsertSalaryLedgerRequest{TotalSalary: 12000, AmountGiven: 5000})
	require.NoError(t, err)
	assert.InDelta(t, 7000, led.Remaining, 1e-9)

	// second upsert replaces the single row; remaining floors at zero
	led2, err := s.UpsertSalaryLedger(ctx, emp.ID, &models.UpsertSalaryLedgerRequest{TotalSalary: 12000, AmountGiven: 15000})
	require.NoError(t, err)
	assert.Equal(t, led.ID, led2.ID)
	assert.Zero(t, led2.Remaining)

	// day-prorated slip: 3000 over September's 30 days, counted through the 10th
	_, err = s.CreateSalaryAdvance(ctx, emp.ID, &models.CreateSalaryAdvanceRequest{Date: "2024-09-03", Amount: 200})
	require.NoError(t, err)

	slip, err := s.SalarySlip(ctx, emp.ID, "2024-09", "2024-09-10")
	require.NoError(t, err)
	assert.InDelta(t, 100, slip.PerDaySalary, 1e-9)
	assert.Equal(t, 10, slip.DaysCounted)
	assert.InDelta(t, 1000, slip.ProratedSalary, 1e-9)
	assert.InDelta(t, 200, slip.Advances, 1e-9)
	assert.InDelta(t, 800, slip.Remaining, 1e-9)

	// no end date outside the current month: the whole month counts
	slip, err = s.SalarySlip(ctx, emp.ID, "2024-10", "")
	require.NoError(t, err)
	assert.Equal(t, 31, slip.DaysCounted)

	rows, err := s.SalaryRows(ctx, "2024-09")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, 5, row.MonthsWorked, "May through September inclusive")
	assert.InDelta(t, 200, row.Advances, 1e-9)
	assert.InDelta(t, 2800, row.Remaining, 1e-9)
	assert.InDelta(t, 15000, row.TotalSalaryAllTime, 1e-9)
	assert.InDelta(t, 200, row.TotalAdvancesAllTime, 1e-9)
	assert.InDelta(t, 14800, row.TotalRemainingAllTime, 1e-9)
}

func testFlatLedgers(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.CreateExpense(ctx, &models.CreateExpenseRequest{Date: "2025-01-05", Party: "someone-else", Amount: 10})
	assert.True(t, store.IsValidation(err), "unknown party must fail validation")

	e1, err := s.CreateExpense(ctx, &models.CreateExpenseRequest{Date: "2025-01-05", Party: models.PartyNarayan, Category: "diesel", Amount: 500})
	require.NoError(t, err)
	e2, err := s.CreateExpense(ctx, &models.CreateExpenseRequest{Date: "2025-01-08", Party: models.PartyMaaVaishno, Amount: 120})
	require.NoError(t, err)

	exps, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, exps, 2)
	assert.Equal(t, e2.ID, exps[0].ID, "flat ledgers list newest first")
	assert.Equal(t, e1.ID, exps[1].ID)

	require.NoError(t, s.DeleteExpense(ctx, e1.ID))
	assert.True(t, store.IsNotFound(s.DeleteExpense(ctx, e1.ID)))

	inv, err := s.CreateInvestment(ctx, &models.CreateInvestmentRequest{Date: "2025-01-06", Party: models.PartyNarayan, Source: "bank", Amount: 50000})
	require.NoError(t, err)
	invs, err := s.ListInvestments(ctx)
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.Equal(t, inv.ID, invs[0].ID)
	require.NoError(t, s.DeleteInvestment(ctx, inv.ID))

	ch, err := s.CreateChiniExpense(ctx, &models.CreateChiniExpenseRequest{Date: "2025-01-07", Party: models.PartyMaaVaishno, Amount: 700})
	require.NoError(t, err)
	chs, err := s.ListChiniExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, chs, 1)
	require.NoError(t, s.DeleteChiniExpense(ctx, ch.ID))

	land, err := s.CreateLandRecord(ctx, &models.CreateLandRecordRequest{Date: "2025-01-03", Party: models.PartyNarayan, Area: "2 bigha"})
	require.NoError(t, err)
	lands, err := s.ListLandRecords(ctx)
	require.NoError(t, err)
	require.Len(t, lands, 1)
	assert.Equal(t, "2 bigha", lands[0].Area)
	require.NoError(t, s.DeleteLandRecord(ctx, land.ID))

	veh, err := s.CreateVehicle(ctx, &models.CreateVehicleRequest{Date: "2025-01-04", VehicleNumber: "UP32 CD 7777", Party: models.PartyNarayan, Amount: 250000})
	require.NoError(t, err)
	vehs, err := s.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehs, 1)
	require.NoError(t, s.DeleteVehicle(ctx, veh.ID))

	tr, err := s.CreateTruck(ctx, &models.CreateTruckRequest{TruckNumber: "UP32 EF 9999", Party: models.PartyMaaVaishno, Date: "2025-01-02"})
	require.NoError(t, err)
	tr2, err := s.UpdateTruck(ctx, tr.ID, &models.UpdateTruckRequest{TruckNumber: "UP32 EF 9999", Model: "Tata 1613", Party: models.PartyMaaVaishno, Date: "2025-01-02"})
	require.NoError(t, err)
	assert.Equal(t, "Tata 1613", tr2.Model)
	trs, err := s.ListTrucks(ctx)
	require.NoError(t, err)
	require.Len(t, trs, 1)
	require.NoError(t, s.DeleteTruck(ctx, tr.ID))
	assert.True(t, store.IsNotFound(s.DeleteTruck(ctx, tr.ID)))
}

func testBilling(t *testing.T, s store.Store) {
	ctx := context.Background()

	req := &models.SaveBillRequest{
		InvoiceNo: "INV-001",
		BillDate:  "2025-01-10",
		Company: models.BillCompanyInput{
			GSTIN: " 09abcde1234f1z5 ", Name: "Sharda Foods", State: "UP", StateCode: "09",
		},
		Items: []models.BillItemInput{
			{Description: "Bardana", Quantity: 100, Rate: 10, GSTPercent: 5},
			{Description: "Loading", Quantity: 1, Rate: 500, GSTPercent: 18},
		},
	}
	bill, err := s.SaveBill(ctx, req)
	require.NoError(t, err)
	assert.InDelta(t, 1500, bill.Subtotal, 1e-9)
	assert.InDelta(t, 50+90, bill.TotalGST, 1e-9)
	assert.InDelta(t, 1640, bill.GrandTotal, 1e-9)
	assert.Equal(t, "09ABCDE1234F1Z5", bill.Company.GSTIN, "GSTIN normalizes on save")

	// a second bill for the same GSTIN updates the registry entry in place
	req2 := &models.SaveBillRequest{
		InvoiceNo: "INV-002",
		BillDate:  "2025-01-12",
		Company: models.BillCompanyInput{
			GSTIN: "09ABCDE1234F1Z5", Name: "Sharda Foods Pvt Ltd", State: "UP", StateCode: "09",
		},
		Items: []models.BillItemInput{{Description: "Bardana", Quantity: 10, Rate: 10, GSTPercent: 5}},
	}
	bill2, err := s.SaveBill(ctx, req2)
	require.NoError(t, err)
	assert.Equal(t, bill.Company.ID, bill2.Company.ID)

	companies, err := s.ListBillingCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Sharda Foods Pvt Ltd", companies[0].Name)

	// duplicate invoice number conflicts
	_, err = s.SaveBill(ctx, req)
	assert.True(t, store.IsConflict(err))

	// blank GSTIN: the bill carries a snapshot, the registry is untouched
	req3 := &models.SaveBillRequest{
		InvoiceNo: "INV-003",
		BillDate:  "2025-01-13",
		Company:   models.BillCompanyInput{Name: "Cash Buyer"},
		Items:     []models.BillItemInput{{Description: "Bardana", Quantity: 1, Rate: 100, GSTPercent: 0}},
	}
	bill3, err := s.SaveBill(ctx, req3)
	require.NoError(t, err)
	assert.Empty(t, bill3.Company.GSTIN)
	companies, err = s.ListBillingCompanies(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 1)

	// update replaces items and recomputes totals
	req3.Items = append(req3.Items, models.BillItemInput{Description: "Cartage", Quantity: 1, Rate: 50, GSTPercent: 0})
	upd, err := s.UpdateBill(ctx, bill3.ID, req3)
	require.NoError(t, err)
	assert.InDelta(t, 150, upd.GrandTotal, 1e-9)
	require.Len(t, upd.Items, 2)

	// updating onto another bill's invoice number conflicts
	req3.InvoiceNo = "INV-001"
	_, err = s.UpdateBill(ctx, bill3.ID, req3)
	assert.True(t, store.IsConflict(err))

	got, err := s.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.InDelta(t, 500, got.Items[1].TaxableValue, 1e-9)

	bills, err := s.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 3)
	assert.Equal(t, bill3.ID, bills[0].ID, "bills list newest first")

	require.NoError(t, s.DeleteBill(ctx, bill3.ID))
	_, err = s.GetBill(ctx, bill3.ID)
	assert.True(t, store.IsNotFound(err))
}

func testDashboard(t *testing.T, s store.Store) {
	ctx := context.Background()

	emp, err := s.CreateEmployee(ctx, &models.CreateEmployeeRequest{Name: "Gopal", MonthlySalary: 7000, JoiningDate: "2024-01-01", Active: true})
	require.NoError(t, err)
	emp2, err := s.CreateEmployee(ctx, &models.CreateEmployeeRequest{Name: "Hari", MonthlySalary: 7500, JoiningDate: "2024-02-01", Active: true})
	require.NoError(t, err)
	_, err = s.UpsertAttendance(ctx, emp.ID, &models.UpsertAttendanceRequest{Date: "2025-01-20", Status: models.AttendancePresent})
	require.NoError(t, err)
	_, err = s.UpsertAttendance(ctx, emp2.ID, &models.UpsertAttendanceRequest{Date: "2025-01-20", Status: models.AttendanceAbsent})
	require.NoError(t, err)
	_, err = s.CreateSalaryAdvance(ctx, emp.ID, &models.CreateSalaryAdvanceRequest{Date: "2025-01-10", Amount: 300})
	require.NoError(t, err)
	_, err = s.CreateSalaryAdvance(ctx, emp.ID, &models.CreateSalaryAdvanceRequest{Date: "2024-12-10", Amount: 999})
	require.NoError(t, err)

	sup, err := s.CreateSupplier(ctx, &models.CreateSupplierRequest{Name: "Ganga Bardana", OpeningBalance: 1000})
	require.NoError(t, err)
	_, err = s.RecordDelivery(ctx, sup.ID, &models.RecordDeliveryRequest{Date: "2025-01-05", Amount: 500, PaidNow: 200})
	require.NoError(t, err)
	_, err = s.RecordDelivery(ctx, sup.ID, &models.RecordDeliveryRequest{Date: "2024-12-20", Amount: 250})
	require.NoError(t, err)

	_, err = s.CreateExpense(ctx, &models.CreateExpenseRequest{Date: "2025-01-06", Party: models.PartyNarayan, Amount: 400})
	require.NoError(t, err)
	_, err = s.CreateChiniExpense(ctx, &models.CreateChiniExpenseRequest{Date: "2025-01-07", Party: models.PartyNarayan, Amount: 100})
	require.NoError(t, err)
	_, err = s.CreateExpense(ctx, &models.CreateExpenseRequest{Date: "2024-11-06", Party: models.PartyNarayan, Amount: 5000})
	require.NoError(t, err)

	_, err = s.SaveBill(ctx, &models.SaveBillRequest{
		InvoiceNo: "INV-100", BillDate: "2025-01-09",
		Company: models.BillCompanyInput{Name: "Cash Buyer"},
		Items:   []models.BillItemInput{{Description: "Bardana", Quantity: 2, Rate: 100, GSTPercent: 0}},
	})
	require.NoError(t, err)

	stats, err := s.Dashboard(ctx, "2025-01", "2025-01-20")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEmployees)
	assert.Equal(t, 1, stats.PresentToday)
	assert.Equal(t, 1, stats.AbsentToday)
	assert.InDelta(t, 300, stats.MonthAdvances, 1e-9)
	assert.Equal(t, 1, stats.TotalSuppliers)
	// 1000 opening + 500 + 250 trucks - 200 paid
	assert.InDelta(t, 1550, stats.SupplierOutstanding, 1e-9)
	assert.InDelta(t, 500, stats.MonthExpenses, 1e-9)
	assert.Equal(t, 1, stats.TrucksInMonth)
	assert.Equal(t, 1, stats.BillCount)
	assert.InDelta(t, 200, stats.BillTotal, 1e-9)

	_, err = s.Dashboard(ctx, "2025-1", "2025-01-20")
	assert.True(t, store.IsValidation(err))
}
