// Package store defines the persistence contract for the operations backend.
//
// Two backends satisfy Store: a single-JSON-document file store for small
// deployments and a PostgreSQL store. Switching backends never changes
// externally observable behavior; the contract suite in storetest holds both
// to the same inputs and outputs.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ops-backend/internal/ledger"
	"ops-backend/internal/models"
	"ops-backend/internal/timeutil"
)

// Deps carries the environment a backend needs: a clock for created_at /
// updated_at stamps and a generator of opaque unique string ids.
type Deps struct {
	Clock func() time.Time
	NewID func() string
}

// WithDefaults fills missing dependencies with the production ones
func (d Deps) WithDefaults() Deps {
	if d.Clock == nil {
		d.Clock = timeutil.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return d
}

// SupplierStatement is a supplier's full computed ledger view: rows in
// display order (most recent first) with running balances attached, plus the
// aggregate summary. Produced by the ledger engine, never persisted.
type SupplierStatement struct {
	Supplier models.Supplier `json:"supplier"`
	Rows     []ledger.Row    `json:"rows"`
	Summary  ledger.Summary  `json:"summary"`
}

// DeliveryResult is what RecordDelivery produced: the truck transaction and,
// when paid_now > 0, its linked auto payment.
type DeliveryResult struct {
	Truck       *models.SupplierTransaction `json:"truck"`
	AutoPayment *models.SupplierTransaction `json:"auto_payment,omitempty"`
}

// Store is the full persistence contract. Every mutating operation validates
// its input before touching storage and returns a *ValidationError on bad
// input, a *NotFoundError for unknown ids, a *ConflictError on identity
// clashes and a *StorageError for backend I/O failures. No operation retries
// internally, and no operation can leave a truck delivery without its linked
// auto payment or vice versa.
type Store interface {
	// Users
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	// Suppliers
	CreateSupplier(ctx context.Context, req *models.CreateSupplierRequest) (*models.Supplier, error)
	ListSuppliers(ctx context.Context) ([]*models.Supplier, error)
	GetSupplier(ctx context.Context, id string) (*models.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, req *models.UpdateSupplierRequest) (*models.Supplier, error)
	// DeleteSupplier removes the supplier and all of its transactions
	DeleteSupplier(ctx context.Context, id string) error

	// Supplier ledger
	RecordDelivery(ctx context.Context, supplierID string, req *models.RecordDeliveryRequest) (*DeliveryResult, error)
	RecordSupplierPayment(ctx context.Context, supplierID string, req *models.RecordSupplierPaymentRequest) (*models.SupplierTransaction, error)
	ListSupplierTransactions(ctx context.Context, supplierID string) ([]*models.SupplierTransaction, error)
	// DeleteSupplierTransaction removes a transaction together with its
	// linked counterpart (auto payment or parent truck row), in one unit.
	DeleteSupplierTransaction(ctx context.Context, id string) error
	SupplierStatement(ctx context.Context, supplierID string) (*SupplierStatement, error)

	// Employees
	CreateEmployee(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, req *models.UpdateEmployeeRequest) (*models.Employee, error)
	// DeleteEmployee removes the employee with their attendance and advances
	DeleteEmployee(ctx context.Context, id string) error

	// Attendance
	UpsertAttendance(ctx context.Context, employeeID string, req *models.UpsertAttendanceRequest) (*models.AttendanceRecord, error)
	ListAttendance(ctx context.Context, employeeID, month string) ([]*models.AttendanceRecord, error)
	AttendanceForDate(ctx context.Context, date string) ([]*models.AttendanceRecord, error)

	// Salary advances and ledgers
	CreateSalaryAdvance(ctx context.Context, employeeID string, req *models.CreateSalaryAdvanceRequest) (*models.SalaryAdvance, error)
	ListSalaryAdvances(ctx context.Context, employeeID string) ([]*models.SalaryAdvance, error)
	DeleteSalaryAdvance(ctx context.Context, id string) error
	// SetMonthlyAdvanceTotal moves the month's advance sum to target by
	// inserting one mid-month adjustment row for the difference.
	SetMonthlyAdvanceTotal(ctx context.Context, employeeID, month string, target float64) (*models.SalaryAdvance, error)
	UpsertSalaryLedger(ctx context.Context, employeeID string, req *models.UpsertSalaryLedgerRequest) (*models.SalaryLedger, error)
	GetSalaryLedger(ctx context.Context, employeeID string) (*models.SalaryLedger, error)
	SalaryRows(ctx context.Context, month string) ([]*models.SalaryRow, error)
	// SalarySlip prorates the month's salary by days; endDate may be empty
	SalarySlip(ctx context.Context, employeeID, month, endDate string) (*models.SalarySlip, error)

	// Trucks
	CreateTruck(ctx context.Context, req *models.CreateTruckRequest) (*models.Truck, error)
	ListTrucks(ctx context.Context) ([]*models.Truck, error)
	UpdateTruck(ctx context.Context, id string, req *models.UpdateTruckRequest) (*models.Truck, error)
	DeleteTruck(ctx context.Context, id string) error

	// Flat ledgers
	CreateExpense(ctx context.Context, req *models.CreateExpenseRequest) (*models.Expense, error)
	ListExpenses(ctx context.Context) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	CreateInvestment(ctx context.Context, req *models.CreateInvestmentRequest) (*models.Investment, error)
	ListInvestments(ctx context.Context) ([]*models.Investment, error)
	DeleteInvestment(ctx context.Context, id string) error
	CreateChiniExpense(ctx context.Context, req *models.CreateChiniExpenseRequest) (*models.ChiniExpense, error)
	ListChiniExpenses(ctx context.Context) ([]*models.ChiniExpense, error)
	DeleteChiniExpense(ctx context.Context, id string) error
	CreateLandRecord(ctx context.Context, req *models.CreateLandRecordRequest) (*models.LandRecord, error)
	ListLandRecords(ctx context.Context) ([]*models.LandRecord, error)
	DeleteLandRecord(ctx context.Context, id string) error
	CreateVehicle(ctx context.Context, req *models.CreateVehicleRequest) (*models.Vehicle, error)
	ListVehicles(ctx context.Context) ([]*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error

	// Billing
	SaveBill(ctx context.Context, req *models.SaveBillRequest) (*models.Bill, error)
	UpdateBill(ctx context.Context, id string, req *models.SaveBillRequest) (*models.Bill, error)
	GetBill(ctx context.Context, id string) (*models.Bill, error)
	ListBills(ctx context.Context) ([]*models.Bill, error)
	DeleteBill(ctx context.Context, id string) error
	ListBillingCompanies(ctx context.Context) ([]*models.BillingCompany, error)

	// Aggregates
	Dashboard(ctx context.Context, month, today string) (*models.DashboardStats, error)

	// Close releases the backend's resources
	Close() error
}
