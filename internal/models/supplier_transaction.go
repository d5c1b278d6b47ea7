package models

import "time"

// SupplierTransactionType represents the kind of supplier ledger row
type SupplierTransactionType string

const (
	SupplierTxTruck   SupplierTransactionType = "truck"   // material delivered by truck (increases what we owe)
	SupplierTxPayment SupplierTransactionType = "payment" // payment made to the supplier (decreases what we owe)
)

// SupplierTransaction is a single row in a supplier's ledger. Running
// balances are never stored on it; the ledger engine derives them on read.
type SupplierTransaction struct {
	ID         string                  `json:"id"`
	SupplierID string                  `json:"supplier_id"`
	Date       string                  `json:"date"` // YYYY-MM-DD, business day (no time part)
	Type       SupplierTransactionType `json:"type"`
	Amount     float64                 `json:"amount"`

	// Truck delivery fields (type = truck only)
	TruckNumber string  `json:"truck_number,omitempty"`
	ChallanNo   string  `json:"challan_no,omitempty"`
	Material    string  `json:"material,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	Rate        float64 `json:"rate,omitempty"`
	PaidNow     float64 `json:"paid_now,omitempty"`

	// Payment fields (type = payment only)
	PaymentMode string `json:"payment_mode,omitempty"`
	PaymentRef  string `json:"payment_ref,omitempty"`

	Note                string    `json:"note,omitempty"`
	IsAutoPayment       bool      `json:"is_auto_payment"`
	LinkedTransactionID string    `json:"linked_transaction_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// RecordDeliveryRequest records a truck delivery. A non-zero PaidNow also
// produces a linked auto payment for the same date, atomically.
type RecordDeliveryRequest struct {
	Date        string  `json:"date" validate:"required,dateonly"`
	Amount      float64 `json:"amount" validate:"finite,gt=0"`
	TruckNumber string  `json:"truck_number"`
	ChallanNo   string  `json:"challan_no"`
	Material    string  `json:"material"`
	Quantity    float64 `json:"quantity" validate:"finite,gte=0"`
	Rate        float64 `json:"rate" validate:"finite,gte=0"`
	PaidNow     float64 `json:"paid_now" validate:"finite,gte=0,ltefield=Amount"`
	PaymentMode string  `json:"payment_mode"`
	PaymentRef  string  `json:"payment_ref"`
	Note        string  `json:"note"`
}

// RecordSupplierPaymentRequest records a standalone payment to a supplier.
type RecordSupplierPaymentRequest struct {
	Date        string  `json:"date" validate:"required,dateonly"`
	Amount      float64 `json:"amount" validate:"finite,gt=0"`
	PaymentMode string  `json:"payment_mode"`
	PaymentRef  string  `json:"payment_ref"`
	Note        string  `json:"note"`
}
