package models

import (
	"strings"
	"time"
)

// BillingCompany is a registry entry keyed by normalized GSTIN. The GSTIN is
// the identity and never changes; every other field is overwritten on upsert.
type BillingCompany struct {
	ID        string    `json:"id"`
	GSTIN     string    `json:"gstin"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	State     string    `json:"state"`
	StateCode string    `json:"state_code"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeGSTIN canonicalizes a GSTIN for identity comparison
func NormalizeGSTIN(gstin string) string {
	return strings.ToUpper(strings.TrimSpace(gstin))
}

// BillItem is one invoice line. Derived fields are recomputed on save.
type BillItem struct {
	Description  string  `json:"description"`
	HSNCode      string  `json:"hsn_code,omitempty"`
	Quantity     float64 `json:"quantity"`
	Rate         float64 `json:"rate"`
	GSTPercent   float64 `json:"gst_percent"`
	TaxableValue float64 `json:"taxable_value"` // quantity * rate
	GSTAmount    float64 `json:"gst_amount"`    // taxable_value * gst_percent / 100
	LineTotal    float64 `json:"line_total"`    // taxable_value + gst_amount
}

// Bill is a GST invoice. Company is a snapshot taken at invoice time, not a
// live reference into the BillingCompany registry.
type Bill struct {
	ID         string         `json:"id"`
	InvoiceNo  string         `json:"invoice_no"`
	BillDate   string         `json:"bill_date"` // YYYY-MM-DD
	DueDate    string         `json:"due_date,omitempty"`
	Company    BillingCompany `json:"company"`
	Items      []BillItem     `json:"items"`
	Subtotal   float64        `json:"subtotal"`
	TotalGST   float64        `json:"total_gst"`
	GrandTotal float64        `json:"grand_total"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// CalculateTotals recomputes every derived figure from quantity/rate/percent
func (b *Bill) CalculateTotals() {
	b.Subtotal, b.TotalGST, b.GrandTotal = 0, 0, 0
	for i := range b.Items {
		it := &b.Items[i]
		it.TaxableValue = it.Quantity * it.Rate
		it.GSTAmount = it.TaxableValue * it.GSTPercent / 100
		it.LineTotal = it.TaxableValue + it.GSTAmount
		b.Subtotal += it.TaxableValue
		b.TotalGST += it.GSTAmount
	}
	b.GrandTotal = b.Subtotal + b.TotalGST
}

// BillCompanyInput is the company block of a bill request
type BillCompanyInput struct {
	GSTIN     string `json:"gstin"`
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// BillItemInput is one line of a bill request
type BillItemInput struct {
	Description string  `json:"description" validate:"required"`
	HSNCode     string  `json:"hsn_code"`
	Quantity    float64 `json:"quantity" validate:"finite,gt=0"`
	Rate        float64 `json:"rate" validate:"finite,gte=0"`
	GSTPercent  float64 `json:"gst_percent" validate:"finite,gte=0,lte=100"`
}

// SaveBillRequest creates or (with an id) replaces a bill. Saving a bill also
// upserts its company into the BillingCompany registry when a GSTIN is given.
type SaveBillRequest struct {
	InvoiceNo string           `json:"invoice_no" validate:"required"`
	BillDate  string           `json:"bill_date" validate:"required,dateonly"`
	DueDate   string           `json:"due_date" validate:"omitempty,dateonly"`
	Company   BillCompanyInput `json:"company" validate:"required"`
	Items     []BillItemInput  `json:"items" validate:"required,min=1,dive"`
}
