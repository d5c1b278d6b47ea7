package models

import "time"

// Party identifies which of the two firms a ledger row belongs to
type Party string

const (
	PartyNarayan    Party = "narayan"
	PartyMaaVaishno Party = "maa_vaishno"
)

// Flat ledger rows below share the same lifecycle: created once, listed by
// date, deleted explicitly. No cross-entity invariants beyond field checks.

type Expense struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Party     Party     `json:"party"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateExpenseRequest struct {
	Date     string  `json:"date" validate:"required,dateonly"`
	Party    Party   `json:"party" validate:"required,oneof=narayan maa_vaishno"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount" validate:"finite,gt=0"`
	Note     string  `json:"note"`
}

type Investment struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Party     Party     `json:"party"`
	Source    string    `json:"source"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateInvestmentRequest struct {
	Date   string  `json:"date" validate:"required,dateonly"`
	Party  Party   `json:"party" validate:"required,oneof=narayan maa_vaishno"`
	Source string  `json:"source"`
	Amount float64 `json:"amount" validate:"finite,gt=0"`
	Note   string  `json:"note"`
}

// ChiniExpense tracks sugar-season expenses separately from general expenses
type ChiniExpense struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Party     Party     `json:"party"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateChiniExpenseRequest struct {
	Date     string  `json:"date" validate:"required,dateonly"`
	Party    Party   `json:"party" validate:"required,oneof=narayan maa_vaishno"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount" validate:"finite,gt=0"`
	Note     string  `json:"note"`
}

type LandRecord struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Party       Party     `json:"party"`
	Description string    `json:"description"`
	Area        string    `json:"area"` // free text: "2 bigha", "1.5 acre"
	Amount      float64   `json:"amount"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateLandRecordRequest struct {
	Date        string  `json:"date" validate:"required,dateonly"`
	Party       Party   `json:"party" validate:"required,oneof=narayan maa_vaishno"`
	Description string  `json:"description"`
	Area        string  `json:"area"`
	Amount      float64 `json:"amount" validate:"finite,gte=0"`
	Note        string  `json:"note"`
}

type Vehicle struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	VehicleNumber string    `json:"vehicle_number"`
	Party         Party     `json:"party"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateVehicleRequest struct {
	Date          string  `json:"date" validate:"required,dateonly"`
	VehicleNumber string  `json:"vehicle_number" validate:"required"`
	Party         Party   `json:"party" validate:"required,oneof=narayan maa_vaishno"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount" validate:"finite,gt=0"`
	Note          string  `json:"note"`
}
