package models

import "time"

// Truck is a vehicle owned or hired by one of the firms
type Truck struct {
	ID          string    `json:"id"`
	TruckNumber string    `json:"truck_number"`
	Model       string    `json:"model"`
	OwnerName   string    `json:"owner_name"`
	Party       Party     `json:"party"`
	Date        string    `json:"date"` // YYYY-MM-DD, acquisition/registration day
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateTruckRequest struct {
	TruckNumber string `json:"truck_number" validate:"required"`
	Model       string `json:"model"`
	OwnerName   string `json:"owner_name"`
	Party       Party  `json:"party" validate:"required,oneof=narayan maa_vaishno"`
	Date        string `json:"date" validate:"required,dateonly"`
	Note        string `json:"note"`
}

type UpdateTruckRequest struct {
	TruckNumber string `json:"truck_number" validate:"required"`
	Model       string `json:"model"`
	OwnerName   string `json:"owner_name"`
	Party       Party  `json:"party" validate:"required,oneof=narayan maa_vaishno"`
	Date        string `json:"date" validate:"required,dateonly"`
	Note        string `json:"note"`
}
