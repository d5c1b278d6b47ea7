package models

import "time"

type Supplier struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	AlternatePhone string    `json:"alternate_phone"`
	Email          string    `json:"email"`
	GSTNo          string    `json:"gst_no"`
	Address        string    `json:"address"`
	MaterialType   string    `json:"material_type"`
	PaymentTerms   string    `json:"payment_terms"`
	OpeningBalance float64   `json:"opening_balance"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateSupplierRequest represents the request body for creating a supplier
type CreateSupplierRequest struct {
	Name           string  `json:"name" validate:"required"`
	Phone          string  `json:"phone"`
	AlternatePhone string  `json:"alternate_phone"`
	Email          string  `json:"email" validate:"omitempty,email"`
	GSTNo          string  `json:"gst_no"`
	Address        string  `json:"address"`
	MaterialType   string  `json:"material_type"`
	PaymentTerms   string  `json:"payment_terms"`
	OpeningBalance float64 `json:"opening_balance" validate:"finite"`
}

// UpdateSupplierRequest represents the request body for updating a supplier
type UpdateSupplierRequest struct {
	Name           string  `json:"name" validate:"required"`
	Phone          string  `json:"phone"`
	AlternatePhone string  `json:"alternate_phone"`
	Email          string  `json:"email" validate:"omitempty,email"`
	GSTNo          string  `json:"gst_no"`
	Address        string  `json:"address"`
	MaterialType   string  `json:"material_type"`
	PaymentTerms   string  `json:"payment_terms"`
	OpeningBalance float64 `json:"opening_balance" validate:"finite"`
}
