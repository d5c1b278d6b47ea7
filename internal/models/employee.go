package models

import "time"

type Employee struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"` // job title (driver, munshi, helper), not an access role
	MonthlySalary float64   `json:"monthly_salary"`
	JoiningDate   string    `json:"joining_date"` // YYYY-MM-DD
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateEmployeeRequest represents the request body for creating an employee
type CreateEmployeeRequest struct {
	Name          string  `json:"name" validate:"required"`
	Role          string  `json:"role"`
	MonthlySalary float64 `json:"monthly_salary" validate:"finite,gt=0"`
	JoiningDate   string  `json:"joining_date" validate:"required,dateonly"`
	Active        bool    `json:"active"`
}

// UpdateEmployeeRequest represents the request body for updating an employee
type UpdateEmployeeRequest struct {
	Name          string  `json:"name" validate:"required"`
	Role          string  `json:"role"`
	MonthlySalary float64 `json:"monthly_salary" validate:"finite,gt=0"`
	JoiningDate   string  `json:"joining_date" validate:"required,dateonly"`
	Active        bool    `json:"active"`
}
