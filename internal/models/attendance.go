package models

import "time"

// AttendanceStatus is the per-day attendance marking
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord is unique per (employee_id, date); writing the same pair
// again updates the status in place.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"` // YYYY-MM-DD
	Status     AttendanceStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// UpsertAttendanceRequest marks an employee present or absent for one day
type UpsertAttendanceRequest struct {
	Date   string           `json:"date" validate:"required,dateonly"`
	Status AttendanceStatus `json:"status" validate:"required,oneof=present absent"`
}
