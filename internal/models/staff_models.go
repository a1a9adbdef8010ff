package models

import "time"

// Staff types. Trainers and cleaning staff share one record shape and one
// pay computation, discriminated by this value.
const (
	StaffTypeTrainer  = "TRAINER"
	StaffTypeCleaning = "CLEANING"
)

// IsValidStaffType reports whether t is one of the known staff types.
func IsValidStaffType(t string) bool {
	return t == StaffTypeTrainer || t == StaffTypeCleaning
}

// Staff represents an hourly-paid employee (trainer or cleaning staff).
// Soft-deactivated, never hard-deleted: sessions must remain attributable.
type Staff struct {
	ID         int64     `json:"id" db:"id"`
	FullName   string    `json:"full_name" db:"full_name" binding:"required"`
	StaffType  string    `json:"staff_type" db:"staff_type"`
	HourlyRate float64   `json:"hourly_rate" db:"hourly_rate"`
	BirthDate  *string   `json:"birth_date,omitempty" db:"birth_date"` // YYYY-MM-DD
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// StaffSession is one timed work interval. A session with no EndTime is
// still open; TotalHours is recomputed whenever EndTime is set or changed
// and is round((end - start) hours, 2).
type StaffSession struct {
	ID          int64      `json:"id" db:"id"`
	StaffID     int64      `json:"staff_id" db:"staff_id"`
	SessionDate string     `json:"session_date" db:"session_date"` // YYYY-MM-DD
	StartTime   time.Time  `json:"start_time" db:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty" db:"end_time"`
	TotalHours  *float64   `json:"total_hours,omitempty" db:"total_hours"`
	Notes       *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	Staff       *Staff     `json:"staff,omitempty"` // For joining with Staff details
}

// SessionFilters narrows session list queries.
type SessionFilters struct {
	StaffID  *int64
	DateFrom *time.Time
	DateTo   *time.Time
	OpenOnly bool
	Page     int
	PageSize int
}
