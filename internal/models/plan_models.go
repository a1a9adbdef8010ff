package models

import "time"

// Plan is a membership template: duration, class allowance and price.
// Plans referenced by memberships are soft-deactivated, never hard-deleted;
// edits apply prospectively to memberships created afterwards.
type Plan struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name" binding:"required"`
	DurationDays   int       `json:"duration_days" db:"duration_days"`
	ClassesPerWeek int       `json:"classes_per_week" db:"classes_per_week"` // informational only
	TotalClasses   int       `json:"total_classes" db:"total_classes"`
	Price          float64   `json:"price" db:"price"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
