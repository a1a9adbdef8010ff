package models

import "time"

// Visit is one attendance event. Admitting a visit consumes one class from
// the member's active membership; deleting the visit restores it. Both
// mutations happen inside the same transaction as the visit row change.
type Visit struct {
	ID           int64     `json:"id" db:"id"`
	MemberID     int64     `json:"member_id" db:"member_id"`
	MembershipID int64     `json:"membership_id" db:"membership_id"`
	VisitDate    time.Time `json:"visit_date" db:"visit_date"`
	Notes        *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	Member       *Member   `json:"member,omitempty"` // For joining with Member details
}

// VisitFilters narrows visit list queries.
type VisitFilters struct {
	MemberID *int64
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}
