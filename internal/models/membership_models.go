package models

import "time"

// Payment methods accepted when purchasing a membership.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
)

// IsValidPaymentMethod reports whether m is one of the accepted payment methods.
func IsValidPaymentMethod(m string) bool {
	return m == PaymentMethodCash || m == PaymentMethodCard || m == PaymentMethodTransfer
}

// Membership links a member to a plan for a bounded period and class count.
// At most one membership per member is active at any time; purchasing a new
// one supersedes (deactivates) the previous active membership.
// StartDate and EndDate are calendar dates stored at midnight; EndDate is
// derived once at creation as StartDate + plan duration in days.
type Membership struct {
	ID            int64     `json:"id" db:"id"`
	MemberID      int64     `json:"member_id" db:"member_id"`
	PlanID        int64     `json:"plan_id" db:"plan_id"`
	StartDate     time.Time `json:"start_date" db:"start_date"`
	EndDate       time.Time `json:"end_date" db:"end_date"`
	ClassesUsed   int       `json:"classes_used" db:"classes_used"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	TotalPaid     float64   `json:"total_paid" db:"total_paid"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
	Member        *Member   `json:"member,omitempty"` // For joining with Member details
	Plan          *Plan     `json:"plan,omitempty"`   // For joining with Plan details
}

// ClassesRemaining returns the number of classes still available, when the
// plan is attached. Negative values are reported as zero.
func (m *Membership) ClassesRemaining() int {
	if m.Plan == nil {
		return 0
	}
	remaining := m.Plan.TotalClasses - m.ClassesUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MembershipFilters narrows membership list queries.
type MembershipFilters struct {
	MemberID *int64
	PlanID   *int64
	Active   *bool
	Page     int
	PageSize int
}
