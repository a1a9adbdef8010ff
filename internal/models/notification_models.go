package models

import "time"

// Notification kinds and priorities derived from active memberships.
const (
	NotificationExpiring   = "MEMBERSHIP_EXPIRING"
	NotificationLowClasses = "LOW_CLASSES"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Notification is a derived alert for the admin dashboard. It is never
// persisted; the list is recomputed from active memberships on demand.
// A membership can produce both an expiring and a low-classes notification
// at the same time.
type Notification struct {
	Type             string    `json:"type"`
	Priority         string    `json:"priority"`
	MemberID         int64     `json:"member_id"`
	MembershipID     int64     `json:"membership_id"`
	MemberName       string    `json:"member_name"`
	PlanName         string    `json:"plan_name"`
	EndDate          time.Time `json:"end_date"`
	DaysUntilExpiry  *int      `json:"days_until_expiry,omitempty"`
	ClassesRemaining *int      `json:"classes_remaining,omitempty"`
	Message          string    `json:"message"`
}
