package models

import "time"

// Gender values accepted for a member record.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// IsValidGender reports whether g is one of the accepted gender values.
func IsValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Member represents a registered gym member.
// Members are never hard-deleted: historical memberships and visits must
// remain referentially valid, so removal flips IsActive instead.
type Member struct {
	ID               int64     `json:"id" db:"id"`
	MembershipNumber string    `json:"membership_number" db:"membership_number"`
	FirstName        string    `json:"first_name" db:"first_name" binding:"required"`
	LastName         string    `json:"last_name" db:"last_name" binding:"required"`
	Gender           string    `json:"gender" db:"gender"`
	PhoneNumber      *string   `json:"phone_number,omitempty" db:"phone_number"`
	Email            *string   `json:"email,omitempty" db:"email"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns the member's display name.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
