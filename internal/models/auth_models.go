package models

import "time"

// User roles. The back office knows two: administrators and front-desk staff.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// IsValidRole reports whether r is a known user role.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleStaff
}

// User represents a back-office login account.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
