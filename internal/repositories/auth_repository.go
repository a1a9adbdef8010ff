package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gym_admin_backend/internal/models"

	"github.com/lib/pq"
)

// UserRepository defines the interface for login-account database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	GetUserByID(id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(executor SQLExecutor, user *models.User) error
	DeleteUser(executor SQLExecutor, id int64) error
	// CountActiveAdmins is read inside the delete-user transaction to keep
	// the last administrator account from being removed.
	CountActiveAdmins(executor SQLExecutor) (int, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, password_hash, full_name, role, is_active, created_at, updated_at`

func scanUser(row scanner, user *models.User) error {
	return row.Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.FullName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
}

// CreateUser inserts a new login account.
func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	if executor == nil {
		executor = r.db
	}
	query := `INSERT INTO users (username, password_hash, full_name, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	user.CreatedAt = currentTime
	user.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		user.Username, user.PasswordHash, user.FullName, user.Role,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

// GetUserByID retrieves a user by ID.
func (r *userRepository) GetUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := scanUser(r.db.QueryRow(query, id), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by ID %d: %v", ErrDatabaseError, id, err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username for login.
func (r *userRepository) GetUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	err := scanUser(r.db.QueryRow(query, username), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, nil
}

// GetUsers lists all login accounts.
func (r *userRepository) GetUsers() ([]models.User, error) {
	users := []models.User{}
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user rows: %v", ErrDatabaseError, err)
	}
	return users, nil
}

// UpdateUser persists account edits, password hash included.
func (r *userRepository) UpdateUser(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET
	            username = $1, password_hash = $2, full_name = $3, role = $4,
	            is_active = $5, updated_at = $6
	          WHERE id = $7`
	user.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		user.Username, user.PasswordHash, user.FullName, user.Role,
		user.IsActive, user.UpdatedAt, user.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating user ID %d: %v", ErrDatabaseError, user.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes a login account. Accounts carry no domain history, so
// this is a hard delete, unlike members and staff.
func (r *userRepository) DeleteUser(executor SQLExecutor, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting user ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveAdmins counts active accounts with the admin role.
func (r *userRepository) CountActiveAdmins(executor SQLExecutor) (int, error) {
	if executor == nil {
		executor = r.db
	}
	var count int
	query := `SELECT COUNT(*) FROM users WHERE role = $1 AND is_active = TRUE`
	if err := executor.QueryRow(query, models.RoleAdmin).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting active admins: %v", ErrDatabaseError, err)
	}
	return count, nil
}
