package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_admin_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// MemberRepository defines the interface for member-related database operations.
type MemberRepository interface {
	CreateMember(executor SQLExecutor, member *models.Member) (int64, error)
	GetMemberByID(id int64) (*models.Member, error)
	GetMemberByMembershipNumber(number string) (*models.Member, error)
	GetMembers(page, pageSize int, searchTerm *string, activeOnly bool) ([]models.Member, int, error)
	UpdateMember(executor SQLExecutor, member *models.Member) error
	DeactivateMember(executor SQLExecutor, id int64) error
}

type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, membership_number, first_name, last_name, gender, phone_number, email, is_active, created_at, updated_at`

func scanMember(row scanner, member *models.Member) error {
	return row.Scan(
		&member.ID, &member.MembershipNumber, &member.FirstName, &member.LastName,
		&member.Gender, &member.PhoneNumber, &member.Email, &member.IsActive,
		&member.CreatedAt, &member.UpdatedAt,
	)
}

// CreateMember inserts a new member into the database.
func (r *memberRepository) CreateMember(executor SQLExecutor, member *models.Member) (int64, error) {
	query := `INSERT INTO members (membership_number, first_name, last_name, gender, phone_number, email, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = currentTime
	}
	member.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		member.MembershipNumber, member.FirstName, member.LastName, member.Gender,
		member.PhoneNumber, member.Email, member.IsActive, member.CreatedAt, member.UpdatedAt,
	).Scan(&member.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating member: %v", ErrDatabaseError, err)
	}
	return member.ID, nil
}

// GetMemberByID retrieves a member by their ID.
func (r *memberRepository) GetMemberByID(id int64) (*models.Member, error) {
	member := &models.Member{}
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	err := scanMember(r.db.QueryRow(query, id), member)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by ID %d: %v", ErrDatabaseError, id, err)
	}
	return member, nil
}

// GetMemberByMembershipNumber retrieves a member by their human-readable number.
func (r *memberRepository) GetMemberByMembershipNumber(number string) (*models.Member, error) {
	member := &models.Member{}
	query := `SELECT ` + memberColumns + ` FROM members WHERE membership_number = $1`

	err := scanMember(r.db.QueryRow(query, number), member)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member by number %s: %v", ErrDatabaseError, number, err)
	}
	return member, nil
}

// GetMembers retrieves a list of members with pagination and optional search.
func (r *memberRepository) GetMembers(page, pageSize int, searchTerm *string, activeOnly bool) ([]models.Member, int, error) {
	members := []models.Member{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + memberColumns + `, COUNT(*) OVER() as total_count FROM members`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if activeOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if searchTerm != nil && *searchTerm != "" {
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR membership_number ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+*searchTerm+"%")
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY last_name, first_name")

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
	args = append(args, pageSize)
	argCount++
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
	args = append(args, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var member models.Member
		if err := rows.Scan(
			&member.ID, &member.MembershipNumber, &member.FirstName, &member.LastName,
			&member.Gender, &member.PhoneNumber, &member.Email, &member.IsActive,
			&member.CreatedAt, &member.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning member: %v", ErrDatabaseError, err)
		}
		members = append(members, member)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating member rows: %v", ErrDatabaseError, err)
	}
	return members, totalCount, nil
}

// UpdateMember updates mutable member fields.
func (r *memberRepository) UpdateMember(executor SQLExecutor, member *models.Member) error {
	query := `UPDATE members SET
	            first_name = $1, last_name = $2, gender = $3, phone_number = $4,
	            email = $5, is_active = $6, updated_at = $7
	          WHERE id = $8`
	member.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		member.FirstName, member.LastName, member.Gender, member.PhoneNumber,
		member.Email, member.IsActive, member.UpdatedAt, member.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating member ID %d: %v", ErrDatabaseError, member.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateMember soft-deletes a member. Members are never hard-deleted
// because memberships and visits keep referencing them.
func (r *memberRepository) DeactivateMember(executor SQLExecutor, id int64) error {
	query := `UPDATE members SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: deactivating member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
