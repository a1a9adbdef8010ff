package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_admin_backend/internal/models"
)

// VisitRepository defines the interface for visit-related database
// operations. Create and Delete take an SQLExecutor because they always run
// inside the class-accounting transaction owned by the visit service.
type VisitRepository interface {
	CreateVisit(executor SQLExecutor, visit *models.Visit) (int64, error)
	GetVisitByID(executor SQLExecutor, id int64) (*models.Visit, error)
	GetVisits(filters models.VisitFilters) ([]models.Visit, int, error)
	UpdateVisitNotes(executor SQLExecutor, id int64, notes *string) error
	DeleteVisit(executor SQLExecutor, id int64) error
}

type visitRepository struct {
	db *sql.DB
}

// NewVisitRepository creates a new instance of VisitRepository.
func NewVisitRepository(db *sql.DB) VisitRepository {
	return &visitRepository{db: db}
}

const visitJoins = `
	FROM visits v
	JOIN members m ON v.member_id = m.id
`

const visitFields = `
	v.id, v.member_id, v.membership_id, v.visit_date, v.notes, v.created_at,
	m.id, m.membership_number, m.first_name, m.last_name, m.gender, m.phone_number, m.email, m.is_active, m.created_at, m.updated_at
`

func scanVisitRow(row scanner, isList bool) (*models.Visit, int, error) {
	var visit models.Visit
	var member models.Member
	var totalCount int

	scanDest := []interface{}{
		&visit.ID, &visit.MemberID, &visit.MembershipID, &visit.VisitDate, &visit.Notes, &visit.CreatedAt,
		&member.ID, &member.MembershipNumber, &member.FirstName, &member.LastName,
		&member.Gender, &member.PhoneNumber, &member.Email, &member.IsActive, &member.CreatedAt, &member.UpdatedAt,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning visit with details: %v", ErrDatabaseError, err)
	}

	visit.Member = &member
	return &visit, totalCount, nil
}

// CreateVisit inserts a new visit row.
func (r *visitRepository) CreateVisit(executor SQLExecutor, visit *models.Visit) (int64, error) {
	query := `INSERT INTO visits (member_id, membership_id, visit_date, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		visit.MemberID, visit.MembershipID, visit.VisitDate, visit.Notes, visit.CreatedAt,
	).Scan(&visit.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating visit: %v", ErrDatabaseError, err)
	}
	return visit.ID, nil
}

// GetVisitByID retrieves a visit with its member attached.
func (r *visitRepository) GetVisitByID(executor SQLExecutor, id int64) (*models.Visit, error) {
	if executor == nil {
		executor = r.db
	}
	query := "SELECT " + visitFields + visitJoins + " WHERE v.id = $1"
	visit, _, err := scanVisitRow(executor.QueryRow(query, id), false)
	return visit, err
}

// GetVisits retrieves visits with pagination and filters.
func (r *visitRepository) GetVisits(filters models.VisitFilters) ([]models.Visit, int, error) {
	visits := []models.Visit{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + visitFields + ", COUNT(*) OVER() as total_count " + visitJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.MemberID != nil {
		conditions = append(conditions, fmt.Sprintf("v.member_id = $%d", argCount))
		args = append(args, *filters.MemberID)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("v.visit_date >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("v.visit_date < $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY v.visit_date DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying visits: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		visit, scannedTotalCount, scanErr := scanVisitRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		visits = append(visits, *visit)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating visit rows: %v", ErrDatabaseError, err)
	}
	if len(visits) == 0 {
		totalCount = 0
	}
	return visits, totalCount, nil
}

// UpdateVisitNotes mutates only the notes; class accounting is untouched.
func (r *visitRepository) UpdateVisitNotes(executor SQLExecutor, id int64, notes *string) error {
	if executor == nil {
		executor = r.db
	}
	query := `UPDATE visits SET notes = $1 WHERE id = $2`
	result, err := executor.Exec(query, notes, id)
	if err != nil {
		return fmt.Errorf("%w: updating visit ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteVisit removes a visit row. The caller restores the consumed class on
// the membership within the same transaction.
func (r *visitRepository) DeleteVisit(executor SQLExecutor, id int64) error {
	query := `DELETE FROM visits WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting visit ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
