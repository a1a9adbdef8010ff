package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_admin_backend/internal/models"
)

// StaffRepository defines the interface for staff and work-session database
// operations. One repository serves both trainers and cleaning staff; the
// staff_type column discriminates.
type StaffRepository interface {
	CreateStaff(executor SQLExecutor, staff *models.Staff) (int64, error)
	GetStaffByID(id int64) (*models.Staff, error)
	GetStaff(staffType *string, activeOnly bool, page, pageSize int) ([]models.Staff, int, error)
	UpdateStaff(executor SQLExecutor, staff *models.Staff) error
	DeactivateStaff(executor SQLExecutor, id int64) error

	CreateSession(executor SQLExecutor, session *models.StaffSession) (int64, error)
	GetSessionByID(id int64) (*models.StaffSession, error)
	GetSessions(filters models.SessionFilters) ([]models.StaffSession, int, error)
	UpdateSession(executor SQLExecutor, session *models.StaffSession) error
	DeleteSession(executor SQLExecutor, id int64) error

	// GetCompletedSessionsForPeriod returns the completed sessions (end_time
	// set) of active staff of the given type whose start time falls in
	// [from, to), with the staff record attached. Feeds the hours report.
	GetCompletedSessionsForPeriod(staffType string, from, to time.Time) ([]models.StaffSession, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, full_name, staff_type, hourly_rate, birth_date, is_active, created_at, updated_at`

func scanStaff(row scanner, staff *models.Staff) error {
	var birthDate sql.NullTime
	err := row.Scan(
		&staff.ID, &staff.FullName, &staff.StaffType, &staff.HourlyRate,
		&birthDate, &staff.IsActive, &staff.CreatedAt, &staff.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if birthDate.Valid {
		dateStr := birthDate.Time.Format("2006-01-02")
		staff.BirthDate = &dateStr
	}
	return nil
}

// CreateStaff inserts a new staff member.
func (r *staffRepository) CreateStaff(executor SQLExecutor, staff *models.Staff) (int64, error) {
	query := `INSERT INTO staff (full_name, staff_type, hourly_rate, birth_date, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	staff.CreatedAt = currentTime
	staff.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		staff.FullName, staff.StaffType, staff.HourlyRate, staff.BirthDate,
		staff.IsActive, staff.CreatedAt, staff.UpdatedAt,
	).Scan(&staff.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating staff member: %v", ErrDatabaseError, err)
	}
	return staff.ID, nil
}

// GetStaffByID retrieves a staff member by ID.
func (r *staffRepository) GetStaffByID(id int64) (*models.Staff, error) {
	staff := &models.Staff{}
	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	err := scanStaff(r.db.QueryRow(query, id), staff)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting staff member by ID %d: %v", ErrDatabaseError, id, err)
	}
	return staff, nil
}

// GetStaff lists staff with pagination, optionally filtered by type.
func (r *staffRepository) GetStaff(staffType *string, activeOnly bool, page, pageSize int) ([]models.Staff, int, error) {
	staffMembers := []models.Staff{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + staffColumns + `, COUNT(*) OVER() as total_count FROM staff`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if staffType != nil && *staffType != "" {
		conditions = append(conditions, fmt.Sprintf("staff_type = $%d", argCount))
		args = append(args, *staffType)
		argCount++
	}
	if activeOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY full_name")

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
	args = append(args, pageSize)
	argCount++
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
	args = append(args, (page-1)*pageSize)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying staff: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staff models.Staff
		var birthDate sql.NullTime
		if err := rows.Scan(
			&staff.ID, &staff.FullName, &staff.StaffType, &staff.HourlyRate,
			&birthDate, &staff.IsActive, &staff.CreatedAt, &staff.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning staff member: %v", ErrDatabaseError, err)
		}
		if birthDate.Valid {
			dateStr := birthDate.Time.Format("2006-01-02")
			staff.BirthDate = &dateStr
		}
		staffMembers = append(staffMembers, staff)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating staff rows: %v", ErrDatabaseError, err)
	}
	return staffMembers, totalCount, nil
}

// UpdateStaff persists staff edits.
func (r *staffRepository) UpdateStaff(executor SQLExecutor, staff *models.Staff) error {
	query := `UPDATE staff SET
	            full_name = $1, staff_type = $2, hourly_rate = $3, birth_date = $4,
	            is_active = $5, updated_at = $6
	          WHERE id = $7`
	staff.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		staff.FullName, staff.StaffType, staff.HourlyRate, staff.BirthDate,
		staff.IsActive, staff.UpdatedAt, staff.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating staff member ID %d: %v", ErrDatabaseError, staff.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateStaff soft-deletes a staff member; sessions keep referencing them.
func (r *staffRepository) DeactivateStaff(executor SQLExecutor, id int64) error {
	query := `UPDATE staff SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: deactivating staff member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Session methods ---

const sessionJoins = `
	FROM staff_sessions ss
	JOIN staff s ON ss.staff_id = s.id
`

const sessionFields = `
	ss.id, ss.staff_id, ss.session_date, ss.start_time, ss.end_time, ss.total_hours, ss.notes, ss.created_at, ss.updated_at,
	s.id, s.full_name, s.staff_type, s.hourly_rate, s.birth_date, s.is_active, s.created_at, s.updated_at
`

func scanSessionRow(row scanner, isList bool) (*models.StaffSession, int, error) {
	var session models.StaffSession
	var staff models.Staff
	var sessionDate time.Time
	var birthDate sql.NullTime
	var totalCount int

	scanDest := []interface{}{
		&session.ID, &session.StaffID, &sessionDate, &session.StartTime,
		&session.EndTime, &session.TotalHours, &session.Notes, &session.CreatedAt, &session.UpdatedAt,
		&staff.ID, &staff.FullName, &staff.StaffType, &staff.HourlyRate,
		&birthDate, &staff.IsActive, &staff.CreatedAt, &staff.UpdatedAt,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning session with details: %v", ErrDatabaseError, err)
	}

	session.SessionDate = sessionDate.Format("2006-01-02")
	if birthDate.Valid {
		dateStr := birthDate.Time.Format("2006-01-02")
		staff.BirthDate = &dateStr
	}
	session.Staff = &staff
	return &session, totalCount, nil
}

// CreateSession inserts a new work session.
func (r *staffRepository) CreateSession(executor SQLExecutor, session *models.StaffSession) (int64, error) {
	query := `INSERT INTO staff_sessions (staff_id, session_date, start_time, end_time, total_hours, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	session.CreatedAt = currentTime
	session.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		session.StaffID, session.SessionDate, session.StartTime, session.EndTime,
		session.TotalHours, session.Notes, session.CreatedAt, session.UpdatedAt,
	).Scan(&session.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating session: %v", ErrDatabaseError, err)
	}
	return session.ID, nil
}

// GetSessionByID retrieves a session with its staff member attached.
func (r *staffRepository) GetSessionByID(id int64) (*models.StaffSession, error) {
	query := "SELECT " + sessionFields + sessionJoins + " WHERE ss.id = $1"
	session, _, err := scanSessionRow(r.db.QueryRow(query, id), false)
	return session, err
}

// GetSessions retrieves sessions with pagination and filters.
func (r *staffRepository) GetSessions(filters models.SessionFilters) ([]models.StaffSession, int, error) {
	sessions := []models.StaffSession{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + sessionFields + ", COUNT(*) OVER() as total_count " + sessionJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("ss.staff_id = $%d", argCount))
		args = append(args, *filters.StaffID)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("ss.start_time >= $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("ss.start_time < $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}
	if filters.OpenOnly {
		conditions = append(conditions, "ss.end_time IS NULL")
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY ss.start_time DESC")

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
		return nil, 0, fmt.Errorf("%w: querying sessions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		session, scannedTotalCount, scanErr := scanSessionRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		sessions = append(sessions, *session)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating session rows: %v", ErrDatabaseError, err)
	}
	if len(sessions) == 0 {
		totalCount = 0
	}
	return sessions, totalCount, nil
}

// UpdateSession persists session edits, including recomputed total hours.
func (r *staffRepository) UpdateSession(executor SQLExecutor, session *models.StaffSession) error {
	query := `UPDATE staff_sessions SET
	            session_date = $1, start_time = $2, end_time = $3, total_hours = $4,
	            notes = $5, updated_at = $6
	          WHERE id = $7`
	session.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		session.SessionDate, session.StartTime, session.EndTime, session.TotalHours,
		session.Notes, session.UpdatedAt, session.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating session ID %d: %v", ErrDatabaseError, session.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSession removes a session row.
func (r *staffRepository) DeleteSession(executor SQLExecutor, id int64) error {
	query := `DELETE FROM staff_sessions WHERE id = $1`
	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting session ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCompletedSessionsForPeriod feeds the monthly hours report.
func (r *staffRepository) GetCompletedSessionsForPeriod(staffType string, from, to time.Time) ([]models.StaffSession, error) {
	query := "SELECT " + sessionFields + sessionJoins + `
	          WHERE s.staff_type = $1 AND s.is_active = TRUE
	            AND ss.end_time IS NOT NULL
	            AND ss.start_time >= $2 AND ss.start_time < $3
	          ORDER BY s.id, ss.start_time`

	rows, err := r.db.Query(query, staffType, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sessions for period: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	sessions := []models.StaffSession{}
	for rows.Next() {
		session, _, scanErr := scanSessionRow(rows, false)
		if scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, *session)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating period session rows: %v", ErrDatabaseError, err)
	}
	return sessions, nil
}
