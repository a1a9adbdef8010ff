package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_admin_backend/internal/models"
)

// MembershipRepository defines the interface for membership-related database
// operations. Methods taking an SQLExecutor participate in the compound
// transactions run by the services (supersede-on-create, visit accounting).
type MembershipRepository interface {
	CreateMembership(executor SQLExecutor, membership *models.Membership) (int64, error)
	GetMembershipByID(id int64) (*models.Membership, error)
	GetMemberships(filters models.MembershipFilters) ([]models.Membership, int, error)
	// FindActiveMembership returns the member's active membership whose end
	// date has not passed as of the given instant, with the plan attached.
	// With forUpdate set the membership row is locked for the enclosing
	// transaction, serializing concurrent class accounting.
	FindActiveMembership(executor SQLExecutor, memberID int64, asOf time.Time, forUpdate bool) (*models.Membership, error)
	DeactivateAllActive(executor SQLExecutor, memberID int64) error
	// IncrementClassesUsed adjusts classes_used by delta, clamped at zero so
	// replayed visit deletions cannot drive the counter negative.
	IncrementClassesUsed(executor SQLExecutor, membershipID int64, delta int) error
	UpdateMembership(executor SQLExecutor, membership *models.Membership) error
	DeactivateMembership(executor SQLExecutor, id int64) error
}

type membershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new instance of MembershipRepository.
func NewMembershipRepository(db *sql.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

const membershipJoins = `
	FROM memberships ms
	JOIN members m ON ms.member_id = m.id
	JOIN plans p ON ms.plan_id = p.id
`

const membershipFields = `
	ms.id, ms.member_id, ms.plan_id, ms.start_date, ms.end_date,
	ms.classes_used, ms.payment_method, ms.total_paid, ms.is_active, ms.created_at, ms.updated_at,
	m.id, m.membership_number, m.first_name, m.last_name, m.gender, m.phone_number, m.email, m.is_active, m.created_at, m.updated_at,
	p.id, p.name, p.duration_days, p.classes_per_week, p.total_classes, p.price, p.is_active, p.created_at, p.updated_at
`

// scanMembershipRow scans a membership row together with its joined member
// and plan. Used by GetMembershipByID, GetMemberships and FindActiveMembership.
func scanMembershipRow(row scanner, isList bool) (*models.Membership, int, error) {
	var ms models.Membership
	var member models.Member
	var plan models.Plan
	var totalCount int

	scanDest := []interface{}{
		&ms.ID, &ms.MemberID, &ms.PlanID, &ms.StartDate, &ms.EndDate,
		&ms.ClassesUsed, &ms.PaymentMethod, &ms.TotalPaid, &ms.IsActive, &ms.CreatedAt, &ms.UpdatedAt,
		&member.ID, &member.MembershipNumber, &member.FirstName, &member.LastName,
		&member.Gender, &member.PhoneNumber, &member.Email, &member.IsActive, &member.CreatedAt, &member.UpdatedAt,
		&plan.ID, &plan.Name, &plan.DurationDays, &plan.ClassesPerWeek,
		&plan.TotalClasses, &plan.Price, &plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning membership with details: %v", ErrDatabaseError, err)
	}

	ms.Member = &member
	ms.Plan = &plan
	return &ms, totalCount, nil
}

// CreateMembership inserts a new membership row.
func (r *membershipRepository) CreateMembership(executor SQLExecutor, membership *models.Membership) (int64, error) {
	query := `INSERT INTO memberships
	            (member_id, plan_id, start_date, end_date, classes_used, payment_method, total_paid, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	currentTime := time.Now()
	membership.CreatedAt = currentTime
	membership.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		membership.MemberID, membership.PlanID, membership.StartDate, membership.EndDate,
		membership.ClassesUsed, membership.PaymentMethod, membership.TotalPaid,
		membership.IsActive, membership.CreatedAt, membership.UpdatedAt,
	).Scan(&membership.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating membership: %v", ErrDatabaseError, err)
	}
	return membership.ID, nil
}

// GetMembershipByID retrieves a membership with member and plan attached.
func (r *membershipRepository) GetMembershipByID(id int64) (*models.Membership, error) {
	query := "SELECT " + membershipFields + membershipJoins + " WHERE ms.id = $1"
	membership, _, err := scanMembershipRow(r.db.QueryRow(query, id), false)
	return membership, err
}

// GetMemberships retrieves memberships with pagination and filters.
func (r *membershipRepository) GetMemberships(filters models.MembershipFilters) ([]models.Membership, int, error) {
	memberships := []models.Membership{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + membershipFields + ", COUNT(*) OVER() as total_count " + membershipJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.MemberID != nil {
		conditions = append(conditions, fmt.Sprintf("ms.member_id = $%d", argCount))
		args = append(args, *filters.MemberID)
		argCount++
	}
	if filters.PlanID != nil {
		conditions = append(conditions, fmt.Sprintf("ms.plan_id = $%d", argCount))
		args = append(args, *filters.PlanID)
		argCount++
	}
	if filters.Active != nil {
		conditions = append(conditions, fmt.Sprintf("ms.is_active = $%d", argCount))
		args = append(args, *filters.Active)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY ms.start_date DESC, ms.id DESC")

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
		return nil, 0, fmt.Errorf("%w: querying memberships: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		membership, scannedTotalCount, scanErr := scanMembershipRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		memberships = append(memberships, *membership)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating membership rows: %v", ErrDatabaseError, err)
	}
	if len(memberships) == 0 {
		totalCount = 0
	}
	return memberships, totalCount, nil
}

// FindActiveMembership returns the qualifying membership for visit admission.
// Eligibility is inclusive of the end day: a membership ending today still
// admits, so asOf is compared at the start of its day.
func (r *membershipRepository) FindActiveMembership(executor SQLExecutor, memberID int64, asOf time.Time, forUpdate bool) (*models.Membership, error) {
	query := "SELECT " + membershipFields + membershipJoins + `
	          WHERE ms.member_id = $1 AND ms.is_active = TRUE AND ms.end_date >= $2
	          ORDER BY ms.start_date DESC
	          LIMIT 1`
	if forUpdate {
		// Lock only the membership row; the joined member/plan rows stay free.
		query += " FOR UPDATE OF ms"
	}
	if executor == nil {
		executor = r.db
	}

	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	membership, _, err := scanMembershipRow(executor.QueryRow(query, memberID, dayStart), false)
	return membership, err
}

// DeactivateAllActive flips every active membership of the member to
// inactive. Part of the supersede-on-create transaction; affecting zero rows
// is not an error (first membership purchase).
func (r *membershipRepository) DeactivateAllActive(executor SQLExecutor, memberID int64) error {
	query := `UPDATE memberships SET is_active = FALSE, updated_at = $1 WHERE member_id = $2 AND is_active = TRUE`
	if _, err := executor.Exec(query, time.Now(), memberID); err != nil {
		return fmt.Errorf("%w: deactivating active memberships for member %d: %v", ErrDatabaseError, memberID, err)
	}
	return nil
}

// IncrementClassesUsed adjusts the consumed-class counter, clamped at zero.
func (r *membershipRepository) IncrementClassesUsed(executor SQLExecutor, membershipID int64, delta int) error {
	query := `UPDATE memberships SET classes_used = GREATEST(classes_used + $1, 0), updated_at = $2 WHERE id = $3`
	result, err := executor.Exec(query, delta, time.Now(), membershipID)
	if err != nil {
		return fmt.Errorf("%w: adjusting classes_used for membership %d: %v", ErrDatabaseError, membershipID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMembership persists admin edits to a membership.
func (r *membershipRepository) UpdateMembership(executor SQLExecutor, membership *models.Membership) error {
	query := `UPDATE memberships SET
	            plan_id = $1, start_date = $2, end_date = $3, classes_used = $4,
	            payment_method = $5, total_paid = $6, is_active = $7, updated_at = $8
	          WHERE id = $9`
	membership.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		membership.PlanID, membership.StartDate, membership.EndDate, membership.ClassesUsed,
		membership.PaymentMethod, membership.TotalPaid, membership.IsActive,
		membership.UpdatedAt, membership.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating membership ID %d: %v", ErrDatabaseError, membership.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateMembership soft-cancels a membership. Already-inactive rows are
// updated again without complaint, making the operation idempotent.
func (r *membershipRepository) DeactivateMembership(executor SQLExecutor, id int64) error {
	query := `UPDATE memberships SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: deactivating membership ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
