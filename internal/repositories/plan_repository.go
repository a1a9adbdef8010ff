package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_admin_backend/internal/models"
)

// PlanRepository defines the interface for plan-related database operations.
type PlanRepository interface {
	CreatePlan(executor SQLExecutor, plan *models.Plan) (int64, error)
	GetPlanByID(id int64) (*models.Plan, error)
	GetPlans(activeOnly bool) ([]models.Plan, error)
	UpdatePlan(executor SQLExecutor, plan *models.Plan) error
	DeactivatePlan(executor SQLExecutor, id int64) error
}

type planRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new instance of PlanRepository.
func NewPlanRepository(db *sql.DB) PlanRepository {
	return &planRepository{db: db}
}

const planColumns = `id, name, duration_days, classes_per_week, total_classes, price, is_active, created_at, updated_at`

func scanPlan(row scanner, plan *models.Plan) error {
	return row.Scan(
		&plan.ID, &plan.Name, &plan.DurationDays, &plan.ClassesPerWeek,
		&plan.TotalClasses, &plan.Price, &plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt,
	)
}

// CreatePlan inserts a new plan.
func (r *planRepository) CreatePlan(executor SQLExecutor, plan *models.Plan) (int64, error) {
	query := `INSERT INTO plans (name, duration_days, classes_per_week, total_classes, price, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	plan.CreatedAt = currentTime
	plan.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		plan.Name, plan.DurationDays, plan.ClassesPerWeek, plan.TotalClasses,
		plan.Price, plan.IsActive, plan.CreatedAt, plan.UpdatedAt,
	).Scan(&plan.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating plan: %v", ErrDatabaseError, err)
	}
	return plan.ID, nil
}

// GetPlanByID retrieves a plan by ID.
func (r *planRepository) GetPlanByID(id int64) (*models.Plan, error) {
	plan := &models.Plan{}
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`

	err := scanPlan(r.db.QueryRow(query, id), plan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting plan by ID %d: %v", ErrDatabaseError, id, err)
	}
	return plan, nil
}

// GetPlans lists plans, optionally restricted to active ones.
func (r *planRepository) GetPlans(activeOnly bool) ([]models.Plan, error) {
	plans := []models.Plan{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + planColumns + ` FROM plans`)
	if activeOnly {
		queryBuilder.WriteString(" WHERE is_active = TRUE")
	}
	queryBuilder.WriteString(" ORDER BY price, name")

	rows, err := r.db.Query(queryBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("%w: querying plans: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var plan models.Plan
		if err := scanPlan(rows, &plan); err != nil {
			return nil, fmt.Errorf("%w: scanning plan: %v", ErrDatabaseError, err)
		}
		plans = append(plans, plan)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating plan rows: %v", ErrDatabaseError, err)
	}
	return plans, nil
}

// UpdatePlan updates a plan. Edits apply prospectively; existing memberships
// keep the end date derived at their creation.
func (r *planRepository) UpdatePlan(executor SQLExecutor, plan *models.Plan) error {
	query := `UPDATE plans SET
	            name = $1, duration_days = $2, classes_per_week = $3, total_classes = $4,
	            price = $5, is_active = $6, updated_at = $7
	          WHERE id = $8`
	plan.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		plan.Name, plan.DurationDays, plan.ClassesPerWeek, plan.TotalClasses,
		plan.Price, plan.IsActive, plan.UpdatedAt, plan.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating plan ID %d: %v", ErrDatabaseError, plan.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivatePlan soft-deletes a plan; it stays referenced by history.
func (r *planRepository) DeactivatePlan(executor SQLExecutor, id int64) error {
	query := `UPDATE plans SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	result, err := executor.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: deactivating plan ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
