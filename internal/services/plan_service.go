package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/repositories"
)

// --- Custom Service Errors for Plan ---
var (
	ErrPlanNotFound   = errors.New("plan not found")
	ErrPlanValidation = errors.New("plan data validation error")
)

// --- Plan DTOs ---
type CreatePlanRequest struct {
	Name           string  `json:"name" binding:"required"`
	DurationDays   int     `json:"duration_days" binding:"required"`
	ClassesPerWeek int     `json:"classes_per_week" binding:"required"`
	TotalClasses   int     `json:"total_classes" binding:"required"`
	Price          float64 `json:"price" binding:"required"`
}

type UpdatePlanRequest struct {
	Name           *string  `json:"name"`
	DurationDays   *int     `json:"duration_days"`
	ClassesPerWeek *int     `json:"classes_per_week"`
	TotalClasses   *int     `json:"total_classes"`
	Price          *float64 `json:"price"`
	IsActive       *bool    `json:"is_active"`
}

// --- PlanService Interface ---
type PlanService interface {
	CreatePlan(req CreatePlanRequest) (*models.Plan, error)
	GetPlanByID(planID int64) (*models.Plan, error)
	GetPlans(activeOnly bool) ([]models.Plan, error)
	UpdatePlan(planID int64, req UpdatePlanRequest) (*models.Plan, error)
	DeactivatePlan(planID int64) error
}

// --- planService Implementation ---
type planService struct {
	planRepo repositories.PlanRepository
	db       *sql.DB
}

// NewPlanService creates a new instance of PlanService.
func NewPlanService(repo repositories.PlanRepository, db *sql.DB) PlanService {
	return &planService{
		planRepo: repo,
		db:       db,
	}
}

func validatePlanNumbers(durationDays, classesPerWeek, totalClasses int, price float64) error {
	if durationDays <= 0 {
		return fmt.Errorf("%w: duration_days must be positive", ErrPlanValidation)
	}
	if classesPerWeek <= 0 {
		return fmt.Errorf("%w: classes_per_week must be positive", ErrPlanValidation)
	}
	if totalClasses <= 0 {
		return fmt.Errorf("%w: total_classes must be positive", ErrPlanValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrPlanValidation)
	}
	return nil
}

func (s *planService) CreatePlan(req CreatePlanRequest) (*models.Plan, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrPlanValidation)
	}
	if err := validatePlanNumbers(req.DurationDays, req.ClassesPerWeek, req.TotalClasses, req.Price); err != nil {
		return nil, err
	}

	plan := &models.Plan{
		Name:           strings.TrimSpace(req.Name),
		DurationDays:   req.DurationDays,
		ClassesPerWeek: req.ClassesPerWeek,
		TotalClasses:   req.TotalClasses,
		Price:          req.Price,
		IsActive:       true,
	}
	if _, err := s.planRepo.CreatePlan(s.db, plan); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	return plan, nil
}

func (s *planService) GetPlanByID(planID int64) (*models.Plan, error) {
	plan, err := s.planRepo.GetPlanByID(planID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return plan, nil
}

func (s *planService) GetPlans(activeOnly bool) ([]models.Plan, error) {
	plans, err := s.planRepo.GetPlans(activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

func (s *planService) UpdatePlan(planID int64, req UpdatePlanRequest) (*models.Plan, error) {
	plan, err := s.GetPlanByID(planID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrPlanValidation)
		}
		plan.Name = strings.TrimSpace(*req.Name)
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.ClassesPerWeek != nil {
		plan.ClassesPerWeek = *req.ClassesPerWeek
	}
	if req.TotalClasses != nil {
		plan.TotalClasses = *req.TotalClasses
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := validatePlanNumbers(plan.DurationDays, plan.ClassesPerWeek, plan.TotalClasses, plan.Price); err != nil {
		return nil, err
	}

	if err := s.planRepo.UpdatePlan(s.db, plan); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	return plan, nil
}

func (s *planService) DeactivatePlan(planID int64) error {
	err := s.planRepo.DeactivatePlan(s.db, planID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPlanNotFound
		}
		return fmt.Errorf("failed to deactivate plan: %w", err)
	}
	return nil
}
