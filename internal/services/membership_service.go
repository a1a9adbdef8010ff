package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/repositories"
	"gym_admin_backend/pkg/utils"
)

// --- Custom Service Errors for Membership ---
var (
	ErrMembershipNotFound   = errors.New("membership not found")
	ErrMembershipValidation = errors.New("membership data validation error")
	ErrPlanInactive         = errors.New("plan is not active")
	ErrDateFormat           = errors.New("invalid date format, please use YYYY-MM-DD")
)

// --- Membership DTOs ---
type CreateMembershipRequest struct {
	MemberID      int64    `json:"member_id" binding:"required"`
	PlanID        int64    `json:"plan_id" binding:"required"`
	StartDate     string   `json:"start_date" binding:"required"` // Format YYYY-MM-DD
	PaymentMethod string   `json:"payment_method" binding:"required"`
	TotalPaid     *float64 `json:"total_paid"` // defaults to the plan price
}

type UpdateMembershipRequest struct {
	PlanID        *int64   `json:"plan_id"`
	StartDate     *string  `json:"start_date"` // Format YYYY-MM-DD
	ClassesUsed   *int     `json:"classes_used"`
	PaymentMethod *string  `json:"payment_method"`
	TotalPaid     *float64 `json:"total_paid"`
	IsActive      *bool    `json:"is_active"`
}

// --- MembershipService Interface ---
type MembershipService interface {
	CreateMembership(req CreateMembershipRequest) (*models.Membership, error)
	GetMembershipByID(membershipID int64) (*models.Membership, error)
	GetMemberships(filters models.MembershipFilters) ([]models.Membership, int, error)
	GetActiveMembershipForMember(memberID int64) (*models.Membership, error)
	UpdateMembership(membershipID int64, req UpdateMembershipRequest) (*models.Membership, error)
	DeactivateMembership(membershipID int64) error
}

// --- membershipService Implementation ---
type membershipService struct {
	membershipRepo repositories.MembershipRepository
	memberRepo     repositories.MemberRepository
	planRepo       repositories.PlanRepository
	txRunner       repositories.TxRunner
}

// NewMembershipService creates a new instance of MembershipService.
func NewMembershipService(
	membershipRepo repositories.MembershipRepository,
	memberRepo repositories.MemberRepository,
	planRepo repositories.PlanRepository,
	txRunner repositories.TxRunner,
) MembershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		txRunner:       txRunner,
	}
}

func parseDate(dateStr string) (time.Time, error) {
	parsed, err := time.Parse(utils.DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, ErrDateFormat
	}
	return parsed, nil
}

// endDateFor derives the expiry from the start date and the plan duration.
func endDateFor(startDate time.Time, durationDays int) time.Time {
	return startDate.AddDate(0, 0, durationDays)
}

// CreateMembership purchases a plan for a member. Any previous active
// membership is superseded: flipped inactive in the same transaction that
// inserts the new row, so the member never holds two active memberships.
func (s *membershipService) CreateMembership(req CreateMembershipRequest) (*models.Membership, error) {
	if !models.IsValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("%w: payment_method must be one of CASH, CARD, TRANSFER", ErrMembershipValidation)
	}
	if req.TotalPaid != nil && *req.TotalPaid <= 0 {
		return nil, fmt.Errorf("%w: total_paid must be positive", ErrMembershipValidation)
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.GetMemberByID(req.MemberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member: %w", err)
	}

	plan, err := s.planRepo.GetPlanByID(req.PlanID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if !plan.IsActive {
		return nil, ErrPlanInactive
	}

	totalPaid := plan.Price
	if req.TotalPaid != nil {
		totalPaid = *req.TotalPaid
	}

	membership := &models.Membership{
		MemberID:      req.MemberID,
		PlanID:        req.PlanID,
		StartDate:     startDate,
		EndDate:       endDateFor(startDate, plan.DurationDays),
		ClassesUsed:   0,
		PaymentMethod: req.PaymentMethod,
		TotalPaid:     totalPaid,
		IsActive:      true,
	}

	err = s.txRunner.RunTx(func(executor repositories.SQLExecutor) error {
		if err := s.membershipRepo.DeactivateAllActive(executor, req.MemberID); err != nil {
			return err
		}
		_, err := s.membershipRepo.CreateMembership(executor, membership)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	membership.Plan = plan
	return membership, nil
}

func (s *membershipService) GetMembershipByID(membershipID int64) (*models.Membership, error) {
	membership, err := s.membershipRepo.GetMembershipByID(membershipID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return membership, nil
}

func (s *membershipService) GetMemberships(filters models.MembershipFilters) ([]models.Membership, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	return s.membershipRepo.GetMemberships(filters)
}

// GetActiveMembershipForMember returns the membership a visit would consume
// from right now, or ErrMembershipNotFound when none qualifies.
func (s *membershipService) GetActiveMembershipForMember(memberID int64) (*models.Membership, error) {
	membership, err := s.membershipRepo.FindActiveMembership(nil, memberID, time.Now(), false)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find active membership: %w", err)
	}
	return membership, nil
}

// UpdateMembership applies admin corrections. The end date is recomputed only
// when the plan or the start date changes; otherwise the stored expiry stands.
func (s *membershipService) UpdateMembership(membershipID int64, req UpdateMembershipRequest) (*models.Membership, error) {
	membership, err := s.GetMembershipByID(membershipID)
	if err != nil {
		return nil, err
	}

	recomputeEnd := false

	if req.PlanID != nil && *req.PlanID != membership.PlanID {
		membership.PlanID = *req.PlanID
		recomputeEnd = true
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		if !startDate.Equal(membership.StartDate) {
			membership.StartDate = startDate
			recomputeEnd = true
		}
	}
	if req.ClassesUsed != nil {
		if *req.ClassesUsed < 0 {
			return nil, fmt.Errorf("%w: classes_used cannot be negative", ErrMembershipValidation)
		}
		membership.ClassesUsed = *req.ClassesUsed
	}
	if req.PaymentMethod != nil {
		if !models.IsValidPaymentMethod(*req.PaymentMethod) {
			return nil, fmt.Errorf("%w: payment_method must be one of CASH, CARD, TRANSFER", ErrMembershipValidation)
		}
		membership.PaymentMethod = *req.PaymentMethod
	}
	if req.TotalPaid != nil {
		if *req.TotalPaid <= 0 {
			return nil, fmt.Errorf("%w: total_paid must be positive", ErrMembershipValidation)
		}
		membership.TotalPaid = *req.TotalPaid
	}
	if req.IsActive != nil {
		membership.IsActive = *req.IsActive
	}

	if recomputeEnd {
		plan, err := s.planRepo.GetPlanByID(membership.PlanID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrPlanNotFound
			}
			return nil, fmt.Errorf("failed to load plan: %w", err)
		}
		membership.EndDate = endDateFor(membership.StartDate, plan.DurationDays)
		membership.Plan = plan
	}

	err = s.txRunner.RunTx(func(executor repositories.SQLExecutor) error {
		return s.membershipRepo.UpdateMembership(executor, membership)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}
	return membership, nil
}

// DeactivateMembership cancels a membership ahead of its expiry. Cancelling
// an already-inactive membership succeeds without effect.
func (s *membershipService) DeactivateMembership(membershipID int64) error {
	err := s.txRunner.RunTx(func(executor repositories.SQLExecutor) error {
		return s.membershipRepo.DeactivateMembership(executor, membershipID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMembershipNotFound
		}
		return fmt.Errorf("failed to deactivate membership: %w", err)
	}
	return nil
}
