package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/repositories"
)

// --- Custom Service Errors for Visit ---
var (
	ErrVisitNotFound      = errors.New("visit not found")
	ErrMemberInactive     = errors.New("member is not active")
	ErrNoActiveMembership = errors.New("member has no active membership")
	ErrNoClassesRemaining = errors.New("membership has no classes remaining")
)

// --- Visit DTOs ---
type RecordVisitRequest struct {
	MemberID  int64   `json:"member_id" binding:"required"`
	VisitDate *string `json:"visit_date"` // Format YYYY-MM-DD, defaults to now
	Notes     *string `json:"notes"`
}

type UpdateVisitRequest struct {
	Notes *string `json:"notes"`
}

// --- VisitService Interface ---
type VisitService interface {
	RecordVisit(req RecordVisitRequest) (*models.Visit, error)
	GetVisitByID(visitID int64) (*models.Visit, error)
	GetVisits(filters models.VisitFilters) ([]models.Visit, int, error)
	UpdateVisit(visitID int64, req UpdateVisitRequest) (*models.Visit, error)
	DeleteVisit(visitID int64) error
}

// --- visitService Implementation ---
type visitService struct {
	visitRepo      repositories.VisitRepository
	membershipRepo repositories.MembershipRepository
	memberRepo     repositories.MemberRepository
	txRunner       repositories.TxRunner
}

// NewVisitService creates a new instance of VisitService.
func NewVisitService(
	visitRepo repositories.VisitRepository,
	membershipRepo repositories.MembershipRepository,
	memberRepo repositories.MemberRepository,
	txRunner repositories.TxRunner,
) VisitService {
	return &visitService{
		visitRepo:      visitRepo,
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		txRunner:       txRunner,
	}
}

// RecordVisit admits a member to a class. The admission check and the class
// consumption run in one transaction with the membership row locked, so two
// front-desk terminals admitting the same member cannot both take the last
// remaining class.
func (s *visitService) RecordVisit(req RecordVisitRequest) (*models.Visit, error) {
	member, err := s.memberRepo.GetMemberByID(req.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member: %w", err)
	}
	if !member.IsActive {
		return nil, ErrMemberInactive
	}

	// A backdated visit is checked against the membership that covered that
	// day, not today's.
	visitDate := time.Now()
	if req.VisitDate != nil && strings.TrimSpace(*req.VisitDate) != "" {
		visitDate, err = parseDate(*req.VisitDate)
		if err != nil {
			return nil, err
		}
	}

	visit := &models.Visit{
		MemberID:  req.MemberID,
		VisitDate: visitDate,
		Notes:     req.Notes,
	}

	err = s.txRunner.RunTx(func(executor repositories.SQLExecutor) error {
		membership, err := s.membershipRepo.FindActiveMembership(executor, req.MemberID, visit.VisitDate, true)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrNoActiveMembership
			}
			return err
		}
		if membership.ClassesRemaining() <= 0 {
			return ErrNoClassesRemaining
		}

		if err := s.membershipRepo.IncrementClassesUsed(executor, membership.ID, 1); err != nil {
			return err
		}

		visit.MembershipID = membership.ID
		_, err = s.visitRepo.CreateVisit(executor, visit)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNoActiveMembership) || errors.Is(err, ErrNoClassesRemaining) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}

	visit.Member = member
	return visit, nil
}

func (s *visitService) GetVisitByID(visitID int64) (*models.Visit, error) {
	visit, err := s.visitRepo.GetVisitByID(nil, visitID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return visit, nil
}

func (s *visitService) GetVisits(filters models.VisitFilters) ([]models.Visit, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	return s.visitRepo.GetVisits(filters)
}

// UpdateVisit edits the notes only. Class accounting never changes here.
func (s *visitService) UpdateVisit(visitID int64, req UpdateVisitRequest) (*models.Visit, error) {
	if err := s.visitRepo.UpdateVisitNotes(nil, visitID, req.Notes); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVisitNotFound
		}
		return nil, fmt.Errorf("failed to update visit: %w", err)
	}
	return s.GetVisitByID(visitID)
}

// DeleteVisit removes a mistaken admission and hands the consumed class back
// to the membership, in one transaction. The counter is clamped at zero, so
// a membership whose usage was corrected by hand cannot go negative.
func (s *visitService) DeleteVisit(visitID int64) error {
	err := s.txRunner.RunTx(func(executor repositories.SQLExecutor) error {
		visit, err := s.visitRepo.GetVisitByID(executor, visitID)
		if err != nil {
			return err
		}
		if err := s.visitRepo.DeleteVisit(executor, visitID); err != nil {
			return err
		}
		if err := s.membershipRepo.IncrementClassesUsed(executor, visit.MembershipID, -1); err != nil {
			// The membership may have been purged by hand; the restore is
			// then a no-op.
			if !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrVisitNotFound
		}
		return fmt.Errorf("failed to delete visit: %w", err)
	}
	return nil
}
