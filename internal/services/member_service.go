package services

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/repositories"
	"gym_admin_backend/pkg/utils"
)

// --- Custom Service Errors for Member ---
var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrMemberValidation = errors.New("member data validation error")
)

// --- Member DTOs ---
type CreateMemberRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	Gender      string  `json:"gender" binding:"required"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
}

type UpdateMemberRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Gender      *string `json:"gender"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	IsActive    *bool   `json:"is_active"`
}

// --- MemberService Interface ---
type MemberService interface {
	CreateMember(req CreateMemberRequest) (*models.Member, error)
	GetMemberByID(memberID int64) (*models.Member, error)
	GetMemberByMembershipNumber(number string) (*models.Member, error)
	GetMembers(page, pageSize int, searchTerm *string, activeOnly bool) ([]models.Member, int, error)
	UpdateMember(memberID int64, req UpdateMemberRequest) (*models.Member, error)
	DeactivateMember(memberID int64) error
}

// --- memberService Implementation ---
type memberService struct {
	memberRepo repositories.MemberRepository
	db         *sql.DB
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(repo repositories.MemberRepository, db *sql.DB) MemberService {
	return &memberService{
		memberRepo: repo,
		db:         db,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateMemberFields(gender string, email *string) error {
	if !models.IsValidGender(gender) {
		return fmt.Errorf("%w: gender must be one of MALE, FEMALE, OTHER", ErrMemberValidation)
	}
	if email != nil && strings.TrimSpace(*email) != "" && !emailRegex.MatchString(strings.TrimSpace(*email)) {
		return fmt.Errorf("%w: email format is invalid", ErrMemberValidation)
	}
	return nil
}

func (s *memberService) CreateMember(req CreateMemberRequest) (*models.Member, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrMemberValidation)
	}
	if err := validateMemberFields(req.Gender, req.Email); err != nil {
		return nil, err
	}

	member := &models.Member{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		IsActive:    true,
	}

	// The generated number carries a random suffix, so a collision is
	// possible. Retry a few times before giving up.
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		member.MembershipNumber = utils.GenerateMembershipNumber(time.Now())
		_, lastErr = s.memberRepo.CreateMember(s.db, member)
		if lastErr == nil {
			return member, nil
		}
		if !errors.Is(lastErr, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("failed to create member: %w", lastErr)
		}
	}
	return nil, fmt.Errorf("failed to allocate membership number: %w", lastErr)
}

func (s *memberService) GetMemberByID(memberID int64) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func (s *memberService) GetMemberByMembershipNumber(number string) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByMembershipNumber(strings.TrimSpace(number))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by number: %w", err)
	}
	return member, nil
}

func (s *memberService) GetMembers(page, pageSize int, searchTerm *string, activeOnly bool) ([]models.Member, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.memberRepo.GetMembers(page, pageSize, searchTerm, activeOnly)
}

func (s *memberService) UpdateMember(memberID int64, req UpdateMemberRequest) (*models.Member, error) {
	member, err := s.GetMemberByID(memberID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, fmt.Errorf("%w: first name cannot be empty", ErrMemberValidation)
		}
		member.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, fmt.Errorf("%w: last name cannot be empty", ErrMemberValidation)
		}
		member.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Gender != nil {
		member.Gender = *req.Gender
	}
	if req.PhoneNumber != nil {
		member.PhoneNumber = req.PhoneNumber
	}
	if req.Email != nil {
		member.Email = req.Email
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := validateMemberFields(member.Gender, member.Email); err != nil {
		return nil, err
	}

	if err := s.memberRepo.UpdateMember(s.db, member); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	return member, nil
}

func (s *memberService) DeactivateMember(memberID int64) error {
	err := s.memberRepo.DeactivateMember(s.db, memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to deactivate member: %w", err)
	}
	return nil
}
