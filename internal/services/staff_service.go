package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/repositories"
	"gym_admin_backend/pkg/utils"
)

// --- Custom Service Errors for Staff ---
var (
	ErrStaffNotFound        = errors.New("staff member not found")
	ErrStaffValidation      = errors.New("staff data validation error")
	ErrSessionNotFound      = errors.New("work session not found")
	ErrSessionAlreadyClosed = errors.New("work session is already closed")
	ErrOpenSessionExists    = errors.New("staff member already has an open session")
	ErrSessionTimeOrder     = errors.New("session end time must be after its start time")
)

// --- Staff DTOs ---
type CreateStaffRequest struct {
	FullName   string  `json:"full_name" binding:"required"`
	StaffType  string  `json:"staff_type" binding:"required"`
	HourlyRate float64 `json:"hourly_rate" binding:"required"`
	BirthDate  *string `json:"birth_date"` // Format YYYY-MM-DD
}

type UpdateStaffRequest struct {
	FullName   *string  `json:"full_name"`
	StaffType  *string  `json:"staff_type"`
	HourlyRate *float64 `json:"hourly_rate"`
	BirthDate  *string  `json:"birth_date"` // Format YYYY-MM-DD
	IsActive   *bool    `json:"is_active"`
}

type OpenSessionRequest struct {
	StaffID int64   `json:"staff_id" binding:"required"`
	Notes   *string `json:"notes"`
}

type UpdateSessionRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Notes     *string    `json:"notes"`
}

// --- StaffService Interface ---
type StaffService interface {
	CreateStaff(req CreateStaffRequest) (*models.Staff, error)
	GetStaffByID(staffID int64) (*models.Staff, error)
	GetStaff(staffType *string, activeOnly bool, page, pageSize int) ([]models.Staff, int, error)
	UpdateStaff(staffID int64, req UpdateStaffRequest) (*models.Staff, error)
	DeactivateStaff(staffID int64) error

	OpenSession(req OpenSessionRequest) (*models.StaffSession, error)
	CloseSession(sessionID int64) (*models.StaffSession, error)
	GetSessionByID(sessionID int64) (*models.StaffSession, error)
	GetSessions(filters models.SessionFilters) ([]models.StaffSession, int, error)
	UpdateSession(sessionID int64, req UpdateSessionRequest) (*models.StaffSession, error)
	DeleteSession(sessionID int64) error
}

// --- staffService Implementation ---
type staffService struct {
	staffRepo repositories.StaffRepository
	db        *sql.DB
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(repo repositories.StaffRepository, db *sql.DB) StaffService {
	return &staffService{
		staffRepo: repo,
		db:        db,
	}
}

func validateStaffFields(staffType string, hourlyRate float64, birthDate *string) error {
	if !models.IsValidStaffType(staffType) {
		return fmt.Errorf("%w: staff_type must be one of TRAINER, CLEANING", ErrStaffValidation)
	}
	if hourlyRate < 0 {
		return fmt.Errorf("%w: hourly_rate cannot be negative", ErrStaffValidation)
	}
	if birthDate != nil && strings.TrimSpace(*birthDate) != "" {
		if _, err := time.Parse(utils.DateLayout, *birthDate); err != nil {
			return ErrDateFormat
		}
	}
	return nil
}

func (s *staffService) CreateStaff(req CreateStaffRequest) (*models.Staff, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrStaffValidation)
	}
	if err := validateStaffFields(req.StaffType, req.HourlyRate, req.BirthDate); err != nil {
		return nil, err
	}

	staff := &models.Staff{
		FullName:   strings.TrimSpace(req.FullName),
		StaffType:  req.StaffType,
		HourlyRate: req.HourlyRate,
		BirthDate:  req.BirthDate,
		IsActive:   true,
	}
	if _, err := s.staffRepo.CreateStaff(s.db, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return staff, nil
}

func (s *staffService) GetStaffByID(staffID int64) (*models.Staff, error) {
	staff, err := s.staffRepo.GetStaffByID(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}
	return staff, nil
}

func (s *staffService) GetStaff(staffType *string, activeOnly bool, page, pageSize int) ([]models.Staff, int, error) {
	if staffType != nil && *staffType != "" && !models.IsValidStaffType(*staffType) {
		return nil, 0, fmt.Errorf("%w: staff_type must be one of TRAINER, CLEANING", ErrStaffValidation)
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.staffRepo.GetStaff(staffType, activeOnly, page, pageSize)
}

func (s *staffService) UpdateStaff(staffID int64, req UpdateStaffRequest) (*models.Staff, error) {
	staff, err := s.GetStaffByID(staffID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return nil, fmt.Errorf("%w: full name cannot be empty", ErrStaffValidation)
		}
		staff.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.StaffType != nil {
		staff.StaffType = *req.StaffType
	}
	if req.HourlyRate != nil {
		staff.HourlyRate = *req.HourlyRate
	}
	if req.BirthDate != nil {
		staff.BirthDate = req.BirthDate
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := validateStaffFields(staff.StaffType, staff.HourlyRate, staff.BirthDate); err != nil {
		return nil, err
	}

	if err := s.staffRepo.UpdateStaff(s.db, staff); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}
	return staff, nil
}

func (s *staffService) DeactivateStaff(staffID int64) error {
	err := s.staffRepo.DeactivateStaff(s.db, staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("failed to deactivate staff member: %w", err)
	}
	return nil
}

// OpenSession clocks a staff member in. A staff member can hold at most one
// open session at a time.
func (s *staffService) OpenSession(req OpenSessionRequest) (*models.StaffSession, error) {
	staff, err := s.GetStaffByID(req.StaffID)
	if err != nil {
		return nil, err
	}
	if !staff.IsActive {
		return nil, fmt.Errorf("%w: staff member is not active", ErrStaffValidation)
	}

	open, _, err := s.staffRepo.GetSessions(models.SessionFilters{StaffID: &req.StaffID, OpenOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to check open sessions: %w", err)
	}
	if len(open) > 0 {
		return nil, ErrOpenSessionExists
	}

	now := time.Now()
	session := &models.StaffSession{
		StaffID:     req.StaffID,
		SessionDate: now.Format(utils.DateLayout),
		StartTime:   now,
		Notes:       req.Notes,
	}
	if _, err := s.staffRepo.CreateSession(s.db, session); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	session.Staff = staff
	return session, nil
}

// CloseSession clocks a staff member out and fixes the worked hours for the
// payroll report. Hours are rounded to two decimals.
func (s *staffService) CloseSession(sessionID int64) (*models.StaffSession, error) {
	session, err := s.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.EndTime != nil {
		return nil, ErrSessionAlreadyClosed
	}

	now := time.Now()
	hours := utils.HoursBetween(session.StartTime, now)
	session.EndTime = &now
	session.TotalHours = &hours

	if err := s.staffRepo.UpdateSession(s.db, session); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to close session: %w", err)
	}
	return session, nil
}

func (s *staffService) GetSessionByID(sessionID int64) (*models.StaffSession, error) {
	session, err := s.staffRepo.GetSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func (s *staffService) GetSessions(filters models.SessionFilters) ([]models.StaffSession, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	return s.staffRepo.GetSessions(filters)
}

// UpdateSession applies manual corrections to a recorded session. When the
// times change, the worked hours are recomputed from them.
func (s *staffService) UpdateSession(sessionID int64, req UpdateSessionRequest) (*models.StaffSession, error) {
	session, err := s.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		session.StartTime = *req.StartTime
		session.SessionDate = req.StartTime.Format(utils.DateLayout)
	}
	if req.EndTime != nil {
		session.EndTime = req.EndTime
	}
	if req.Notes != nil {
		session.Notes = req.Notes
	}

	if session.EndTime != nil {
		if !session.EndTime.After(session.StartTime) {
			return nil, ErrSessionTimeOrder
		}
		hours := utils.HoursBetween(session.StartTime, *session.EndTime)
		session.TotalHours = &hours
	}

	if err := s.staffRepo.UpdateSession(s.db, session); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

func (s *staffService) DeleteSession(sessionID int64) error {
	err := s.staffRepo.DeleteSession(s.db, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
