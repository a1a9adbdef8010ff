package services

import (
	"errors"
	"fmt"
	"strings"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/repositories"
	"gym_admin_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Auth ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrUserValidation     = errors.New("user data validation error")
	ErrLastAdminUser      = errors.New("cannot remove the last administrator account")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// --- Auth DTOs ---

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest DTO
type RegisterUserRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// AuthResponse DTO
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// --- AuthService Interface ---
type AuthService interface {
	LoginUser(req LoginRequest) (*AuthResponse, error)
	RefreshTokens(refreshToken string) (*AuthResponse, error)
	RegisterUser(req RegisterUserRequest) (*models.User, error)
	GetUserProfile(userID int64) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(userID int64, req UpdateUserRequest) (*models.User, error)
	DeleteUser(userID int64) error
}

// --- authService Implementation ---
type authService struct {
	userRepo repositories.UserRepository
	txRunner repositories.TxRunner
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repositories.UserRepository, txRunner repositories.TxRunner) AuthService {
	return &authService{
		userRepo: userRepo,
		txRunner: txRunner,
	}
}

func (s *authService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// LoginUser checks the credentials and hands out a token pair.
func (s *authService) LoginUser(req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return s.issueTokens(user)
}

// RefreshTokens exchanges a valid refresh token for a fresh pair. The user is
// re-read so a deactivated account cannot keep refreshing itself.
func (s *authService) RefreshTokens(refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}

	user.PasswordHash = ""
	return s.issueTokens(user)
}

// RegisterUser creates a back-office login account. Admin-only operation,
// enforced at the router.
func (s *authService) RegisterUser(req RegisterUserRequest) (*models.User, error) {
	if !models.IsValidRole(req.Role) {
		return nil, fmt.Errorf("%w: role must be one of ADMIN, STAFF", ErrUserValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrUserValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
	}
	if _, err := s.userRepo.CreateUser(nil, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) GetUsers() ([]models.User, error) {
	users, err := s.userRepo.GetUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// UpdateUser applies account edits. Demoting or deactivating the last active
// administrator is refused, same as deleting them.
func (s *authService) UpdateUser(userID int64, req UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	wasActiveAdmin := user.Role == models.RoleAdmin && user.IsActive

	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrUserValidation)
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Role != nil {
		if !models.IsValidRole(*req.Role) {
			return nil, fmt.Errorf("%w: role must be one of ADMIN, STAFF", ErrUserValidation)
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	losesAdmin := wasActiveAdmin && (user.Role != models.RoleAdmin || !user.IsActive)

	err = s.txRunner.RunTx(func(executor repositories.SQLExecutor) error {
		if losesAdmin {
			admins, err := s.userRepo.CountActiveAdmins(executor)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastAdminUser
			}
		}
		return s.userRepo.UpdateUser(executor, user)
	})
	if err != nil {
		if errors.Is(err, ErrLastAdminUser) {
			return nil, ErrLastAdminUser
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes a login account, refusing to delete the last active
// administrator. The count and the delete share a transaction so two
// concurrent deletes cannot both pass the guard.
func (s *authService) DeleteUser(userID int64) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	err = s.txRunner.RunTx(func(executor repositories.SQLExecutor) error {
		if user.Role == models.RoleAdmin && user.IsActive {
			admins, err := s.userRepo.CountActiveAdmins(executor)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastAdminUser
			}
		}
		return s.userRepo.DeleteUser(executor, userID)
	})
	if err != nil {
		if errors.Is(err, ErrLastAdminUser) {
			return ErrLastAdminUser
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
