package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/repositories"
)

// --- Custom Service Errors for Cash ---
var (
	ErrCashTransactionNotFound = errors.New("cash transaction not found")
	ErrCashValidation          = errors.New("cash transaction data validation error")
)

// --- Cash DTOs ---
type CreateCashTransactionRequest struct {
	TxnType         string  `json:"txn_type" binding:"required"`
	Amount          float64 `json:"amount" binding:"required"`
	Description     string  `json:"description" binding:"required"`
	ReceiptRef      *string `json:"receipt_ref"`
	ResponsibleName string  `json:"responsible_name" binding:"required"`
	TxnDate         *string `json:"txn_date"` // Format YYYY-MM-DD, defaults to today
}

type UpdateCashTransactionRequest struct {
	TxnType         *string  `json:"txn_type"`
	Amount          *float64 `json:"amount"`
	Description     *string  `json:"description"`
	ReceiptRef      *string  `json:"receipt_ref"`
	ResponsibleName *string  `json:"responsible_name"`
	TxnDate         *string  `json:"txn_date"` // Format YYYY-MM-DD
}

// --- CashService Interface ---
type CashService interface {
	CreateTransaction(req CreateCashTransactionRequest) (*models.CashTransaction, error)
	GetTransactionByID(txnID int64) (*models.CashTransaction, error)
	GetTransactions(filters models.CashFilters) ([]models.CashTransaction, int, error)
	UpdateTransaction(txnID int64, req UpdateCashTransactionRequest) (*models.CashTransaction, error)
	DeleteTransaction(txnID int64) error
}

// --- cashService Implementation ---
type cashService struct {
	cashRepo repositories.CashRepository
	db       *sql.DB
}

// NewCashService creates a new instance of CashService.
func NewCashService(repo repositories.CashRepository, db *sql.DB) CashService {
	return &cashService{
		cashRepo: repo,
		db:       db,
	}
}

func validateCashFields(txnType string, amount float64) error {
	if !models.IsValidTxnType(txnType) {
		return fmt.Errorf("%w: txn_type must be one of INCOME, EXPENSE", ErrCashValidation)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrCashValidation)
	}
	return nil
}

func (s *cashService) CreateTransaction(req CreateCashTransactionRequest) (*models.CashTransaction, error) {
	if err := validateCashFields(req.TxnType, req.Amount); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.ResponsibleName) == "" {
		return nil, fmt.Errorf("%w: description and responsible_name are required", ErrCashValidation)
	}

	txnDate := time.Now()
	if req.TxnDate != nil && strings.TrimSpace(*req.TxnDate) != "" {
		parsed, err := parseDate(*req.TxnDate)
		if err != nil {
			return nil, err
		}
		txnDate = parsed
	}

	txn := &models.CashTransaction{
		TxnType:         req.TxnType,
		Amount:          req.Amount,
		Description:     strings.TrimSpace(req.Description),
		ReceiptRef:      req.ReceiptRef,
		ResponsibleName: strings.TrimSpace(req.ResponsibleName),
		TxnDate:         txnDate,
	}
	if _, err := s.cashRepo.CreateTransaction(s.db, txn); err != nil {
		return nil, fmt.Errorf("failed to create cash transaction: %w", err)
	}
	return txn, nil
}

func (s *cashService) GetTransactionByID(txnID int64) (*models.CashTransaction, error) {
	txn, err := s.cashRepo.GetTransactionByID(txnID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCashTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get cash transaction: %w", err)
	}
	return txn, nil
}

func (s *cashService) GetTransactions(filters models.CashFilters) ([]models.CashTransaction, int, error) {
	if filters.TxnType != nil && *filters.TxnType != "" && !models.IsValidTxnType(*filters.TxnType) {
		return nil, 0, fmt.Errorf("%w: txn_type must be one of INCOME, EXPENSE", ErrCashValidation)
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 || filters.PageSize > 100 {
		filters.PageSize = 20
	}
	return s.cashRepo.GetTransactions(filters)
}

func (s *cashService) UpdateTransaction(txnID int64, req UpdateCashTransactionRequest) (*models.CashTransaction, error) {
	txn, err := s.GetTransactionByID(txnID)
	if err != nil {
		return nil, err
	}

	if req.TxnType != nil {
		txn.TxnType = *req.TxnType
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, fmt.Errorf("%w: description cannot be empty", ErrCashValidation)
		}
		txn.Description = strings.TrimSpace(*req.Description)
	}
	if req.ReceiptRef != nil {
		txn.ReceiptRef = req.ReceiptRef
	}
	if req.ResponsibleName != nil {
		if strings.TrimSpace(*req.ResponsibleName) == "" {
			return nil, fmt.Errorf("%w: responsible_name cannot be empty", ErrCashValidation)
		}
		txn.ResponsibleName = strings.TrimSpace(*req.ResponsibleName)
	}
	if req.TxnDate != nil {
		parsed, err := parseDate(*req.TxnDate)
		if err != nil {
			return nil, err
		}
		txn.TxnDate = parsed
	}

	if err := validateCashFields(txn.TxnType, txn.Amount); err != nil {
		return nil, err
	}

	if err := s.cashRepo.UpdateTransaction(s.db, txn); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCashTransactionNotFound
		}
		return nil, fmt.Errorf("failed to update cash transaction: %w", err)
	}
	return txn, nil
}

func (s *cashService) DeleteTransaction(txnID int64) error {
	err := s.cashRepo.DeleteTransaction(s.db, txnID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCashTransactionNotFound
		}
		return fmt.Errorf("failed to delete cash transaction: %w", err)
	}
	return nil
}
