package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/services"
	"gym_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CashHandler holds the cash service.
type CashHandler struct {
	cashService services.CashService
}

// NewCashHandler creates a new CashHandler.
func NewCashHandler(cs services.CashService) *CashHandler {
	return &CashHandler{cashService: cs}
}

// CreateTransaction handles recording a ledger entry.
func (h *CashHandler) CreateTransaction(c *gin.Context) {
	var req services.CreateCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	txn, err := h.cashService.CreateTransaction(req)
	if err != nil {
		utils.LogError(err, "CreateTransaction: Error from cashService.CreateTransaction")
		if errors.Is(err, services.ErrCashValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create cash transaction.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// GetTransactions handles listing ledger entries with filters.
func (h *CashHandler) GetTransactions(c *gin.Context) {
	filters := models.CashFilters{}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filters.TxnType = utils.NewNullString(c.Query("txn_type"))
	filters.ResponsibleName = utils.NewNullString(c.Query("responsible"))
	if fromStr := c.Query("date_from"); fromStr != "" {
		from, err := time.Parse(utils.DateLayout, fromStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_from, expected YYYY-MM-DD.", err.Error()))
			return
		}
		filters.DateFrom = &from
	}
	if toStr := c.Query("date_to"); toStr != "" {
		to, err := time.Parse(utils.DateLayout, toStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_to, expected YYYY-MM-DD.", err.Error()))
			return
		}
		to = to.AddDate(0, 0, 1)
		filters.DateTo = &to
	}

	transactions, totalCount, err := h.cashService.GetTransactions(filters)
	if err != nil {
		utils.LogError(err, "GetTransactions: Error from cashService.GetTransactions")
		if errors.Is(err, services.ErrCashValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch cash transactions.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      transactions,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetTransactionByID handles fetching a single ledger entry by ID.
func (h *CashHandler) GetTransactionByID(c *gin.Context) {
	idStr := c.Param("id")
	txnID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid transaction ID format.", err.Error()))
		return
	}

	txn, err := h.cashService.GetTransactionByID(txnID)
	if err != nil {
		utils.LogError(err, "GetTransactionByID: Error from cashService for ID "+idStr)
		if errors.Is(err, services.ErrCashTransactionNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cash transaction not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch cash transaction.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, txn)
}

// UpdateTransaction handles correcting a ledger entry.
func (h *CashHandler) UpdateTransaction(c *gin.Context) {
	idStr := c.Param("id")
	txnID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid transaction ID format.", err.Error()))
		return
	}

	var req services.UpdateCashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	txn, err := h.cashService.UpdateTransaction(txnID, req)
	if err != nil {
		utils.LogError(err, "UpdateTransaction: Error from cashService.UpdateTransaction for ID "+idStr)
		if errors.Is(err, services.ErrCashTransactionNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cash transaction not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrCashValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update cash transaction.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, txn)
}

// DeleteTransaction handles removing a ledger entry.
func (h *CashHandler) DeleteTransaction(c *gin.Context) {
	idStr := c.Param("id")
	txnID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid transaction ID format.", err.Error()))
		return
	}

	if err := h.cashService.DeleteTransaction(txnID); err != nil {
		utils.LogError(err, "DeleteTransaction: Error from cashService.DeleteTransaction for ID "+idStr)
		if errors.Is(err, services.ErrCashTransactionNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Cash transaction not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete cash transaction.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cash transaction deleted successfully"})
}
