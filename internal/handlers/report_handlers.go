package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gym_admin_backend/internal/services"
	"gym_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// periodParams reads month and year from the query, defaulting to the
// current month.
func periodParams(c *gin.Context) (int, int, error) {
	now := time.Now()
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		return 0, 0, err
	}
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		return 0, 0, err
	}
	return month, year, nil
}

// GetCashReport handles the monthly cash aggregation.
func (h *ReportHandler) GetCashReport(c *gin.Context) {
	month, year, err := periodParams(c)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "month and year must be integers.", err.Error()))
		return
	}

	report, err := h.reportService.GetCashReport(month, year)
	if err != nil {
		utils.LogError(err, "GetCashReport: Error from reportService.GetCashReport")
		if errors.Is(err, services.ErrReportValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build cash report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetStaffHoursReport handles the monthly hours aggregation for one staff type.
func (h *ReportHandler) GetStaffHoursReport(c *gin.Context) {
	month, year, err := periodParams(c)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "month and year must be integers.", err.Error()))
		return
	}
	staffType := c.Query("staff_type")

	report, err := h.reportService.GetStaffHoursReport(month, year, staffType)
	if err != nil {
		utils.LogError(err, "GetStaffHoursReport: Error from reportService.GetStaffHoursReport")
		if errors.Is(err, services.ErrReportValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build staff hours report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}
