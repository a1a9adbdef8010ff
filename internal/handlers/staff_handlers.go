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

// StaffHandler holds the staff service.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// CreateStaff handles hiring a trainer or cleaning staff member.
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req services.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staff, err := h.staffService.CreateStaff(req)
	if err != nil {
		utils.LogError(err, "CreateStaff: Error from staffService.CreateStaff")
		if errors.Is(err, services.ErrStaffValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// GetStaff handles listing staff with pagination and type filter.
func (h *StaffHandler) GetStaff(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	var staffType *string
	if t := c.Query("staff_type"); t != "" {
		staffType = &t
	}

	staffMembers, totalCount, err := h.staffService.GetStaff(staffType, activeOnly, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetStaff: Error from staffService.GetStaff")
		if errors.Is(err, services.ErrStaffValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff.", "Internal error"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      staffMembers,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetStaffByID handles fetching a single staff member by ID.
func (h *StaffHandler) GetStaffByID(c *gin.Context) {
	idStr := c.Param("id")
	staffID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff ID format.", err.Error()))
		return
	}

	staff, err := h.staffService.GetStaffByID(staffID)
	if err != nil {
		utils.LogError(err, "GetStaffByID: Error from staffService.GetStaffByID for ID "+idStr)
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// UpdateStaff handles updating a staff member.
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	idStr := c.Param("id")
	staffID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff ID format.", err.Error()))
		return
	}

	var req services.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	staff, err := h.staffService.UpdateStaff(staffID, req)
	if err != nil {
		utils.LogError(err, "UpdateStaff: Error from staffService.UpdateStaff for ID "+idStr)
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrStaffValidation) || errors.Is(err, services.ErrDateFormat) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, staff)
}

// DeactivateStaff handles soft-deleting a staff member.
func (h *StaffHandler) DeactivateStaff(c *gin.Context) {
	idStr := c.Param("id")
	staffID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff ID format.", err.Error()))
		return
	}

	if err := h.staffService.DeactivateStaff(staffID); err != nil {
		utils.LogError(err, "DeactivateStaff: Error from staffService.DeactivateStaff for ID "+idStr)
		if errors.Is(err, services.ErrStaffNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found to deactivate.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to deactivate staff member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deactivated successfully"})
}

// OpenSession clocks a staff member in.
func (h *StaffHandler) OpenSession(c *gin.Context) {
	var req services.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	session, err := h.staffService.OpenSession(req)
	if err != nil {
		utils.LogError(err, "OpenSession: Error from staffService.OpenSession")
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Staff member not found.", err.Error()))
		case errors.Is(err, services.ErrOpenSessionExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Staff member already has an open session.", err.Error()))
		case errors.Is(err, services.ErrStaffValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeBusinessRule, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to open session.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, session)
}

// CloseSession clocks a staff member out.
func (h *StaffHandler) CloseSession(c *gin.Context) {
	idStr := c.Param("id")
	sessionID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid session ID format.", err.Error()))
		return
	}

	session, err := h.staffService.CloseSession(sessionID)
	if err != nil {
		utils.LogError(err, "CloseSession: Error from staffService.CloseSession for ID "+idStr)
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Session not found.", err.Error()))
		case errors.Is(err, services.ErrSessionAlreadyClosed):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Session is already closed.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to close session.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetSessions handles listing work sessions with filters.
func (h *StaffHandler) GetSessions(c *gin.Context) {
	filters := models.SessionFilters{}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	filters.OpenOnly = c.DefaultQuery("open_only", "false") == "true"

	if staffIDStr := c.Query("staff_id"); staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid staff_id format.", err.Error()))
			return
		}
		filters.StaffID = &staffID
	}
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

	sessions, totalCount, err := h.staffService.GetSessions(filters)
	if err != nil {
		utils.LogError(err, "GetSessions: Error from staffService.GetSessions")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch sessions.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      sessions,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetSessionByID handles fetching a single session by ID.
func (h *StaffHandler) GetSessionByID(c *gin.Context) {
	idStr := c.Param("id")
	sessionID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid session ID format.", err.Error()))
		return
	}

	session, err := h.staffService.GetSessionByID(sessionID)
	if err != nil {
		utils.LogError(err, "GetSessionByID: Error from staffService.GetSessionByID for ID "+idStr)
		if errors.Is(err, services.ErrSessionNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Session not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch session.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateSession handles manual corrections to a session.
func (h *StaffHandler) UpdateSession(c *gin.Context) {
	idStr := c.Param("id")
	sessionID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid session ID format.", err.Error()))
		return
	}

	var req services.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	session, err := h.staffService.UpdateSession(sessionID, req)
	if err != nil {
		utils.LogError(err, "UpdateSession: Error from staffService.UpdateSession for ID "+idStr)
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Session not found to update.", err.Error()))
		case errors.Is(err, services.ErrSessionTimeOrder):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update session.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession handles removing a session row.
func (h *StaffHandler) DeleteSession(c *gin.Context) {
	idStr := c.Param("id")
	sessionID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid session ID format.", err.Error()))
		return
	}

	if err := h.staffService.DeleteSession(sessionID); err != nil {
		utils.LogError(err, "DeleteSession: Error from staffService.DeleteSession for ID "+idStr)
		if errors.Is(err, services.ErrSessionNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Session not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete session.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}
