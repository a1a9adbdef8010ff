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

// VisitHandler holds the visit service.
type VisitHandler struct {
	visitService services.VisitService
}

// NewVisitHandler creates a new VisitHandler.
func NewVisitHandler(vs services.VisitService) *VisitHandler {
	return &VisitHandler{visitService: vs}
}

// RecordVisit handles admitting a member to a class.
func (h *VisitHandler) RecordVisit(c *gin.Context) {
	var req services.RecordVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	visit, err := h.visitService.RecordVisit(req)
	if err != nil {
		utils.LogError(err, "RecordVisit: Error from visitService.RecordVisit")
		switch {
		case errors.Is(err, services.ErrDateFormat):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		case errors.Is(err, services.ErrMemberNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		case errors.Is(err, services.ErrMemberInactive):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeBusinessRule, "Member is not active.", err.Error()))
		case errors.Is(err, services.ErrNoActiveMembership):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeBusinessRule, "Member has no active membership.", err.Error()))
		case errors.Is(err, services.ErrNoClassesRemaining):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeBusinessRule, "Membership has no classes remaining.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record visit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, visit)
}

// GetVisits handles listing visits with filters.
func (h *VisitHandler) GetVisits(c *gin.Context) {
	filters := models.VisitFilters{}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if memberIDStr := c.Query("member_id"); memberIDStr != "" {
		memberID, err := utils.StrToInt64(memberIDStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member_id format.", err.Error()))
			return
		}
		filters.MemberID = &memberID
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
		// Make the range inclusive of the named day.
		to = to.AddDate(0, 0, 1)
		filters.DateTo = &to
	}

	visits, totalCount, err := h.visitService.GetVisits(filters)
	if err != nil {
		utils.LogError(err, "GetVisits: Error from visitService.GetVisits")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch visits.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      visits,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetVisitByID handles fetching a single visit by ID.
func (h *VisitHandler) GetVisitByID(c *gin.Context) {
	idStr := c.Param("id")
	visitID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid visit ID format.", err.Error()))
		return
	}

	visit, err := h.visitService.GetVisitByID(visitID)
	if err != nil {
		utils.LogError(err, "GetVisitByID: Error from visitService.GetVisitByID for ID "+idStr)
		if errors.Is(err, services.ErrVisitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Visit not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch visit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, visit)
}

// UpdateVisit handles editing the notes of a visit.
func (h *VisitHandler) UpdateVisit(c *gin.Context) {
	idStr := c.Param("id")
	visitID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid visit ID format.", err.Error()))
		return
	}

	var req services.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	visit, err := h.visitService.UpdateVisit(visitID, req)
	if err != nil {
		utils.LogError(err, "UpdateVisit: Error from visitService.UpdateVisit for ID "+idStr)
		if errors.Is(err, services.ErrVisitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Visit not found to update.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update visit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, visit)
}

// DeleteVisit handles removing a mistaken admission, restoring the class.
func (h *VisitHandler) DeleteVisit(c *gin.Context) {
	idStr := c.Param("id")
	visitID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid visit ID format.", err.Error()))
		return
	}

	if err := h.visitService.DeleteVisit(visitID); err != nil {
		utils.LogError(err, "DeleteVisit: Error from visitService.DeleteVisit for ID "+idStr)
		if errors.Is(err, services.ErrVisitNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Visit not found to delete.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete visit.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Visit deleted successfully"})
}
