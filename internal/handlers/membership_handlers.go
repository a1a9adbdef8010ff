package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/services"
	"gym_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MembershipHandler holds the membership service.
type MembershipHandler struct {
	membershipService services.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(ms services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: ms}
}

// CreateMembership handles a plan purchase for a member.
func (h *MembershipHandler) CreateMembership(c *gin.Context) {
	var req services.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	membership, err := h.membershipService.CreateMembership(req)
	if err != nil {
		utils.LogError(err, "CreateMembership: Error from membershipService.CreateMembership")
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		case errors.Is(err, services.ErrPlanNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Plan not found.", err.Error()))
		case errors.Is(err, services.ErrPlanInactive):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeBusinessRule, "Plan is not active.", err.Error()))
		case errors.Is(err, services.ErrMembershipValidation), errors.Is(err, services.ErrDateFormat):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, membership)
}

// GetMemberships handles listing memberships with filters.
func (h *MembershipHandler) GetMemberships(c *gin.Context) {
	filters := models.MembershipFilters{}
	filters.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filters.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if memberIDStr := c.Query("member_id"); memberIDStr != "" {
		memberID, err := strconv.ParseInt(memberIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member_id format.", err.Error()))
			return
		}
		filters.MemberID = &memberID
	}
	if planIDStr := c.Query("plan_id"); planIDStr != "" {
		planID, err := strconv.ParseInt(planIDStr, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid plan_id format.", err.Error()))
			return
		}
		filters.PlanID = &planID
	}
	if activeStr := c.Query("active"); activeStr != "" {
		active := activeStr == "true"
		filters.Active = &active
	}

	memberships, totalCount, err := h.membershipService.GetMemberships(filters)
	if err != nil {
		utils.LogError(err, "GetMemberships: Error from membershipService.GetMemberships")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch memberships.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      memberships,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// GetMembershipByID handles fetching a single membership by ID.
func (h *MembershipHandler) GetMembershipByID(c *gin.Context) {
	idStr := c.Param("id")
	membershipID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid membership ID format.", err.Error()))
		return
	}

	membership, err := h.membershipService.GetMembershipByID(membershipID)
	if err != nil {
		utils.LogError(err, "GetMembershipByID: Error from membershipService for ID "+idStr)
		if errors.Is(err, services.ErrMembershipNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, membership)
}

// GetActiveMembership returns the membership a visit would consume from for
// the given member, or 404 when none qualifies.
func (h *MembershipHandler) GetActiveMembership(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	membership, err := h.membershipService.GetActiveMembershipForMember(memberID)
	if err != nil {
		utils.LogError(err, "GetActiveMembership: Error from membershipService for member "+idStr)
		if errors.Is(err, services.ErrMembershipNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member has no active membership.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch active membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, membership)
}

// UpdateMembership handles admin corrections to a membership.
func (h *MembershipHandler) UpdateMembership(c *gin.Context) {
	idStr := c.Param("id")
	membershipID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid membership ID format.", err.Error()))
		return
	}

	var req services.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	membership, err := h.membershipService.UpdateMembership(membershipID, req)
	if err != nil {
		utils.LogError(err, "UpdateMembership: Error from membershipService for ID "+idStr)
		switch {
		case errors.Is(err, services.ErrMembershipNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership not found to update.", err.Error()))
		case errors.Is(err, services.ErrPlanNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Plan not found.", err.Error()))
		case errors.Is(err, services.ErrMembershipValidation), errors.Is(err, services.ErrDateFormat):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, membership)
}

// DeactivateMembership handles cancelling a membership.
func (h *MembershipHandler) DeactivateMembership(c *gin.Context) {
	idStr := c.Param("id")
	membershipID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid membership ID format.", err.Error()))
		return
	}

	if err := h.membershipService.DeactivateMembership(membershipID); err != nil {
		utils.LogError(err, "DeactivateMembership: Error from membershipService for ID "+idStr)
		if errors.Is(err, services.ErrMembershipNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Membership not found to deactivate.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to deactivate membership.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Membership deactivated successfully"})
}
