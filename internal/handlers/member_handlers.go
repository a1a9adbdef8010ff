package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gym_admin_backend/internal/services"
	"gym_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MemberHandler holds the member service.
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: ms}
}

// CreateMember handles the registration of a new gym member.
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req services.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	member, err := h.memberService.CreateMember(req)
	if err != nil {
		utils.LogError(err, "CreateMember: Error from memberService.CreateMember")
		if errors.Is(err, services.ErrMemberValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, member)
}

// GetMembers handles fetching members with pagination and search.
func (h *MemberHandler) GetMembers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	var searchTerm *string
	if search := c.Query("search"); search != "" {
		searchTerm = &search
	}

	members, totalCount, err := h.memberService.GetMembers(page, pageSize, searchTerm, activeOnly)
	if err != nil {
		utils.LogError(err, "GetMembers: Error from memberService.GetMembers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch members.", "Internal error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      members,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetMemberByID handles fetching a single member by ID.
func (h *MemberHandler) GetMemberByID(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	member, err := h.memberService.GetMemberByID(memberID)
	if err != nil {
		utils.LogError(err, "GetMemberByID: Error from memberService.GetMemberByID for ID "+idStr)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, member)
}

// GetMemberByNumber handles lookup by the human-readable membership number,
// as typed at the front desk.
func (h *MemberHandler) GetMemberByNumber(c *gin.Context) {
	number := c.Param("number")
	member, err := h.memberService.GetMemberByMembershipNumber(number)
	if err != nil {
		utils.LogError(err, "GetMemberByNumber: Error from memberService for number "+number)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateMember handles updating a member.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	var req services.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	member, err := h.memberService.UpdateMember(memberID, req)
	if err != nil {
		utils.LogError(err, "UpdateMember: Error from memberService.UpdateMember for ID "+idStr)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrMemberValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeactivateMember handles soft-deleting a member.
func (h *MemberHandler) DeactivateMember(c *gin.Context) {
	idStr := c.Param("id")
	memberID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid member ID format.", err.Error()))
		return
	}

	if err := h.memberService.DeactivateMember(memberID); err != nil {
		utils.LogError(err, "DeactivateMember: Error from memberService.DeactivateMember for ID "+idStr)
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Member not found to deactivate.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to deactivate member.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deactivated successfully"})
}
