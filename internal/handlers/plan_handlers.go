package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gym_admin_backend/internal/services"
	"gym_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan service.
type PlanHandler struct {
	planService services.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(ps services.PlanService) *PlanHandler {
	return &PlanHandler{planService: ps}
}

// CreatePlan handles the creation of a new plan.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req services.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	plan, err := h.planService.CreatePlan(req)
	if err != nil {
		utils.LogError(err, "CreatePlan: Error from planService.CreatePlan")
		if errors.Is(err, services.ErrPlanValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create plan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GetPlans handles listing plans.
func (h *PlanHandler) GetPlans(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "false") == "true"

	plans, err := h.planService.GetPlans(activeOnly)
	if err != nil {
		utils.LogError(err, "GetPlans: Error from planService.GetPlans")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch plans.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": plans})
}

// GetPlanByID handles fetching a single plan by ID.
func (h *PlanHandler) GetPlanByID(c *gin.Context) {
	idStr := c.Param("id")
	planID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid plan ID format.", err.Error()))
		return
	}

	plan, err := h.planService.GetPlanByID(planID)
	if err != nil {
		utils.LogError(err, "GetPlanByID: Error from planService.GetPlanByID for ID "+idStr)
		if errors.Is(err, services.ErrPlanNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Plan not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch plan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// UpdatePlan handles updating a plan.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	idStr := c.Param("id")
	planID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid plan ID format.", err.Error()))
		return
	}

	var req services.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	plan, err := h.planService.UpdatePlan(planID, req)
	if err != nil {
		utils.LogError(err, "UpdatePlan: Error from planService.UpdatePlan for ID "+idStr)
		if errors.Is(err, services.ErrPlanNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Plan not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrPlanValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update plan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeactivatePlan handles soft-deleting a plan.
func (h *PlanHandler) DeactivatePlan(c *gin.Context) {
	idStr := c.Param("id")
	planID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid plan ID format.", err.Error()))
		return
	}

	if err := h.planService.DeactivatePlan(planID); err != nil {
		utils.LogError(err, "DeactivatePlan: Error from planService.DeactivatePlan for ID "+idStr)
		if errors.Is(err, services.ErrPlanNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Plan not found to deactivate.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to deactivate plan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Plan deactivated successfully"})
}
