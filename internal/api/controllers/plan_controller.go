package controllers

import (
	"net/http"

	"martylabs/internal/models/db_models"
	"martylabs/internal/services"
	"martylabs/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{planService: planService}
}

func (pc *PlanController) ListPlans(c *gin.Context) {
	plans, err := pc.planService.ListActive(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Fetched plans")
}

func (pc *PlanController) GetPlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid plan id")
		return
	}

	plan, err := pc.planService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Fetched plan")
}

func (pc *PlanController) CreatePlan(c *gin.Context) {
	var plan db_models.Plan
	if err := c.ShouldBindJSON(&plan); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := pc.planService.Create(c.Request.Context(), &plan); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, gin.H{"id": plan.ID}, "Plan created")
}

func (pc *PlanController) UpdatePlan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid plan id")
		return
	}

	var plan db_models.Plan
	if err := c.ShouldBindJSON(&plan); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	plan.ID = id

	if err := pc.planService.Update(c.Request.Context(), &plan); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": plan.ID}, "Plan updated")
}
