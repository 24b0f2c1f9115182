package controllers

import (
	"net/http"

	"martylabs/internal/models/db_models"
	"martylabs/internal/services"
	"martylabs/pkg/utils"

	"github.com/gin-gonic/gin"
)

type FlowController struct {
	flowService services.FlowServiceInterface
}

func NewFlowController(flowService services.FlowServiceInterface) *FlowController {
	return &FlowController{flowService: flowService}
}

func (fc *FlowController) ListFlows(c *gin.Context) {
	flows, err := fc.flowService.ListActive(c.Request.Context(), c.Query("category"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, flows, "Fetched flows")
}

func (fc *FlowController) GetFlow(c *gin.Context) {
	flow, err := fc.flowService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, flow, "Fetched flow")
}

func (fc *FlowController) UpsertFlow(c *gin.Context) {
	var flow db_models.Flow
	if err := c.ShouldBindJSON(&flow); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := fc.flowService.Upsert(c.Request.Context(), &flow); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": flow.ID}, "Flow saved")
}
