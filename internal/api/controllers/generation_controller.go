package controllers

import (
	"encoding/json"
	"net/http"

	"martylabs/internal/models/db_models"
	"martylabs/internal/models/request_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/services"
	"martylabs/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GenerationController struct {
	generationService services.GenerationServiceInterface
}

func NewGenerationController(generationService services.GenerationServiceInterface) *GenerationController {
	return &GenerationController{
		generationService: generationService,
	}
}

func (gc *GenerationController) CreateGeneration(c *gin.Context) {
	var request request_models.CreateGenerationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	gen, err := gc.generationService.Create(c.Request.Context(), userID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, toGenerationResponse(gen), "Generation created")
}

func (gc *GenerationController) GetGeneration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid generation id")
		return
	}

	withFlow := c.DefaultQuery("with_flow", "false") == "true"

	gen, err := gc.generationService.GetByID(c.Request.Context(), id, withFlow)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if gen.UserID != c.GetString("user_id") {
		utils.RespondError(c, http.StatusUnauthorized, "You do not own this resource")
		return
	}

	utils.RespondSuccess(c, toGenerationResponse(gen), "Fetched generation")
}

func (gc *GenerationController) ListGenerations(c *gin.Context) {
	var query request_models.ListGenerationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	var flowID *uuid.UUID
	if query.FlowID != "" {
		parsed, err := uuid.Parse(query.FlowID)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid flow id")
			return
		}
		flowID = &parsed
	}

	gens, err := gc.generationService.ListByUser(
		c.Request.Context(), c.GetString("user_id"), query.Status, flowID, query.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result := make([]response_models.GenerationResponse, 0, len(gens))
	for i := range gens {
		result = append(result, *toGenerationResponse(&gens[i]))
	}

	utils.RespondSuccess(c, result, "Fetched generations")
}

func (gc *GenerationController) CancelGeneration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid generation id")
		return
	}

	if _, err := gc.generationService.Cancel(c.Request.Context(), id, c.GetString("user_id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.CancelGenerationResponse{Success: true}, "Generation cancelled")
}

func (gc *GenerationController) CheckConcurrency(c *gin.Context) {
	status, err := gc.generationService.CheckConcurrency(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "Fetched concurrency availability")
}

func toGenerationResponse(gen *db_models.Generation) *response_models.GenerationResponse {
	var input map[string]interface{}
	_ = json.Unmarshal(gen.Input, &input)

	resp := &response_models.GenerationResponse{
		ID:                    gen.ID,
		FlowID:                gen.FlowID,
		ConversationID:        gen.ConversationID,
		Status:                string(gen.Status),
		Progress:              gen.Progress,
		CreditsUsed:           gen.CreditsUsed,
		Input:                 input,
		InputAssets:           gen.InputAssets,
		OutputAssets:          gen.OutputAssets,
		ErrorMessage:          gen.ErrorMessage,
		ExecutionID:           gen.ExecutionID,
		CreatedAt:             gen.CreatedAt,
		ProcessingStartedAt:   gen.ProcessingStartedAt,
		ProcessingCompletedAt: gen.ProcessingCompletedAt,
		CancelledAt:           gen.CancelledAt,
		ExpiresAt:             gen.ExpiresAt,
	}
	if gen.Flow.ID != uuid.Nil {
		resp.FlowTitle = gen.Flow.Title
	}
	return resp
}
