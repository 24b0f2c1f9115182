package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"martylabs/internal/config"
	"martylabs/internal/models/request_models"
	"martylabs/internal/services"
	"martylabs/internal/version"
	"martylabs/pkg/utils"

	"github.com/gin-gonic/gin"
)

type WorkflowController struct {
	workflowService services.WorkflowServiceInterface
	callbackSecret  string
}

func NewWorkflowController(workflowService services.WorkflowServiceInterface, cfg *config.Config) *WorkflowController {
	return &WorkflowController{
		workflowService: workflowService,
		callbackSecret:  cfg.N8NWebhookSecret,
	}
}

func (wc *WorkflowController) TriggerWorkflow(c *gin.Context) {
	var request request_models.TriggerWorkflowRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := wc.workflowService.Trigger(c.Request.Context(), userID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Workflow triggered")
}

// HandleCallback receives status updates from the workflow engine. The raw
// body is read once so the signature covers exactly the delivered bytes.
func (wc *WorkflowController) HandleCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	signature := c.GetHeader("X-Webhook-Signature")
	if !utils.VerifyHMACSignature(body, signature, wc.callbackSecret) {
		utils.HandleServiceError(c, utils.ErrSignatureInvalid)
		return
	}

	var request request_models.WorkflowCallbackRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid callback payload")
		return
	}

	if err := wc.workflowService.HandleCallback(c.Request.Context(), request); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"success": true}, "Callback processed")
}

func (wc *WorkflowController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"version":   version.Version,
	})
}
