package controllers

import (
	"net/http"
	"strconv"

	"martylabs/internal/models/request_models"
	"martylabs/internal/services"
	"martylabs/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConversationController struct {
	conversationService services.ConversationServiceInterface
}

func NewConversationController(conversationService services.ConversationServiceInterface) *ConversationController {
	return &ConversationController{
		conversationService: conversationService,
	}
}

func (cc *ConversationController) StartConversation(c *gin.Context) {
	var request request_models.StartConversationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	conv, err := cc.conversationService.Start(c.Request.Context(), c.GetString("user_id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, conv, "Conversation started")
}

func (cc *ConversationController) ListConversations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	convs, err := cc.conversationService.List(c.Request.Context(), c.GetString("user_id"), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, convs, "Fetched conversations")
}

func (cc *ConversationController) AppendMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid conversation id")
		return
	}

	var request request_models.AppendMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	msg, err := cc.conversationService.AppendMessage(c.Request.Context(), c.GetString("user_id"), id, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, msg, "Message appended")
}

func (cc *ConversationController) ListMessages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid conversation id")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	msgs, err := cc.conversationService.ListMessages(c.Request.Context(), c.GetString("user_id"), id, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, msgs, "Fetched messages")
}

func (cc *ConversationController) DeleteConversation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid conversation id")
		return
	}

	if err := cc.conversationService.Delete(c.Request.Context(), c.GetString("user_id"), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"deleted": true}, "Conversation deleted")
}
