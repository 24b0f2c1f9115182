package controllers

import (
	"net/http"
	"strconv"

	"martylabs/internal/models/request_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/services"
	"martylabs/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

func (pc *PaymentController) CreateCheckout(c *gin.Context) {
	var request request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	checkout, err := pc.paymentService.CreateCheckout(c.Request.Context(), userID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout created")
}

func (pc *PaymentController) ListBillingHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	events, err := pc.paymentService.ListBillingHistory(c.Request.Context(), c.GetString("user_id"), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result := make([]response_models.BillingEventResponse, 0, len(events))
	for _, event := range events {
		result = append(result, response_models.BillingEventResponse{
			ID:          event.ID,
			EventType:   event.EventType,
			PaymentID:   event.PaymentID,
			AmountMinor: event.AmountMinor,
			Currency:    event.Currency,
			Status:      event.Status,
			CreatedAt:   event.CreatedAt,
		})
	}

	utils.RespondSuccess(c, result, "Fetched billing history")
}
