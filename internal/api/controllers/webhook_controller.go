package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"martylabs/internal/config"
	"martylabs/internal/models/request_models"
	"martylabs/internal/services"
	"martylabs/pkg/utils"

	"github.com/gin-gonic/gin"
	rzputils "github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"
)

type WebhookController struct {
	paymentService services.PaymentServiceInterface
	webhookSecret  string
	logger         *zap.Logger
}

func NewWebhookController(paymentService services.PaymentServiceInterface, cfg *config.Config, logger *zap.Logger) *WebhookController {
	return &WebhookController{
		paymentService: paymentService,
		webhookSecret:  cfg.RazorpayWebhookSecret,
		logger:         logger,
	}
}

// HandleProviderWebhook verifies and routes payment provider events.
// Translation errors after a valid signature are logged and acknowledged
// with {success:false} so the provider does not retry permanent failures
// forever.
func (wc *WebhookController) HandleProviderWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if !rzputils.VerifyWebhookSignature(string(body), signature, wc.webhookSecret) {
		utils.HandleServiceError(c, utils.ErrSignatureInvalid)
		return
	}

	var event request_models.ProviderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid webhook payload")
		return
	}
	event.ID = c.GetHeader("X-Razorpay-Event-Id")

	if err := wc.paymentService.ProcessEvent(c.Request.Context(), event); err != nil {
		if errors.Is(err, utils.ErrDuplicateEvent) {
			c.JSON(http.StatusOK, gin.H{"success": true, "duplicate": true})
			return
		}

		wc.logger.Error("webhook event processing failed",
			zap.String("event", event.Event),
			zap.String("event_id", event.ID),
			zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
