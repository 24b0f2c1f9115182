package controllers

import (
	"strconv"

	"martylabs/internal/models/db_models"
	"martylabs/internal/models/response_models"
	"martylabs/internal/services"
	"martylabs/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	creditService services.CreditServiceInterface
}

func NewSubscriptionController(creditService services.CreditServiceInterface) *SubscriptionController {
	return &SubscriptionController{
		creditService: creditService,
	}
}

// GetMySubscription returns the caller's subscription, creating the free
// tier row on first touch.
func (sc *SubscriptionController) GetMySubscription(c *gin.Context) {
	sub, err := sc.creditService.EnsureDefaultSubscription(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.SubscriptionResponse{
		ID:                 sub.ID,
		PlanCode:           sub.PlanCode,
		PlanTier:           string(sub.PlanTier),
		Status:             string(sub.Status),
		Credits:            sub.Credits,
		CreditsUsed:        sub.CreditsUsed,
		TotalCredits:       sub.TotalCredits,
		MaxConcurrency:     sub.MaxConcurrency,
		RetentionDays:      sub.RetentionDays,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}, "Fetched subscription")
}

func (sc *SubscriptionController) CheckCredits(c *gin.Context) {
	service := db_models.ServiceType(c.DefaultQuery("service", string(db_models.ServiceImage)))
	switch service {
	case db_models.ServiceImage, db_models.ServiceVideo, db_models.ServiceTalkingHead:
	default:
		utils.RespondError(c, 400, "Unknown service type")
		return
	}

	availability, err := sc.creditService.CheckAvailability(c.Request.Context(), c.GetString("user_id"), service)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, availability, "Fetched credit availability")
}

func (sc *SubscriptionController) ListTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	txns, err := sc.creditService.ListTransactions(c.Request.Context(), c.GetString("user_id"), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result := make([]response_models.CreditTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		result = append(result, response_models.CreditTransactionResponse{
			ID:           txn.ID,
			Type:         string(txn.Type),
			Amount:       txn.Amount,
			BalanceAfter: txn.BalanceAfter,
			Description:  txn.Description,
			GenerationID: txn.GenerationID,
			CreatedAt:    txn.CreatedAt,
		})
	}

	utils.RespondSuccess(c, result, "Fetched credit transactions")
}
