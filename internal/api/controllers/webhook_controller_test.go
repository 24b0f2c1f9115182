package controllers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"martylabs/internal/config"
	"martylabs/internal/models/db_models"
	"martylabs/internal/models/request_models"
	"martylabs/internal/models/response_models"
	"martylabs/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock PaymentService
type mockPaymentService struct {
	createCheckoutFunc     func(ctx context.Context, userID string, req request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error)
	processEventFunc       func(ctx context.Context, event request_models.ProviderEvent) error
	listBillingHistoryFunc func(ctx context.Context, userID string, limit int) ([]db_models.BillingEvent, error)
}

func (m *mockPaymentService) CreateCheckout(ctx context.Context, userID string, req request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error) {
	if m.createCheckoutFunc != nil {
		return m.createCheckoutFunc(ctx, userID, req)
	}
	return &response_models.CreateCheckoutResponse{}, nil
}

func (m *mockPaymentService) ProcessEvent(ctx context.Context, event request_models.ProviderEvent) error {
	if m.processEventFunc != nil {
		return m.processEventFunc(ctx, event)
	}
	return nil
}

func (m *mockPaymentService) ListBillingHistory(ctx context.Context, userID string, limit int) ([]db_models.BillingEvent, error) {
	if m.listBillingHistoryFunc != nil {
		return m.listBillingHistoryFunc(ctx, userID, limit)
	}
	return nil, nil
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookRouter(svc *mockPaymentService, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewWebhookController(svc, &config.Config{RazorpayWebhookSecret: secret}, zap.NewNop())

	r := gin.New()
	r.POST("/api/v1/webhooks/razorpay", controller.HandleProviderWebhook)
	return r
}

func postWebhook(r *gin.Engine, body []byte, signature, eventID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/razorpay", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Razorpay-Signature", signature)
	}
	if eventID != "" {
		req.Header.Set("X-Razorpay-Event-Id", eventID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleProviderWebhook_RejectsBadSignature(t *testing.T) {
	processed := false
	svc := &mockPaymentService{
		processEventFunc: func(ctx context.Context, event request_models.ProviderEvent) error {
			processed = true
			return nil
		},
	}
	r := newWebhookRouter(svc, "whsec_test")

	body := []byte(`{"event":"subscription.charged"}`)

	w := postWebhook(r, body, "deadbeef", "evt_1")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, processed)

	w = postWebhook(r, body, "", "evt_1")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, processed)
}

func TestHandleProviderWebhook_PassesVerifiedEvent(t *testing.T) {
	var got request_models.ProviderEvent
	svc := &mockPaymentService{
		processEventFunc: func(ctx context.Context, event request_models.ProviderEvent) error {
			got = event
			return nil
		},
	}
	r := newWebhookRouter(svc, "whsec_test")

	body := []byte(`{"event":"subscription.charged","payload":{"subscription":{"entity":{"id":"sub_xyz"}}}}`)

	w := postWebhook(r, body, signBody(body, "whsec_test"), "evt_1")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "subscription.charged", got.Event)
	assert.Equal(t, "evt_1", got.ID)
	assert.Equal(t, "sub_xyz", got.Payload.Subscription.Entity.ID)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestHandleProviderWebhook_AcknowledgesDuplicates(t *testing.T) {
	svc := &mockPaymentService{
		processEventFunc: func(ctx context.Context, event request_models.ProviderEvent) error {
			return utils.ErrDuplicateEvent
		},
	}
	r := newWebhookRouter(svc, "whsec_test")

	body := []byte(`{"event":"subscription.charged"}`)

	w := postWebhook(r, body, signBody(body, "whsec_test"), "evt_1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"duplicate":true`)
}

func TestHandleProviderWebhook_AcknowledgesProcessingFailures(t *testing.T) {
	svc := &mockPaymentService{
		processEventFunc: func(ctx context.Context, event request_models.ProviderEvent) error {
			return utils.ErrDatabaseError
		},
	}
	r := newWebhookRouter(svc, "whsec_test")

	body := []byte(`{"event":"subscription.charged"}`)

	w := postWebhook(r, body, signBody(body, "whsec_test"), "evt_1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
