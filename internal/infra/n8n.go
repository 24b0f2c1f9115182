package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"martylabs/internal/config"
	"martylabs/pkg/utils"

	"github.com/google/uuid"
)

// WorkflowPayload is the trigger body posted to the workflow engine. The
// callback URL lets the engine report status back to /workflows/callback.
type WorkflowPayload struct {
	GenerationID uuid.UUID              `json:"generation_id"`
	Input        map[string]interface{} `json:"input"`
	InputAssets  []string               `json:"input_assets,omitempty"`
	CallbackURL  string                 `json:"callback_url"`
}

type WorkflowClient interface {
	TriggerWorkflow(ctx context.Context, workflowID string, payload WorkflowPayload) (string, error)
}

// N8NClient talks to the n8n webhook surface. n8n has no Go SDK; triggers
// are plain JSON POSTs to per-workflow webhook paths.
type N8NClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewN8NClient(cfg *config.Config) *N8NClient {
	return &N8NClient{
		baseURL: cfg.N8NBaseURL,
		apiKey:  cfg.N8NAPIKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (n *N8NClient) TriggerWorkflow(ctx context.Context, workflowID string, payload WorkflowPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal workflow payload: %w", err)
	}

	url := fmt.Sprintf("%s/webhook/%s", n.baseURL, workflowID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build workflow request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-N8N-API-KEY", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: workflow %s returned %d: %s",
			utils.ErrUpstreamFailure, workflowID, resp.StatusCode, string(raw))
	}

	var parsed struct {
		ExecutionID string `json:"execution_id"`
		// Older n8n versions use camelCase.
		ExecutionIDCamel string `json:"executionId"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: unreadable trigger response: %v", utils.ErrUpstreamFailure, err)
	}
	if parsed.ExecutionID != "" {
		return parsed.ExecutionID, nil
	}
	return parsed.ExecutionIDCamel, nil
}
