package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	PostgresURL string `env:"POSTGRES_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`

	PublicAppURL string `env:"PUBLIC_APP_URL" envDefault:"http://localhost:3000"`

	// External workflow engine.
	N8NBaseURL       string `env:"N8N_BASE_URL"`
	N8NAPIKey        string `env:"N8N_API_KEY"`
	N8NWebhookSecret string `env:"N8N_WEBHOOK_SECRET"`
	// Per-flow routing overrides, e.g. "producer-agent:wf_17,upscale:wf_9".
	FlowRouteOverrides map[string]string `env:"N8N_FLOW_ROUTES" envSeparator:"," envKeyValSeparator:":"`

	// Payment provider.
	RazorpayKeyID         string `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret     string `env:"RAZORPAY_KEY_SECRET"`
	RazorpayWebhookSecret string `env:"RAZORPAY_WEBHOOK_SECRET"`

	// Toggles the credit/plan-tier/concurrency checks at generation
	// creation. Off only in development environments.
	EnforceCreditChecks bool `env:"ENFORCE_CREDIT_CHECKS" envDefault:"true"`

	// Generations stuck in processing longer than this are swept to
	// failed and refunded.
	StuckGenerationTimeout time.Duration `env:"STUCK_GENERATION_TIMEOUT" envDefault:"2m"`
}

// Load reads .env (when present) and parses the environment. The webhook
// routes cannot operate without their secrets, so those fail fast here
// rather than at first delivery.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.N8NBaseURL == "" || cfg.N8NAPIKey == "" || cfg.N8NWebhookSecret == "" {
		return nil, fmt.Errorf("N8N_BASE_URL, N8N_API_KEY and N8N_WEBHOOK_SECRET are required")
	}
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" || cfg.RazorpayWebhookSecret == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_ID, RAZORPAY_KEY_SECRET and RAZORPAY_WEBHOOK_SECRET are required")
	}

	return cfg, nil
}
