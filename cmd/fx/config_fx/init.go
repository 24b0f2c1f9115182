package config_fx

import (
	"log"

	"martylabs/internal/config"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	provideConfig)

func provideConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	return cfg
}
