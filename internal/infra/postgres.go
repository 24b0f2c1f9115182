package infra

import (
	"log"

	"martylabs/internal/config"
	"martylabs/internal/models/db_models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitPostgresql(cfg *config.Config) *gorm.DB {

	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{
		TranslateError: true,
	})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	return connectionPool
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.Plan{},
		&db_models.Subscription{},
		&db_models.CreditTransaction{},
		&db_models.Flow{},
		&db_models.Generation{},
		&db_models.Conversation{},
		&db_models.Message{},
		&db_models.UsageEvent{},
		&db_models.BillingEvent{},
		&db_models.WebhookEvent{},
	)
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}
