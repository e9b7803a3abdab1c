package pkg

import (
	"fmt"
	"time"

	"github.com/SAP-F-2025/trait-assessment-service/internal/config"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Info
	if cfg.IsProduction() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the evaluation tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Evaluation{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
