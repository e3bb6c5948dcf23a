package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/neuromancers/session-scheduler/internal/config"
	"github.com/neuromancers/session-scheduler/internal/models"
)

func NewDB(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.NotificationSettings{},
		&models.Session{},
		&models.SessionAvailability{},
		&models.SessionRequest{},
		&models.ScheduledSession{},
		&models.SessionReview{},
		&models.PermissionGrant{},
		&models.AuditLog{},
	); err != nil {
		logger.Fatal("failed to migrate", zap.Error(err))
	}

	return db
}
