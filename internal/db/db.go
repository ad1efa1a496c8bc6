package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CastingWorksHQ/casting-api/internal/config"
	"github.com/CastingWorksHQ/casting-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(AllModels()...); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// AllModels lists every persisted model; tests reuse it to migrate their
// in-memory database.
func AllModels() []any {
	return []any{
		&models.Tenant{},
		&models.User{},
		&models.Profile{},
		&models.ProfileImage{},
		&models.Studio{},
		&models.ExternalActor{},
		&models.CastingCall{},
		&models.Project{},
		&models.Scene{},
		&models.SceneAssignment{},
		&models.Application{},
		&models.ProjectMember{},
		&models.ProjectInvitation{},
		&models.Message{},
		&models.StudioNote{},
		&models.SubscriptionPlan{},
		&models.Subscription{},
		&models.DiscountCode{},
		&models.AuditLog{},
	}
}
