package db

import (
	"go.uber.org/zap"

	"github.com/appointa/appointa/logger"
	"github.com/appointa/appointa/models"
)

// Migrate runs AutoMigrate only when explicitly called.
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.Appointment{},
		&models.AppointmentProvider{},
		&models.AppointmentRecipient{},
		&models.AppointmentActivity{},
	)
	if err != nil {
		logger.L.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.L.Info("Migrations applied")
}
