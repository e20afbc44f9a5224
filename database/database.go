package database

import (
	"errors"
	"fmt"
	"log/slog"

	"freelancehub/config"
	"freelancehub/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects with the configured driver and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres", "":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectRequest{},
		&models.Task{},
		&models.Submission{},
	)
}

var ErrAdminPassword = errors.New("ADMIN_PASSWORD must be set to at least 6 characters to create the initial admin")

// SeedDefaultAdmin creates an admin account when the platform has none.
// The password is only required while no admin exists.
func SeedDefaultAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if len(password) < models.MinPasswordLength {
		return ErrAdminPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	slog.Info("default admin user created", slog.String("email", email))
	return nil
}
