package config

import (
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-manager/models"
)

// OpenDB mở kết nối PostgreSQL. Handle được truyền cho các service và đóng khi tắt server.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         NewGormLogger(cfg.LogLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().In(cfg.Location)
		},
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate tạo/cập nhật bảng, FK cascade và unique index.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Survey{},
		&models.Question{},
		&models.Alternative{},
		&models.SurveyResponse{},
		&models.Answer{},
	)
	if err != nil {
		return err
	}
	slog.Info("database migrated")
	return nil
}
