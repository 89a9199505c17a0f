package database

import (
	"fmt"
	"wellness_backend/internal/config"
	"wellness_backend/internal/model"
	"wellness_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var defaultAffirmations = []string{
	"You are allowed to take things one breath at a time.",
	"Small steps still move you forward.",
	"Your feelings are valid, and they will pass.",
	"Rest is part of the work, not a reward for it.",
}

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logLevel := gormlogger.Info
	if mode == "release" {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
	return db, nil
}

// Migrate 建表并写入默认数据
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.CheckIn{},
		&model.JournalEntry{},
		&model.ChatMessage{},
		&model.Group{},
		&model.GroupMember{},
		&model.GroupPost{},
		&model.BreathingSession{},
		&model.Affirmation{},
	)
	if err != nil {
		return err
	}

	logger.Log.Info("Database migration completed")

	var count int64
	db.Model(&model.Affirmation{}).Count(&count)
	if count == 0 {
		for i, content := range defaultAffirmations {
			affirmation := &model.Affirmation{
				Content:         content,
				IsEnabled:       true,
				IsCurrentlyUsed: i == 0,
			}
			if err := db.Create(affirmation).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
