package database

import (
	"context"
	"fmt"

	"conversational-bi-backend/config"
	"conversational-bi-backend/internal/model"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens the write-side gorm connection and migrates the conversations
// table. The pgx read pool shares the same database; gorm owns the schema.
func NewDB(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to open gorm Postgres connection")
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&model.ConversationRecord{}); err != nil {
		log.Error().Err(err).Msg("Failed to migrate conversations table")
		return nil, fmt.Errorf("failed to migrate conversations table: %w", err)
	}
	log.Info().Msg("Conversations table migrated")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			log.Info().Msg("Closing gorm database connection...")
			return sqlDB.Close()
		},
	})

	return db, nil
}
