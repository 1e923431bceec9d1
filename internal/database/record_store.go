package database

import (
	"context"
	"fmt"

	"conversational-bi-backend/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecordStore interface {
	StoreRecords(ctx context.Context, records []model.ConversationRecord) error
}

type gormRecordStore struct {
	db        *gorm.DB
	batchSize int
}

func NewGormRecordStore(db *gorm.DB) RecordStore {
	return &gormRecordStore{
		db:        db,
		batchSize: 500,
	}
}

// StoreRecords inserts a batch of conversation records. Re-delivered Kafka
// messages are absorbed by conflict-do-nothing on the primary key, keeping
// ingestion idempotent.
func (s *gormRecordStore) StoreRecords(ctx context.Context, records []model.ConversationRecord) error {
	if len(records) == 0 {
		return nil
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(records, s.batchSize)
	if result.Error != nil {
		log.Error().Err(result.Error).Int("count", len(records)).Msg("Failed to bulk insert conversation records")
		return fmt.Errorf("record bulk insert failed: %w", result.Error)
	}

	log.Debug().Int64("inserted", result.RowsAffected).Int("batch", len(records)).Msg("Stored conversation records")
	return nil
}
