package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"conversational-bi-backend/config"
	"conversational-bi-backend/internal/database"
	"conversational-bi-backend/internal/kafka"
	"conversational-bi-backend/internal/model"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type IngestConsumerService interface {
	Run(ctx context.Context, wg *sync.WaitGroup)
}

type ingestConsumerService struct {
	consumer    kafka.RecordConsumer
	recordStore database.RecordStore
	batchSize   int           // How many Kafka messages to process at once
	maxWaitTime time.Duration // Max time to wait for batchSize messages
}

func NewIngestConsumerService(
	consumer kafka.RecordConsumer,
	recordStore database.RecordStore,
	cfg *config.Config,
) IngestConsumerService {
	return &ingestConsumerService{
		consumer:    consumer,
		recordStore: recordStore,
		batchSize:   cfg.Ingest.BatchSize,
		maxWaitTime: cfg.Ingest.MaxBatchWait,
	}
}

func (s *ingestConsumerService) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	log.Info().Msg("Starting record consumer loop...")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Record consumer loop stopping due to context cancellation.")
			return
		default:
		}

		if err := s.processBatch(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Info().Msg("Context cancelled during batch processing.")
				return
			}
			log.Error().Err(err).Msg("Error processing consumer batch")
			time.Sleep(1 * time.Second)
		}
	}
}

func (s *ingestConsumerService) processBatch(ctx context.Context) error {
	records := make([]model.ConversationRecord, 0, s.batchSize)
	originalMessages := make([]kafkaGo.Message, 0, s.batchSize)
	batchStartTime := time.Now()

	for len(originalMessages) < s.batchSize {
		select {
		case <-ctx.Done():
			log.Info().Msg("Context cancelled while building consumer batch.")
			return ctx.Err()
		default:
		}

		remaining := s.maxWaitTime - time.Since(batchStartTime)
		if remaining <= 0 {
			break
		}
		fetchCtx, cancel := context.WithTimeout(ctx, remaining)
		record, originalMsg, err := s.consumer.FetchMessage(fetchCtx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Debug().Int("batch_size", len(records)).Msg("Max wait time reached for batch, processing partial batch.")
				break
			}
			// Unmarshal failures still return the raw message; track it so
			// the offset advances past the poison record.
			if originalMsg.Topic != "" {
				log.Warn().Int64("offset", originalMsg.Offset).Msg("Tracking undecodable message for commit.")
				originalMessages = append(originalMessages, originalMsg)
				continue
			}
			log.Error().Err(err).Msg("Failed to fetch message, stopping batch accumulation for now.")
			return fmt.Errorf("failed to fetch kafka message: %w", err)
		}

		records = append(records, *record)
		originalMessages = append(originalMessages, originalMsg)
	}

	if len(originalMessages) == 0 {
		log.Debug().Msg("No messages in batch to process.")
		return nil
	}

	if len(records) > 0 {
		if err := s.recordStore.StoreRecords(ctx, records); err != nil {
			// Do not commit; the batch is reprocessed on the next cycle.
			log.Error().Err(err).Msg("Failed to store conversation records")
			return fmt.Errorf("failed storing records: %w", err)
		}
	}

	if err := s.consumer.CommitMessages(ctx, originalMessages...); err != nil {
		log.Error().Err(err).Msg("Failed to commit Kafka messages after successful storage")
		return fmt.Errorf("failed committing kafka messages: %w", err)
	}
	log.Info().Int("records", len(records)).Int("messages", len(originalMessages)).Msg("Successfully processed and committed batch.")

	return nil
}
