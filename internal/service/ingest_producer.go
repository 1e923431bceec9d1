package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"conversational-bi-backend/config"
	"conversational-bi-backend/internal/filestate"
	"conversational-bi-backend/internal/kafka"
	"conversational-bi-backend/internal/model"
	"conversational-bi-backend/internal/parser"

	"github.com/rs/zerolog/log"
)

type IngestProducerService interface {
	ProcessCSV(ctx context.Context) error
}

type ingestProducerService struct {
	parser      parser.RecordParser
	producer    kafka.RecordProducer
	cfg         *config.IngestConfig
	stateMgr    filestate.Manager
	processLock sync.Mutex
}

func NewIngestProducerService(
	cfg *config.Config,
	stateMgr filestate.Manager,
	recordParser parser.RecordParser,
	producer kafka.RecordProducer,
) IngestProducerService {
	return &ingestProducerService{
		cfg:      &cfg.Ingest,
		stateMgr: stateMgr,
		parser:   recordParser,
		producer: producer,
	}
}

// ProcessCSV publishes rows of the source CSV that appeared since the last
// cycle. The byte offset already published is tracked in the state file, so
// a restart or overlapping schedule never re-publishes rows.
func (s *ingestProducerService) ProcessCSV(ctx context.Context) error {
	if !s.processLock.TryLock() {
		log.Warn().Msg("CSV ingestion already in progress, skipping run.")
		return nil
	}
	defer s.processLock.Unlock()

	log.Info().Str("file", s.cfg.CSVPath).Msg("Starting CSV ingestion cycle...")
	startTime := time.Now()

	currentState, err := s.stateMgr.LoadState()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load ingest state")
		return fmt.Errorf("failed to load ingest state: %w", err)
	}
	lastOffset := currentState[s.cfg.CSVPath]

	file, err := os.Open(s.cfg.CSVPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("file", s.cfg.CSVPath).Msg("Source CSV not found, nothing to ingest.")
			return nil
		}
		return fmt.Errorf("failed to open source CSV: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source CSV: %w", err)
	}
	if info.Size() < lastOffset {
		log.Warn().Str("file", s.cfg.CSVPath).Int64("last_offset", lastOffset).Int64("current_size", info.Size()).Msg("CSV truncated or replaced? Resetting offset.")
		lastOffset = 0
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	idx, err := s.parser.MapHeader(header)
	if err != nil {
		return fmt.Errorf("source CSV header rejected: %w", err)
	}

	var rowsRead, recordsSent int64
	var batch []model.ConversationRecord
	newOffset := lastOffset

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Context cancelled during CSV ingestion.")
			return ctx.Err()
		default:
		}

		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Warn().Err(err).Msg("Skipping malformed CSV row")
				continue
			}
			return fmt.Errorf("failed to read CSV row: %w", err)
		}

		// Rows fully covered by the stored offset were published in an
		// earlier cycle. The header re-read keeps quoting intact, so we
		// skip by offset rather than seeking mid-file.
		if reader.InputOffset() <= lastOffset {
			continue
		}
		rowsRead++

		record, err := s.parser.Parse(idx, fields)
		if err != nil {
			log.Debug().Err(err).Msg("Skipping unparseable CSV row")
			newOffset = reader.InputOffset()
			continue
		}
		batch = append(batch, *record)
		newOffset = reader.InputOffset()

		if len(batch) >= s.cfg.BatchSize {
			if err := s.producer.Produce(ctx, batch); err != nil {
				log.Error().Err(err).Msg("Failed to send intermediate batch to Kafka")
				return fmt.Errorf("failed to produce record batch: %w", err)
			}
			recordsSent += int64(len(batch))
			batch = nil
		}
	}

	if len(batch) > 0 {
		if err := s.producer.Produce(ctx, batch); err != nil {
			log.Error().Err(err).Msg("Failed to send final batch to Kafka")
			return fmt.Errorf("failed to produce final record batch: %w", err)
		}
		recordsSent += int64(len(batch))
	}

	currentState[s.cfg.CSVPath] = newOffset
	if err := s.stateMgr.SaveState(currentState); err != nil {
		log.Error().Err(err).Msg("Failed to save ingest state")
		return fmt.Errorf("failed to save ingest state: %w", err)
	}

	log.Info().
		Int64("rows_read", rowsRead).
		Int64("records_sent", recordsSent).
		Dur("duration", time.Since(startTime)).
		Msg("Finished CSV ingestion cycle.")

	return nil
}
