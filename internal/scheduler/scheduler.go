package scheduler

import (
	"context"

	"conversational-bi-backend/config"
	"conversational-bi-backend/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// NewScheduler runs the CSV ingestion cycle on the configured cron schedule.
func NewScheduler(lc fx.Lifecycle, cfg *config.Config, ingestSvc service.IngestProducerService) *cron.Cron {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.DowOptional | cron.Descriptor)
	c := cron.New(cron.WithParser(parser))

	schedule := cfg.Ingest.Schedule
	_, err := c.AddFunc(schedule, func() {
		go func() {
			if err := ingestSvc.ProcessCSV(context.Background()); err != nil {
				log.Error().Err(err).Msg("Error during scheduled CSV ingestion")
			}
		}()
	})

	if err != nil {
		log.Fatal().Err(err).Str("schedule", schedule).Msg("Failed to add cron job")
		return nil
	}
	log.Info().Str("schedule", schedule).Msg("Scheduled CSV ingestion job")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msg("Starting cron scheduler")
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping cron scheduler...")
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
				log.Info().Msg("Cron scheduler stopped gracefully.")
				return nil
			case <-ctx.Done():
				log.Error().Msg("Context cancelled while waiting for cron scheduler to stop.")
				return ctx.Err()
			}
		},
	})

	return c
}
