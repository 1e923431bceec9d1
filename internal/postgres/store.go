package postgres

import (
	"context"
	"fmt"
	"time"

	"conversational-bi-backend/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// ProvidePostgresPool creates the read-side connection pool used to execute
// compiled aggregates. Schema migration is owned by the gorm write side; this
// pool only ever reads the conversations table.
func ProvidePostgresPool(lc fx.Lifecycle, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Postgres.DSN)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse Postgres DSN")
		return nil, fmt.Errorf("invalid Postgres DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Error().Err(err).Msg("Unable to create connection pool to Postgres")
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Error().Err(err).Msg("Failed to ping Postgres")
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}
	log.Info().Msg("Postgres connection pool created and verified.")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Closing Postgres connection pool...")
			pool.Close()
			return nil
		},
	})

	return pool, nil
}
