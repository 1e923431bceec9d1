package postgres

import (
	"context"
	"errors"
	"fmt"

	"conversational-bi-backend/internal/dto"
	"conversational-bi-backend/internal/model"
	"conversational-bi-backend/internal/query"
	"conversational-bi-backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type postgresConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresConversationRepository(pool *pgxpool.Pool) (repository.ConversationRepository, error) {
	if pool == nil {
		log.Warn().Msg("Postgres pool is nil in NewPostgresConversationRepository.")
		return nil, errors.New("postgres connection pool is required for ConversationRepository")
	}
	return &postgresConversationRepository{pool: pool}, nil
}

// ExecuteAggregate runs one compiled template and materializes the rows. The
// statement is parameter-free by construction, so no args are bound here.
func (r *postgresConversationRepository) ExecuteAggregate(ctx context.Context, q query.CompiledQuery) (*model.ResultSet, error) {
	log.Debug().Str("template", q.Template).Str("query", q.SQL).Msg("Executing compiled aggregate")

	rows, err := r.pool.Query(ctx, q.SQL)
	if err != nil {
		log.Error().Err(err).Str("template", q.Template).Msg("Failed to execute compiled aggregate")
		return nil, fmt.Errorf("aggregate query failed: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = string(f.Name)
	}

	rs := &model.ResultSet{Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			log.Error().Err(err).Str("template", q.Template).Msg("Failed to scan aggregate row")
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("aggregate row iteration failed: %w", err)
	}

	log.Debug().Str("template", q.Template).Int("rows", rs.RowCount()).Msg("Aggregate executed")
	return rs, nil
}

// DatasetColumns introspects the live columns of the conversations table so
// the compiler can reject templates against an incompatible dataset.
func (r *postgresConversationRepository) DatasetColumns(ctx context.Context) ([]string, error) {
	const columnSQL = `SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 ORDER BY ordinal_position`

	rows, err := r.pool.Query(ctx, columnSQL, query.DatasetTable)
	if err != nil {
		log.Error().Err(err).Msg("Failed to introspect dataset columns")
		return nil, fmt.Errorf("dataset column introspection failed: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dataset column iteration failed: %w", err)
	}
	return columns, nil
}

func (r *postgresConversationRepository) GetDatasetSummary(ctx context.Context) (*dto.DatasetSummaryResponse, error) {
	resp := &dto.DatasetSummaryResponse{}

	totalSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s", query.DatasetTable)
	if err := r.pool.QueryRow(ctx, totalSQL).Scan(&resp.TotalConversations); err != nil {
		log.Error().Err(err).Msg("Failed to count conversations")
		return nil, fmt.Errorf("failed to get dataset summary: %w", err)
	}

	pendingSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE resolution_status = 'Pending'", query.DatasetTable)
	if err := r.pool.QueryRow(ctx, pendingSQL).Scan(&resp.PendingConversations); err != nil {
		log.Error().Err(err).Msg("Failed to count pending conversations")
	}

	negativeSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE sentiment = 'Negative'", query.DatasetTable)
	if err := r.pool.QueryRow(ctx, negativeSQL).Scan(&resp.NegativeConversations); err != nil {
		log.Error().Err(err).Msg("Failed to count negative conversations")
	}

	return resp, nil
}
