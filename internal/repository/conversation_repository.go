package repository

import (
	"context"

	"conversational-bi-backend/internal/dto"
	"conversational-bi-backend/internal/model"
	"conversational-bi-backend/internal/query"
)

type ConversationRepository interface {
	ExecuteAggregate(ctx context.Context, q query.CompiledQuery) (*model.ResultSet, error)
	DatasetColumns(ctx context.Context) ([]string, error)
	GetDatasetSummary(ctx context.Context) (*dto.DatasetSummaryResponse, error)
}
