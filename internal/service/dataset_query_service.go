package service

import (
	"context"

	"conversational-bi-backend/internal/dto"
	"conversational-bi-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

type DatasetQueryService interface {
	GetSummary(ctx context.Context) (*dto.DatasetSummaryResponse, error)
}

type datasetQueryService struct {
	convRepo repository.ConversationRepository
}

func NewDatasetQueryService(convRepo repository.ConversationRepository) DatasetQueryService {
	return &datasetQueryService{
		convRepo: convRepo,
	}
}

func (s *datasetQueryService) GetSummary(ctx context.Context) (*dto.DatasetSummaryResponse, error) {
	log.Info().Msg("Getting dataset summary")
	return s.convRepo.GetDatasetSummary(ctx)
}
