package service

import (
	"context"

	"conversational-bi-backend/internal/dto"
	"conversational-bi-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	defaultAuditPageSize = 20
	maxAuditPageSize     = 100
)

type AuditQueryService interface {
	Search(ctx context.Context, req dto.AuditSearchRequest) (*dto.AuditSearchResponse, error)
}

type auditQueryService struct {
	auditRepo repository.AuditRepository
}

func NewAuditQueryService(auditRepo repository.AuditRepository) AuditQueryService {
	return &auditQueryService{
		auditRepo: auditRepo,
	}
}

func (s *auditQueryService) Search(ctx context.Context, req dto.AuditSearchRequest) (*dto.AuditSearchResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Size <= 0 {
		req.Size = defaultAuditPageSize
	}
	if req.Size > maxAuditPageSize {
		req.Size = maxAuditPageSize
	}

	log.Info().Str("text", req.Text).Str("intent", req.Intent).Int("page", req.Page).Int("size", req.Size).Msg("Searching ask audit")
	return s.auditRepo.Search(ctx, req)
}
