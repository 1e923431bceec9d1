package repository

import (
	"context"

	"conversational-bi-backend/internal/dto"
)

type AuditRepository interface {
	Search(ctx context.Context, req dto.AuditSearchRequest) (*dto.AuditSearchResponse, error)
}
