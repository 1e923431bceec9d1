package service

import (
	"context"
	"errors"
	"time"

	"conversational-bi-backend/internal/dto"
	"conversational-bi-backend/internal/elasticsearch"
	"conversational-bi-backend/internal/insight"
	"conversational-bi-backend/internal/intent"
	"conversational-bi-backend/internal/output"
	"conversational-bi-backend/internal/query"
	"conversational-bi-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type AskService interface {
	Ask(ctx context.Context, req dto.AskRequest) (*dto.AskResponse, error)
	ExampleQuestions() []string
}

type askService struct {
	classifier intent.Classifier
	compiler   query.Compiler
	narrator   insight.Narrator
	convRepo   repository.ConversationRepository
	auditStore elasticsearch.AskAuditStore
}

func NewAskService(
	classifier intent.Classifier,
	compiler query.Compiler,
	narrator insight.Narrator,
	convRepo repository.ConversationRepository,
	auditStore elasticsearch.AskAuditStore,
) AskService {
	return &askService{
		classifier: classifier,
		compiler:   compiler,
		narrator:   narrator,
		convRepo:   convRepo,
		auditStore: auditStore,
	}
}

// Ask runs one question through the full pipeline: classify, compile,
// execute, decide the output shape, narrate. Every failure becomes an
// error-typed response; the pipeline never aborts the process.
func (s *askService) Ask(ctx context.Context, req dto.AskRequest) (*dto.AskResponse, error) {
	log.Info().Str("question", req.Question).Msg("Processing question")

	in := s.classifier.Classify(req.Question)

	columns, err := s.convRepo.DatasetColumns(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to inspect dataset schema")
		return createErrorResponse(req.Question, in, "Failed to inspect the dataset."), nil
	}

	compiled, err := s.compiler.Compile(in, req.Question, query.NewSchema(columns))
	if err != nil {
		if errors.Is(err, query.ErrSchemaMismatch) {
			log.Warn().Err(err).Str("intent", string(in)).Msg("Question cannot be answered against the current dataset")
			return createErrorResponse(req.Question, in, "This question cannot be answered with the current dataset."), nil
		}
		log.Error().Err(err).Str("intent", string(in)).Msg("Query compilation failed")
		return createErrorResponse(req.Question, in, "Failed to build a query for this question."), nil
	}

	rs, err := s.convRepo.ExecuteAggregate(ctx, compiled)
	if err != nil {
		log.Error().Err(err).Str("template", compiled.Template).Msg("Failed to execute aggregate")
		return createErrorResponse(req.Question, in, "Failed to retrieve data for this question."), nil
	}

	category := output.Decide(rs, in)
	sentence := s.narrator.Narrate(in, req.Question, rs)

	resp := &dto.AskResponse{
		OriginalQuestion: req.Question,
		Intent:           string(in),
		Category:         string(category),
		Columns:          rs.Columns,
		Data:             rs.Rows,
		Insight:          sentence,
	}

	if category == output.CategoryStackedChart {
		if pivot, ok := output.BuildStackedPivot(rs); ok {
			resp.PivotColumns = pivot.Columns
			resp.PivotData = pivot.Rows
		}
	}

	s.recordAsk(ctx, resp)
	return resp, nil
}

// ExampleQuestions returns questions the pipeline is known to answer well,
// for the frontend's suggestion panel.
func (s *askService) ExampleQuestions() []string {
	return []string{
		"Count of unresolved issues",
		"How many customers are frustrated?",
		"Why pending cases are increasing?",
		"Show sentiment distribution by issue",
		"Which issue type has most complaints?",
		"Give an overview of customer issues",
	}
}

func (s *askService) recordAsk(ctx context.Context, resp *dto.AskResponse) {
	entry := dto.AskAuditEntry{
		ID:       uuid.NewString(),
		Question: resp.OriginalQuestion,
		Intent:   resp.Intent,
		Category: resp.Category,
		Insight:  resp.Insight,
		AskedAt:  time.Now().UTC(),
	}
	if err := s.auditStore.RecordAsk(ctx, entry); err != nil {
		// Audit is best-effort; the answer has already been produced.
		log.Warn().Err(err).Str("id", entry.ID).Msg("Failed to queue ask audit entry")
	}
}

func createErrorResponse(question string, in intent.Intent, message string) *dto.AskResponse {
	errMsg := message
	return &dto.AskResponse{
		OriginalQuestion: question,
		Intent:           string(in),
		Category:         "error",
		ErrorMessage:     &errMsg,
	}
}
