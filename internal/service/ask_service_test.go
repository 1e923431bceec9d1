package service_test

import (
	"context"
	"errors"
	"testing"

	"conversational-bi-backend/internal/dto"
	"conversational-bi-backend/internal/insight"
	"conversational-bi-backend/internal/intent"
	"conversational-bi-backend/internal/model"
	"conversational-bi-backend/internal/query"
	"conversational-bi-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConversationRepository struct {
	columns    []string
	columnsErr error
	result     *model.ResultSet
	resultErr  error
	executed   []query.CompiledQuery
}

func (f *fakeConversationRepository) ExecuteAggregate(_ context.Context, q query.CompiledQuery) (*model.ResultSet, error) {
	f.executed = append(f.executed, q)
	if f.resultErr != nil {
		return nil, f.resultErr
	}
	return f.result, nil
}

func (f *fakeConversationRepository) DatasetColumns(_ context.Context) ([]string, error) {
	if f.columnsErr != nil {
		return nil, f.columnsErr
	}
	return f.columns, nil
}

func (f *fakeConversationRepository) GetDatasetSummary(_ context.Context) (*dto.DatasetSummaryResponse, error) {
	return &dto.DatasetSummaryResponse{}, nil
}

type fakeAuditStore struct {
	entries []dto.AskAuditEntry
	err     error
}

func (f *fakeAuditStore) RecordAsk(_ context.Context, entry dto.AskAuditEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditStore) Close(_ context.Context) error { return nil }

var datasetColumns = []string{"conversation_id", "issue_type", "sentiment", "resolution_status", "channel", "created_at"}

func newAskService(repo *fakeConversationRepository, audit *fakeAuditStore) service.AskService {
	return service.NewAskService(
		intent.NewKeywordClassifier(),
		query.NewTemplateCompiler(),
		insight.NewTemplateNarrator(),
		repo,
		audit,
	)
}

func TestAsk_CountPipeline(t *testing.T) {
	repo := &fakeConversationRepository{
		columns: datasetColumns,
		result: &model.ResultSet{
			Columns: []string{"value"},
			Rows:    [][]interface{}{{int64(128)}},
		},
	}
	audit := &fakeAuditStore{}
	svc := newAskService(repo, audit)

	resp, err := svc.Ask(context.Background(), dto.AskRequest{Question: "How many conversations are there?"})
	require.NoError(t, err)

	assert.Equal(t, "COUNT", resp.Intent)
	assert.Equal(t, "KPI", resp.Category)
	assert.Equal(t, "The total count is **128**.", resp.Insight)
	assert.Nil(t, resp.ErrorMessage)

	require.Len(t, repo.executed, 1)
	assert.Equal(t, "count_all", repo.executed[0].Template)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "How many conversations are there?", audit.entries[0].Question)
	assert.Equal(t, "COUNT", audit.entries[0].Intent)
	assert.NotEmpty(t, audit.entries[0].ID)
}

func TestAsk_StackedPipelineBuildsPivot(t *testing.T) {
	repo := &fakeConversationRepository{
		columns: datasetColumns,
		result: &model.ResultSet{
			Columns: []string{"issue_type", "sentiment", "count"},
			Rows: [][]interface{}{
				{"Delivery", "Negative", int64(12)},
				{"Billing", "Positive", int64(3)},
			},
		},
	}
	svc := newAskService(repo, &fakeAuditStore{})

	resp, err := svc.Ask(context.Background(), dto.AskRequest{Question: "Show sentiment distribution by issue"})
	require.NoError(t, err)

	assert.Equal(t, "DISTRIBUTION", resp.Intent)
	assert.Equal(t, "STACKED_CHART", resp.Category)
	assert.Equal(t, []string{"issue_type", "Negative", "Positive"}, resp.PivotColumns)
	require.Len(t, resp.PivotData, 2)
}

func TestAsk_SchemaMismatchBecomesErrorResponse(t *testing.T) {
	repo := &fakeConversationRepository{
		columns: []string{"conversation_id", "issue_type"},
	}
	svc := newAskService(repo, &fakeAuditStore{})

	resp, err := svc.Ask(context.Background(), dto.AskRequest{Question: "Show sentiment distribution by issue"})
	require.NoError(t, err)

	assert.Equal(t, "error", resp.Category)
	require.NotNil(t, resp.ErrorMessage)
	assert.Equal(t, "This question cannot be answered with the current dataset.", *resp.ErrorMessage)
	assert.Empty(t, repo.executed)
}

func TestAsk_QueryFailureBecomesErrorResponse(t *testing.T) {
	repo := &fakeConversationRepository{
		columns:   datasetColumns,
		resultErr: errors.New("connection refused"),
	}
	svc := newAskService(repo, &fakeAuditStore{})

	resp, err := svc.Ask(context.Background(), dto.AskRequest{Question: "How many conversations are there?"})
	require.NoError(t, err)

	assert.Equal(t, "error", resp.Category)
	require.NotNil(t, resp.ErrorMessage)
	assert.Equal(t, "Failed to retrieve data for this question.", *resp.ErrorMessage)
}

func TestAsk_SchemaInspectionFailure(t *testing.T) {
	repo := &fakeConversationRepository{columnsErr: errors.New("timeout")}
	svc := newAskService(repo, &fakeAuditStore{})

	resp, err := svc.Ask(context.Background(), dto.AskRequest{Question: "anything"})
	require.NoError(t, err)

	assert.Equal(t, "error", resp.Category)
	require.NotNil(t, resp.ErrorMessage)
	assert.Equal(t, "Failed to inspect the dataset.", *resp.ErrorMessage)
}

func TestAsk_AuditFailureDoesNotBreakAnswer(t *testing.T) {
	repo := &fakeConversationRepository{
		columns: datasetColumns,
		result: &model.ResultSet{
			Columns: []string{"value"},
			Rows:    [][]interface{}{{int64(5)}},
		},
	}
	svc := newAskService(repo, &fakeAuditStore{err: errors.New("indexer closed")})

	resp, err := svc.Ask(context.Background(), dto.AskRequest{Question: "How many conversations are there?"})
	require.NoError(t, err)
	assert.Equal(t, "The total count is **5**.", resp.Insight)
	assert.Nil(t, resp.ErrorMessage)
}

func TestExampleQuestions(t *testing.T) {
	svc := newAskService(&fakeConversationRepository{}, &fakeAuditStore{})

	questions := svc.ExampleQuestions()
	assert.Len(t, questions, 6)
	assert.Contains(t, questions, "Why pending cases are increasing?")
}
