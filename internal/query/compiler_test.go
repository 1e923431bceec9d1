package query_test

import (
	"testing"

	"conversational-bi-backend/internal/intent"
	"conversational-bi-backend/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSchema() query.Schema {
	return query.NewSchema([]string{"conversation_id", "issue_type", "sentiment", "resolution_status", "channel", "created_at"})
}

func TestTemplateCompiler_Compile(t *testing.T) {
	compiler := query.NewTemplateCompiler()

	tests := []struct {
		name             string
		intent           intent.Intent
		question         string
		expectedTemplate string
	}{
		{
			name:             "Count All",
			intent:           intent.IntentCount,
			question:         "How many conversations do we have?",
			expectedTemplate: "count_all",
		},
		{
			name:             "Count Pending",
			intent:           intent.IntentCount,
			question:         "Count of unresolved issues",
			expectedTemplate: "count_pending",
		},
		{
			name:             "Count Negative",
			intent:           intent.IntentCount,
			question:         "How many customers are frustrated?",
			expectedTemplate: "count_negative",
		},
		{
			name:             "Pending Wins Over Negative",
			intent:           intent.IntentCount,
			question:         "How many pending cases have negative sentiment?",
			expectedTemplate: "count_pending",
		},
		{
			name:             "Distribution Matrix",
			intent:           intent.IntentDistribution,
			question:         "Show sentiment distribution by issue",
			expectedTemplate: "issue_sentiment_matrix",
		},
		{
			name:             "Top Five For Charts",
			intent:           intent.IntentTop,
			question:         "Which issue type has most complaints?",
			expectedTemplate: "top_issues",
		},
		{
			name:             "Top One For Scalar Phrasing",
			intent:           intent.IntentTop,
			question:         "What is the most common issue?",
			expectedTemplate: "top_issue_scalar",
		},
		{
			name:             "Why Pending",
			intent:           intent.IntentWhy,
			question:         "Why are pending cases increasing?",
			expectedTemplate: "pending_issue_leaderboard",
		},
		{
			name:             "Why Sentiment",
			intent:           intent.IntentWhy,
			question:         "Why are customers dissatisfied?",
			expectedTemplate: "issue_sentiment_matrix",
		},
		{
			name:             "Why Default",
			intent:           intent.IntentWhy,
			question:         "Why do customers contact us?",
			expectedTemplate: "issue_leaderboard",
		},
		{
			name:             "Summary Uses Leaderboard",
			intent:           intent.IntentSummary,
			question:         "Give an overview of customer issues",
			expectedTemplate: "issue_leaderboard",
		},
		{
			name:             "Problems Uses Leaderboard",
			intent:           intent.IntentProblems,
			question:         "What problems are customers facing?",
			expectedTemplate: "issue_leaderboard",
		},
		{
			name:             "General Uses Leaderboard",
			intent:           intent.IntentGeneral,
			question:         "Tell me something",
			expectedTemplate: "issue_leaderboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compiled, err := compiler.Compile(tt.intent, tt.question, fullSchema())
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTemplate, compiled.Template)
			assert.NotEmpty(t, compiled.SQL)
		})
	}
}

func TestTemplateCompiler_Deterministic(t *testing.T) {
	compiler := query.NewTemplateCompiler()

	first, err := compiler.Compile(intent.IntentWhy, "Why are pending cases increasing?", fullSchema())
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := compiler.Compile(intent.IntentWhy, "Why are pending cases increasing?", fullSchema())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTemplateCompiler_NoRawQuestionText(t *testing.T) {
	compiler := query.NewTemplateCompiler()

	// A hostile question must never leak into the compiled statement.
	question := "how many'; DROP TABLE conversations; --"
	compiled, err := compiler.Compile(intent.IntentCount, question, fullSchema())
	require.NoError(t, err)
	assert.NotContains(t, compiled.SQL, "DROP")
	assert.Equal(t, "count_all", compiled.Template)
}

func TestTemplateCompiler_SchemaMismatch(t *testing.T) {
	compiler := query.NewTemplateCompiler()

	tests := []struct {
		name     string
		intent   intent.Intent
		question string
		schema   query.Schema
	}{
		{
			name:     "Distribution Without Sentiment",
			intent:   intent.IntentDistribution,
			question: "Show sentiment distribution by issue",
			schema:   query.NewSchema([]string{"conversation_id", "issue_type", "resolution_status"}),
		},
		{
			name:     "Count Pending Without Resolution Status",
			intent:   intent.IntentCount,
			question: "Count of unresolved issues",
			schema:   query.NewSchema([]string{"conversation_id", "issue_type", "sentiment"}),
		},
		{
			name:     "Top Without Issue Type",
			intent:   intent.IntentTop,
			question: "Which issue type has most complaints?",
			schema:   query.NewSchema([]string{"conversation_id", "sentiment"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.Compile(tt.intent, tt.question, tt.schema)
			require.Error(t, err)
			assert.ErrorIs(t, err, query.ErrSchemaMismatch)
		})
	}
}

func TestTemplateCompiler_CountAllNeedsNoColumns(t *testing.T) {
	compiler := query.NewTemplateCompiler()

	compiled, err := compiler.Compile(intent.IntentCount, "How many rows?", query.NewSchema(nil))
	require.NoError(t, err)
	assert.Equal(t, "count_all", compiled.Template)
}
