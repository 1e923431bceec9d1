package insight_test

import (
	"testing"

	"conversational-bi-backend/internal/insight"
	"conversational-bi-backend/internal/intent"
	"conversational-bi-backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func grouped(rows ...[]interface{}) *model.ResultSet {
	return &model.ResultSet{
		Columns: []string{"issue_type", "count"},
		Rows:    rows,
	}
}

func TestNarrate(t *testing.T) {
	narrator := insight.NewTemplateNarrator()

	tests := []struct {
		name     string
		intent   intent.Intent
		question string
		rs       *model.ResultSet
		expected string
	}{
		{
			name:     "Count Scalar",
			intent:   intent.IntentCount,
			question: "How many conversations are there?",
			rs: &model.ResultSet{
				Columns: []string{"value"},
				Rows:    [][]interface{}{{int64(42)}},
			},
			expected: "The total count is **42**.",
		},
		{
			name:     "Why Dominant Issue",
			intent:   intent.IntentWhy,
			question: "Why are customers unhappy?",
			rs: grouped(
				[]interface{}{"Delivery", int64(75)},
				[]interface{}{"Billing", int64(25)},
			),
			expected: "The primary reason is **Delivery** issues, which contribute **75%** of the total cases.",
		},
		{
			name:     "Why Sub Issue Cue Overrides Dominant",
			intent:   intent.IntentWhy,
			question: "Why do refund complaints happen?",
			rs: grouped(
				[]interface{}{"Delivery", int64(75)},
				[]interface{}{"Refund", int64(25)},
			),
			expected: "The primary reason is **Refund** issues, which contribute **25%** of the total cases.",
		},
		{
			name:     "Why Cue Without Matching Row Falls Back",
			intent:   intent.IntentWhy,
			question: "Why do delivery complaints happen?",
			rs: grouped(
				[]interface{}{"Billing", int64(60)},
				[]interface{}{"Refund", int64(40)},
			),
			expected: "The primary reason is **Billing** issues, which contribute **60%** of the total cases.",
		},
		{
			name:     "Distribution Dominant Sentiment",
			intent:   intent.IntentDistribution,
			question: "What is the sentiment distribution?",
			rs: &model.ResultSet{
				Columns: []string{"issue_type", "sentiment", "count"},
				Rows: [][]interface{}{
					{"Delivery", "Negative", int64(12)},
					{"Delivery", "Positive", int64(4)},
					{"Billing", "Negative", int64(6)},
				},
			},
			expected: "The distribution shows **Negative** sentiment dominating overall.",
		},
		{
			name:     "Top Issue",
			intent:   intent.IntentTop,
			question: "Which issue type has the most complaints?",
			rs: grouped(
				[]interface{}{"Delivery", int64(30)},
				[]interface{}{"Billing", int64(10)},
			),
			expected: "The most common issue type is **Delivery**, accounting for **75%** of the listed cases.",
		},
		{
			name:     "Problems Leading Three",
			intent:   intent.IntentProblems,
			question: "What problems are customers facing?",
			rs: grouped(
				[]interface{}{"Delivery", int64(50)},
				[]interface{}{"Billing", int64(30)},
				[]interface{}{"Refund", int64(15)},
				[]interface{}{"Product", int64(5)},
			),
			expected: "Customers are mostly facing **Delivery**, **Billing** and **Refund** issues; **Delivery** alone accounts for **50%** of cases.",
		},
		{
			name:     "Problems Single Issue",
			intent:   intent.IntentProblems,
			question: "What problems are customers facing?",
			rs:       grouped([]interface{}{"Delivery", int64(9)}),
			expected: "Customers are mostly facing **Delivery** issues; **Delivery** alone accounts for **100%** of cases.",
		},
		{
			name:     "General Overall Summary",
			intent:   intent.IntentGeneral,
			question: "Tell me about the data",
			rs: grouped(
				[]interface{}{"Delivery", int64(2)},
				[]interface{}{"Billing", int64(1)},
			),
			expected: "Overall, **Delivery** issues appear most frequently, accounting for **67%** of cases.",
		},
		{
			name:     "Tie Breaks On Lexical Label",
			intent:   intent.IntentTop,
			question: "Top issue?",
			rs: grouped(
				[]interface{}{"Refund", int64(10)},
				[]interface{}{"Billing", int64(10)},
			),
			expected: "The most common issue type is **Billing**, accounting for **50%** of the listed cases.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, narrator.Narrate(tt.intent, tt.question, tt.rs))
		})
	}
}

func TestNarrate_EmptyResult(t *testing.T) {
	narrator := insight.NewTemplateNarrator()
	empty := &model.ResultSet{Columns: []string{"issue_type", "count"}}

	intents := []intent.Intent{
		intent.IntentCount,
		intent.IntentWhy,
		intent.IntentDistribution,
		intent.IntentTop,
		intent.IntentProblems,
		intent.IntentSummary,
		intent.IntentGeneral,
	}
	for _, in := range intents {
		t.Run(string(in), func(t *testing.T) {
			assert.Equal(t, insight.NoDataMessage, narrator.Narrate(in, "anything", empty))
		})
	}
}

func TestNarrate_ZeroTotal(t *testing.T) {
	narrator := insight.NewTemplateNarrator()
	rs := grouped(
		[]interface{}{"Delivery", int64(0)},
		[]interface{}{"Billing", int64(0)},
	)

	assert.Equal(t, insight.NoDataMessage, narrator.Narrate(intent.IntentTop, "top issues", rs))
}
