package output_test

import (
	"testing"

	"conversational-bi-backend/internal/intent"
	"conversational-bi-backend/internal/model"
	"conversational-bi-backend/internal/output"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		rs       *model.ResultSet
		intent   intent.Intent
		expected output.Category
	}{
		{
			name: "Scalar Is KPI",
			rs: &model.ResultSet{
				Columns: []string{"value"},
				Rows:    [][]interface{}{{int64(42)}},
			},
			intent:   intent.IntentCount,
			expected: output.CategoryKPI,
		},
		{
			name: "Scalar Is KPI Regardless Of Intent",
			rs: &model.ResultSet{
				Columns: []string{"value"},
				Rows:    [][]interface{}{{int64(7)}},
			},
			intent:   intent.IntentWhy,
			expected: output.CategoryKPI,
		},
		{
			name: "Issue And Sentiment Is Stacked",
			rs: &model.ResultSet{
				Columns: []string{"issue_type", "sentiment", "count"},
				Rows: [][]interface{}{
					{"Delivery", "Negative", int64(12)},
					{"Billing", "Positive", int64(3)},
				},
			},
			intent:   intent.IntentDistribution,
			expected: output.CategoryStackedChart,
		},
		{
			name: "Stacked Wins Over Why Override",
			rs: &model.ResultSet{
				Columns: []string{"issue_type", "sentiment", "count"},
				Rows: [][]interface{}{
					{"Delivery", "Negative", int64(12)},
					{"Billing", "Positive", int64(3)},
				},
			},
			intent:   intent.IntentWhy,
			expected: output.CategoryStackedChart,
		},
		{
			name: "Multi Row Grouping Is Table Chart",
			rs: &model.ResultSet{
				Columns: []string{"issue_type", "count"},
				Rows: [][]interface{}{
					{"Delivery", int64(30)},
					{"Billing", int64(10)},
				},
			},
			intent:   intent.IntentTop,
			expected: output.CategoryTableChart,
		},
		{
			name: "Why Forces Summary Text On Table Shape",
			rs: &model.ResultSet{
				Columns: []string{"issue_type", "count"},
				Rows: [][]interface{}{
					{"Delivery", int64(30)},
					{"Billing", int64(10)},
				},
			},
			intent:   intent.IntentWhy,
			expected: output.CategorySummaryText,
		},
		{
			name: "Single Multi Column Row Is Summary Text",
			rs: &model.ResultSet{
				Columns: []string{"issue_type", "count"},
				Rows:    [][]interface{}{{"Delivery", int64(30)}},
			},
			intent:   intent.IntentGeneral,
			expected: output.CategorySummaryText,
		},
		{
			name:     "Empty Result Is Summary Text",
			rs:       &model.ResultSet{Columns: []string{"issue_type", "count"}},
			intent:   intent.IntentSummary,
			expected: output.CategorySummaryText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, output.Decide(tt.rs, tt.intent))
		})
	}
}

func TestBuildStackedPivot(t *testing.T) {
	rs := &model.ResultSet{
		Columns: []string{"issue_type", "sentiment", "count"},
		Rows: [][]interface{}{
			{"Delivery", "Negative", int64(12)},
			{"Delivery", "Positive", int64(4)},
			{"Billing", "Neutral", int64(5)},
		},
	}

	pivot, ok := output.BuildStackedPivot(rs)
	require.True(t, ok)

	assert.Equal(t, []string{"issue_type", "Negative", "Neutral", "Positive"}, pivot.Columns)
	require.Len(t, pivot.Rows, 2)

	// Rows are lexical by issue_type; missing combinations are zero-filled.
	assert.Equal(t, []interface{}{"Billing", int64(0), int64(5), int64(0)}, pivot.Rows[0])
	assert.Equal(t, []interface{}{"Delivery", int64(12), int64(0), int64(4)}, pivot.Rows[1])
}

func TestBuildStackedPivot_MissingColumns(t *testing.T) {
	rs := &model.ResultSet{
		Columns: []string{"issue_type", "count"},
		Rows:    [][]interface{}{{"Delivery", int64(30)}},
	}

	_, ok := output.BuildStackedPivot(rs)
	assert.False(t, ok)
}
