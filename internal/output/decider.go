package output

import (
	"sort"

	"conversational-bi-backend/internal/intent"
	"conversational-bi-backend/internal/model"
)

// Category is the presentation shape chosen for one result set.
type Category string

const (
	CategoryKPI          Category = "KPI"
	CategoryTableChart   Category = "TABLE_CHART"
	CategoryStackedChart Category = "STACKED_CHART"
	CategorySummaryText  Category = "SUMMARY_TEXT"
)

// Decide picks a category from the result shape. The intent argument is a
// tie-break only: causal (WHY) answers read as prose, so a table-shaped
// result is forced to SUMMARY_TEXT for them.
func Decide(rs *model.ResultSet, in intent.Intent) Category {
	if rs.RowCount() == 1 && rs.ColumnCount() == 1 {
		return CategoryKPI
	}
	if rs.HasColumn("issue_type") && rs.HasColumn("sentiment") {
		return CategoryStackedChart
	}
	if rs.RowCount() > 1 {
		if in == intent.IntentWhy {
			return CategorySummaryText
		}
		return CategoryTableChart
	}
	return CategorySummaryText
}

// BuildStackedPivot cross-tabulates an (issue_type, sentiment, count) result
// into issue_type rows with one column per sentiment, filling missing
// combinations with 0. Row and column order is lexical for determinism.
func BuildStackedPivot(rs *model.ResultSet) (*model.ResultSet, bool) {
	issueIdx := rs.ColumnIndex("issue_type")
	sentimentIdx := rs.ColumnIndex("sentiment")
	countIdx := rs.ColumnIndex("count")
	if issueIdx == -1 || sentimentIdx == -1 || countIdx == -1 {
		return nil, false
	}

	cells := make(map[string]map[string]int64)
	sentiments := make(map[string]bool)
	for _, row := range rs.Rows {
		issue, okIssue := model.AsString(row[issueIdx])
		sentiment, okSentiment := model.AsString(row[sentimentIdx])
		count, okCount := model.AsInt64(row[countIdx])
		if !okIssue || !okSentiment || !okCount {
			continue
		}
		if cells[issue] == nil {
			cells[issue] = make(map[string]int64)
		}
		cells[issue][sentiment] = count
		sentiments[sentiment] = true
	}

	issueNames := make([]string, 0, len(cells))
	for issue := range cells {
		issueNames = append(issueNames, issue)
	}
	sort.Strings(issueNames)

	sentimentNames := make([]string, 0, len(sentiments))
	for s := range sentiments {
		sentimentNames = append(sentimentNames, s)
	}
	sort.Strings(sentimentNames)

	pivot := &model.ResultSet{
		Columns: append([]string{"issue_type"}, sentimentNames...),
		Rows:    make([][]interface{}, 0, len(issueNames)),
	}
	for _, issue := range issueNames {
		row := make([]interface{}, 0, len(sentimentNames)+1)
		row = append(row, issue)
		for _, s := range sentimentNames {
			row = append(row, cells[issue][s])
		}
		pivot.Rows = append(pivot.Rows, row)
	}
	return pivot, true
}
