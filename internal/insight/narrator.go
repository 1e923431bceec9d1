package insight

import (
	"fmt"
	"math"
	"strings"

	"conversational-bi-backend/internal/intent"
	"conversational-bi-backend/internal/model"
)

// NoDataMessage is the universal empty-result fallback. It is checked before
// any aggregate math, so percentage computation can never divide by zero.
const NoDataMessage = "No data available for this question."

// subIssueCues narrow a WHY narration to a matching issue category when the
// question mentions one of them.
var subIssueCues = []string{"delivery", "refund", "service", "product"}

type Narrator interface {
	Narrate(in intent.Intent, question string, rs *model.ResultSet) string
}

type templateNarrator struct{}

func NewTemplateNarrator() Narrator {
	return &templateNarrator{}
}

func (n *templateNarrator) Narrate(in intent.Intent, question string, rs *model.ResultSet) string {
	if rs.Empty() {
		return NoDataMessage
	}

	switch in {
	case intent.IntentCount:
		return narrateCount(rs)
	case intent.IntentWhy:
		return narrateWhy(question, rs)
	case intent.IntentDistribution:
		return narrateDistribution(rs)
	case intent.IntentTop:
		return narrateTop(rs)
	case intent.IntentProblems:
		return narrateProblems(rs)
	default:
		return narrateOverall(rs)
	}
}

func narrateCount(rs *model.ResultSet) string {
	cell, ok := rs.Cell(0, 0)
	if !ok {
		return NoDataMessage
	}
	value, ok := model.AsInt64(cell)
	if !ok {
		return NoDataMessage
	}
	return fmt.Sprintf("The total count is **%d**.", value)
}

func narrateWhy(question string, rs *model.ResultSet) string {
	rows, total, ok := groupedRows(rs)
	if !ok || total == 0 {
		return NoDataMessage
	}

	top := dominantRow(rows)
	q := strings.ToLower(question)
	for _, cue := range subIssueCues {
		if !strings.Contains(q, cue) {
			continue
		}
		if match, found := matchingRow(rows, cue); found {
			top = match
			break
		}
	}

	return fmt.Sprintf(
		"The primary reason is **%s** issues, which contribute **%d%%** of the total cases.",
		top.label, percentage(top.count, total),
	)
}

func narrateDistribution(rs *model.ResultSet) string {
	sentimentIdx := rs.ColumnIndex("sentiment")
	countIdx := rs.ColumnIndex("count")
	if sentimentIdx == -1 || countIdx == -1 {
		return NoDataMessage
	}

	totals := make(map[string]int64)
	var grand int64
	for i := range rs.Rows {
		sentiment, okLabel := cellString(rs, i, sentimentIdx)
		count, okCount := cellInt64(rs, i, countIdx)
		if !okLabel || !okCount {
			continue
		}
		totals[sentiment] += count
		grand += count
	}
	if grand == 0 {
		return NoDataMessage
	}

	var dominant string
	var best int64 = -1
	for sentiment, sum := range totals {
		if sum > best || (sum == best && sentiment < dominant) {
			dominant = sentiment
			best = sum
		}
	}
	return fmt.Sprintf("The distribution shows **%s** sentiment dominating overall.", dominant)
}

func narrateTop(rs *model.ResultSet) string {
	rows, total, ok := groupedRows(rs)
	if !ok || total == 0 {
		return NoDataMessage
	}
	top := dominantRow(rows)
	return fmt.Sprintf(
		"The most common issue type is **%s**, accounting for **%d%%** of the listed cases.",
		top.label, percentage(top.count, total),
	)
}

func narrateProblems(rs *model.ResultSet) string {
	rows, total, ok := groupedRows(rs)
	if !ok || total == 0 {
		return NoDataMessage
	}

	leading := leadingRows(rows, 3)
	names := make([]string, len(leading))
	for i, r := range leading {
		names[i] = fmt.Sprintf("**%s**", r.label)
	}

	return fmt.Sprintf(
		"Customers are mostly facing %s issues; %s alone accounts for **%d%%** of cases.",
		joinNames(names), names[0], percentage(leading[0].count, total),
	)
}

func narrateOverall(rs *model.ResultSet) string {
	rows, total, ok := groupedRows(rs)
	if !ok || total == 0 {
		return NoDataMessage
	}
	top := dominantRow(rows)
	return fmt.Sprintf(
		"Overall, **%s** issues appear most frequently, accounting for **%d%%** of cases.",
		top.label, percentage(top.count, total),
	)
}

// --- grouped result helpers ---

type groupedRow struct {
	label string
	count int64
}

// groupedRows reads (label, count) pairs from a grouped result, labelling by
// issue_type when present and the first column otherwise.
func groupedRows(rs *model.ResultSet) ([]groupedRow, int64, bool) {
	countIdx := rs.ColumnIndex("count")
	if countIdx == -1 {
		return nil, 0, false
	}
	labelIdx := rs.ColumnIndex("issue_type")
	if labelIdx == -1 {
		labelIdx = 0
	}

	rows := make([]groupedRow, 0, rs.RowCount())
	var total int64
	for i := range rs.Rows {
		label, okLabel := cellString(rs, i, labelIdx)
		count, okCount := cellInt64(rs, i, countIdx)
		if !okLabel || !okCount {
			continue
		}
		rows = append(rows, groupedRow{label: label, count: count})
		total += count
	}
	if len(rows) == 0 {
		return nil, 0, false
	}
	return rows, total, true
}

// dominantRow returns the highest-count row, breaking count ties by the
// lexically smaller label so narration is reproducible.
func dominantRow(rows []groupedRow) groupedRow {
	top := rows[0]
	for _, r := range rows[1:] {
		if r.count > top.count || (r.count == top.count && r.label < top.label) {
			top = r
		}
	}
	return top
}

// leadingRows returns up to n rows ordered by count descending, label
// ascending, without mutating the input order.
func leadingRows(rows []groupedRow, n int) []groupedRow {
	sorted := make([]groupedRow, len(rows))
	copy(sorted, rows)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0; j-- {
			a, b := sorted[j-1], sorted[j]
			if b.count > a.count || (b.count == a.count && b.label < a.label) {
				sorted[j-1], sorted[j] = b, a
			} else {
				break
			}
		}
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func matchingRow(rows []groupedRow, cue string) (groupedRow, bool) {
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.label), cue) {
			return r, true
		}
	}
	return groupedRow{}, false
}

func percentage(count, total int64) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

func cellString(rs *model.ResultSet, row, col int) (string, bool) {
	cell, ok := rs.Cell(row, col)
	if !ok {
		return "", false
	}
	return model.AsString(cell)
}

func cellInt64(rs *model.ResultSet, row, col int) (int64, bool) {
	cell, ok := rs.Cell(row, col)
	if !ok {
		return 0, false
	}
	return model.AsInt64(cell)
}
