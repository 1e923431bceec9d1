package query

import (
	"fmt"
	"strings"

	"conversational-bi-backend/internal/intent"

	"github.com/rs/zerolog/log"
)

// ErrSchemaMismatch is returned when a template references a dataset column
// that is absent from the live schema. It is detected at compile time so a
// malformed aggregate never reaches the database.
var ErrSchemaMismatch = fmt.Errorf("dataset schema mismatch")

// DatasetTable is the relation every template aggregates over.
const DatasetTable = "conversations"

// Schema is the set of column names the dataset currently exposes.
type Schema map[string]bool

func NewSchema(columns []string) Schema {
	s := make(Schema, len(columns))
	for _, c := range columns {
		s[c] = true
	}
	return s
}

// CompiledQuery is a fully-specified, parameter-free aggregate statement.
// Only closed templates are emitted; raw question text never reaches SQL.
type CompiledQuery struct {
	Template string
	SQL      string
}

// template is one entry of the closed statement set, with the columns it
// depends on. Values in the WHERE clauses are fixed literals bound to
// matched keywords, not user input.
type template struct {
	name     string
	requires []string
	sql      string
}

var (
	countAll = template{
		name: "count_all",
		sql:  "SELECT COUNT(*) AS value FROM " + DatasetTable,
	}
	countPending = template{
		name:     "count_pending",
		requires: []string{"resolution_status"},
		sql:      "SELECT COUNT(*) AS value FROM " + DatasetTable + " WHERE resolution_status = 'Pending'",
	}
	countNegative = template{
		name:     "count_negative",
		requires: []string{"sentiment"},
		sql:      "SELECT COUNT(*) AS value FROM " + DatasetTable + " WHERE sentiment = 'Negative'",
	}
	issueSentimentMatrix = template{
		name:     "issue_sentiment_matrix",
		requires: []string{"issue_type", "sentiment"},
		sql:      "SELECT issue_type, sentiment, COUNT(*) AS count FROM " + DatasetTable + " GROUP BY issue_type, sentiment",
	}
	topIssues = template{
		name:     "top_issues",
		requires: []string{"issue_type"},
		sql:      "SELECT issue_type, COUNT(*) AS count FROM " + DatasetTable + " GROUP BY issue_type ORDER BY count DESC, issue_type ASC LIMIT 5",
	}
	topIssueScalar = template{
		name:     "top_issue_scalar",
		requires: []string{"issue_type"},
		sql:      "SELECT issue_type, COUNT(*) AS count FROM " + DatasetTable + " GROUP BY issue_type ORDER BY count DESC, issue_type ASC LIMIT 1",
	}
	pendingIssueLeaderboard = template{
		name:     "pending_issue_leaderboard",
		requires: []string{"issue_type", "resolution_status"},
		sql:      "SELECT issue_type, COUNT(*) AS count FROM " + DatasetTable + " WHERE resolution_status = 'Pending' GROUP BY issue_type ORDER BY count DESC, issue_type ASC",
	}
	issueLeaderboard = template{
		name:     "issue_leaderboard",
		requires: []string{"issue_type"},
		sql:      "SELECT issue_type, COUNT(*) AS count FROM " + DatasetTable + " GROUP BY issue_type ORDER BY count DESC, issue_type ASC",
	}
)

// Secondary cue sets refining a template choice within one intent.
var (
	pendingCues   = []string{"pending", "unresolved"}
	negativeCues  = []string{"negative", "frustrated"}
	sentimentCues = []string{"sentiment", "dissatisfied"}
)

// scalarTopCue selects the single-row TOP template; a question merely
// containing "most" keeps the chart-bound top-5 form.
const scalarTopCue = "most common"

type Compiler interface {
	Compile(in intent.Intent, question string, schema Schema) (CompiledQuery, error)
}

type templateCompiler struct{}

func NewTemplateCompiler() Compiler {
	return &templateCompiler{}
}

func (c *templateCompiler) Compile(in intent.Intent, question string, schema Schema) (CompiledQuery, error) {
	q := strings.ToLower(question)

	var tpl template
	switch in {
	case intent.IntentCount:
		switch {
		case containsAny(q, pendingCues):
			tpl = countPending
		case containsAny(q, negativeCues):
			tpl = countNegative
		default:
			tpl = countAll
		}
	case intent.IntentDistribution:
		tpl = issueSentimentMatrix
	case intent.IntentTop:
		if strings.Contains(q, scalarTopCue) {
			tpl = topIssueScalar
		} else {
			tpl = topIssues
		}
	case intent.IntentWhy:
		switch {
		case containsAny(q, pendingCues):
			tpl = pendingIssueLeaderboard
		case containsAny(q, sentimentCues):
			tpl = issueSentimentMatrix
		default:
			tpl = issueLeaderboard
		}
	default:
		// SUMMARY, PROBLEMS and GENERAL share the leaderboard shape and
		// diverge only in narration.
		tpl = issueLeaderboard
	}

	for _, col := range tpl.requires {
		if !schema[col] {
			log.Warn().Str("template", tpl.name).Str("column", col).Msg("Compiled template references missing dataset column")
			return CompiledQuery{}, fmt.Errorf("%w: column %q not in dataset", ErrSchemaMismatch, col)
		}
	}

	log.Debug().Str("intent", string(in)).Str("template", tpl.name).Msg("Compiled question into aggregate template")
	return CompiledQuery{Template: tpl.name, SQL: tpl.sql}, nil
}

func containsAny(q string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}
