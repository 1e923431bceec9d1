package parser

import (
	"fmt"
	"strings"
	"time"

	"conversational-bi-backend/internal/model"

	"github.com/rs/zerolog/log"
)

// Columns the dataset contract requires in every source CSV.
var requiredColumns = []string{"conversation_id", "issue_type", "sentiment", "resolution_status"}

// HeaderIndex maps CSV column names to field positions for one file.
type HeaderIndex map[string]int

type RecordParser interface {
	MapHeader(header []string) (HeaderIndex, error)
	Parse(idx HeaderIndex, fields []string) (*model.ConversationRecord, error)
}

type csvRecordParser struct{}

func NewCSVRecordParser() RecordParser {
	return &csvRecordParser{}
}

// MapHeader builds the column index and rejects files missing a required
// dataset column, so a bad CSV fails once at the header instead of per row.
func (p *csvRecordParser) MapHeader(header []string) (HeaderIndex, error) {
	idx := make(HeaderIndex, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			log.Error().Str("column", col).Strs("header", header).Msg("Source CSV is missing a required column")
			return nil, fmt.Errorf("source CSV missing required column %q", col)
		}
	}
	return idx, nil
}

func (p *csvRecordParser) Parse(idx HeaderIndex, fields []string) (*model.ConversationRecord, error) {
	id := fieldAt(idx, fields, "conversation_id")
	if id == "" {
		return nil, fmt.Errorf("row has empty conversation_id")
	}
	issueType := fieldAt(idx, fields, "issue_type")
	sentiment := fieldAt(idx, fields, "sentiment")
	status := fieldAt(idx, fields, "resolution_status")
	if issueType == "" || sentiment == "" || status == "" {
		return nil, fmt.Errorf("row %s is missing issue_type, sentiment or resolution_status", id)
	}

	record := &model.ConversationRecord{
		ConversationID:   id,
		IssueType:        issueType,
		Sentiment:        canonicalize(sentiment),
		ResolutionStatus: canonicalize(status),
		Channel:          fieldAt(idx, fields, "channel"),
	}

	if raw := fieldAt(idx, fields, "created_at"); raw != "" {
		ts, err := parseTimeFlexible(raw)
		if err != nil {
			log.Debug().Str("conversation_id", id).Str("created_at", raw).Msg("Unparseable created_at, leaving zero")
		} else {
			record.CreatedAt = ts
		}
	}

	return record, nil
}

func fieldAt(idx HeaderIndex, fields []string, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// canonicalize normalizes category values to the capitalization the query
// templates filter on ('Pending', 'Negative', ...).
func canonicalize(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ""
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

func parseTimeFlexible(raw string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format: %s", raw)
}
