package dto

import "time"

// AskAuditEntry is one answered question as recorded in the audit index.
type AskAuditEntry struct {
	ID       string    `json:"id"`
	Question string    `json:"question"`
	Intent   string    `json:"intent"`
	Category string    `json:"category"`
	Insight  string    `json:"insight"`
	AskedAt  time.Time `json:"askedAt"`
}

type AuditSearchRequest struct {
	Text   string
	Intent string
	Page   int
	Size   int
}

type AuditSearchResponse struct {
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Size    int             `json:"size"`
	Entries []AskAuditEntry `json:"entries"`
}
