package model

import "time"

// ConversationRecord is one row of the conversations dataset. Column names
// are part of the query contract: compiled aggregates reference issue_type,
// sentiment and resolution_status directly.
type ConversationRecord struct {
	ConversationID   string    `json:"conversation_id" gorm:"column:conversation_id;primaryKey"`
	IssueType        string    `json:"issue_type" gorm:"column:issue_type;index"`
	Sentiment        string    `json:"sentiment" gorm:"column:sentiment;index"`
	ResolutionStatus string    `json:"resolution_status" gorm:"column:resolution_status;index"`
	Channel          string    `json:"channel" gorm:"column:channel"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName pins the gorm table name to the dataset relation the query
// compiler templates against.
func (ConversationRecord) TableName() string {
	return "conversations"
}
