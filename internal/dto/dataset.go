package dto

type DatasetSummaryResponse struct {
	TotalConversations    int64 `json:"totalConversations"`
	PendingConversations  int64 `json:"pendingConversations"`
	NegativeConversations int64 `json:"negativeConversations"`
}
