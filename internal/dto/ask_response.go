package dto

type AskResponse struct {
	OriginalQuestion string          `json:"originalQuestion"`
	Intent           string          `json:"intent"`
	Category         string          `json:"category"` // "KPI", "TABLE_CHART", "STACKED_CHART", "SUMMARY_TEXT", "error"
	Columns          []string        `json:"columns,omitempty"`
	Data             [][]interface{} `json:"data,omitempty"`
	PivotColumns     []string        `json:"pivotColumns,omitempty"` // only for STACKED_CHART
	PivotData        [][]interface{} `json:"pivotData,omitempty"`
	Insight          string          `json:"insight,omitempty"`
	ErrorMessage     *string         `json:"errorMessage,omitempty"`
}

type ExampleQuestionsResponse struct {
	Questions []string `json:"questions"`
}
