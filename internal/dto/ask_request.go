package dto

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}
