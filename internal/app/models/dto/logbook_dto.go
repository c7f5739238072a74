package dto

import "github.com/prashikshan/backend/internal/app/models"

type CreateLogEntryRequest struct {
	Content string `json:"content" binding:"required"`
	Date    string `json:"date"`
	Status  string `json:"status"`
}

type UpdateLogEntryRequest struct {
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

type LogEntryListResponse struct {
	Count   int                `json:"count"`
	Entries []*models.LogEntry `json:"entries"`
}
