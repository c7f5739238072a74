package services

import (
	"context"
	"strings"
	"time"

	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// LogbookService handles a student's internship logbook entries
type LogbookService struct {
	logbookRepo LogbookStore
	logger      zerolog.Logger
}

// NewLogbookService creates a new LogbookService
func NewLogbookService(logbookRepo LogbookStore, logger zerolog.Logger) *LogbookService {
	return &LogbookService{
		logbookRepo: logbookRepo,
		logger:      logger,
	}
}

// Create adds a log entry for the calling student. A missing date defaults
// to today; a missing status starts the entry as a draft.
func (s *LogbookService) Create(ctx context.Context, studentID int64, req *dto.CreateLogEntryRequest) (*models.LogEntry, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewValidationError("content is required")
	}

	date := time.Now()
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := time.Parse(postingDateLayout, strings.TrimSpace(req.Date))
		if err != nil {
			return nil, apperrors.NewValidationError("date must be formatted as YYYY-MM-DD")
		}
		date = parsed
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "draft"
	}

	entry := &models.LogEntry{
		StudentID: studentID,
		Content:   req.Content,
		Date:      date,
		Status:    status,
	}
	return s.logbookRepo.Create(ctx, entry)
}

// List returns the student's entries, newest first
func (s *LogbookService) List(ctx context.Context, studentID int64) (*dto.LogEntryListResponse, error) {
	entries, err := s.logbookRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.LogEntryListResponse{Count: len(entries), Entries: entries}, nil
}

// Update edits one of the student's own entries
func (s *LogbookService) Update(ctx context.Context, studentID, entryID int64, req *dto.UpdateLogEntryRequest) (*models.LogEntry, error) {
	return s.logbookRepo.Update(ctx, studentID, entryID, req.Content, req.Status)
}

// Delete removes one of the student's own entries
func (s *LogbookService) Delete(ctx context.Context, studentID, entryID int64) error {
	return s.logbookRepo.Delete(ctx, studentID, entryID)
}
