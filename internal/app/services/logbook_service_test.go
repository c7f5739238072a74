package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

type stubLogbookStore struct {
	entries map[int64]*models.LogEntry
	nextID  int64
}

func newStubLogbookStore() *stubLogbookStore {
	return &stubLogbookStore{entries: map[int64]*models.LogEntry{}}
}

func (s *stubLogbookStore) Create(_ context.Context, entry *models.LogEntry) (*models.LogEntry, error) {
	s.nextID++
	entry.ID = s.nextID
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *stubLogbookStore) ListByStudent(_ context.Context, studentID int64) ([]*models.LogEntry, error) {
	var out []*models.LogEntry
	for _, e := range s.entries {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubLogbookStore) Update(_ context.Context, studentID, entryID int64, content, status *string) (*models.LogEntry, error) {
	entry, ok := s.entries[entryID]
	if !ok || entry.StudentID != studentID {
		return nil, apperrors.ErrLogEntryNotFound
	}
	if content != nil {
		entry.Content = *content
	}
	if status != nil {
		entry.Status = *status
	}
	return entry, nil
}

func (s *stubLogbookStore) Delete(_ context.Context, studentID, entryID int64) error {
	entry, ok := s.entries[entryID]
	if !ok || entry.StudentID != studentID {
		return apperrors.ErrLogEntryNotFound
	}
	delete(s.entries, entryID)
	return nil
}

func TestLogbookCreate_Defaults(t *testing.T) {
	svc := NewLogbookService(newStubLogbookStore(), zerolog.Nop())

	entry, err := svc.Create(context.Background(), 1, &dto.CreateLogEntryRequest{Content: "Set up the project"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.Status != "draft" {
		t.Errorf("expected default status draft, got %q", entry.Status)
	}
	if entry.Date.IsZero() {
		t.Error("expected a default date")
	}
}

func TestLogbookCreate_MissingContent(t *testing.T) {
	svc := NewLogbookService(newStubLogbookStore(), zerolog.Nop())

	_, err := svc.Create(context.Background(), 1, &dto.CreateLogEntryRequest{Content: "  "})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestLogbookCreate_ExplicitDateAndStatus(t *testing.T) {
	svc := NewLogbookService(newStubLogbookStore(), zerolog.Nop())

	entry, err := svc.Create(context.Background(), 1, &dto.CreateLogEntryRequest{
		Content: "Reviewed the schema",
		Date:    "2026-08-30",
		Status:  "submitted",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.Date.Format("2006-01-02") != "2026-08-30" {
		t.Errorf("unexpected date: %v", entry.Date)
	}
	if entry.Status != "submitted" {
		t.Errorf("expected submitted, got %q", entry.Status)
	}
}

func TestLogbookUpdate_OwnerScoped(t *testing.T) {
	store := newStubLogbookStore()
	svc := NewLogbookService(store, zerolog.Nop())

	entry, err := svc.Create(context.Background(), 1, &dto.CreateLogEntryRequest{Content: "First draft"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newContent := "Revised"
	if _, err := svc.Update(context.Background(), 2, entry.ID, &dto.UpdateLogEntryRequest{Content: &newContent}); !errors.Is(err, apperrors.ErrLogEntryNotFound) {
		t.Errorf("expected ErrLogEntryNotFound for a foreign entry, got %v", err)
	}

	updated, err := svc.Update(context.Background(), 1, entry.ID, &dto.UpdateLogEntryRequest{Content: &newContent})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Content != "Revised" {
		t.Errorf("expected updated content, got %q", updated.Content)
	}
}

func TestLogbookDelete_OwnerScoped(t *testing.T) {
	store := newStubLogbookStore()
	svc := NewLogbookService(store, zerolog.Nop())

	entry, err := svc.Create(context.Background(), 1, &dto.CreateLogEntryRequest{Content: "To be removed"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), 2, entry.ID); !errors.Is(err, apperrors.ErrLogEntryNotFound) {
		t.Errorf("expected ErrLogEntryNotFound for a foreign entry, got %v", err)
	}
	if err := svc.Delete(context.Background(), 1, entry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	entries, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries.Count != 0 {
		t.Errorf("expected empty logbook, got %d entries", entries.Count)
	}
}
