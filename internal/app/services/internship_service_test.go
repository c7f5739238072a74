package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

func TestCreateInternship_Success(t *testing.T) {
	store := &stubInternshipStore{}
	svc := NewInternshipService(store, zerolog.Nop())

	created, err := svc.Create(context.Background(), 400000001, &dto.CreateInternshipRequest{
		Title:     "  Backend Intern  ",
		WorkMode:  "Remote",
		StartDate: "2026-10-01",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Title != "Backend Intern" {
		t.Errorf("expected trimmed title, got %q", created.Title)
	}
	if created.Status != "Active" {
		t.Errorf("expected new postings to be Active, got %q", created.Status)
	}
	if created.EmployerID != 400000001 {
		t.Errorf("expected owner 400000001, got %d", created.EmployerID)
	}
	if created.StartDate == nil || created.StartDate.Format("2006-01-02") != "2026-10-01" {
		t.Errorf("unexpected start date: %v", created.StartDate)
	}
}

func TestCreateInternship_MissingTitle(t *testing.T) {
	svc := NewInternshipService(&stubInternshipStore{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), 1, &dto.CreateInternshipRequest{Title: "   "})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestCreateInternship_BadDate(t *testing.T) {
	svc := NewInternshipService(&stubInternshipStore{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), 1, &dto.CreateInternshipRequest{
		Title:     "Intern",
		StartDate: "01/10/2026",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed for bad date, got %v", err)
	}
}

func TestListActive(t *testing.T) {
	store := &stubInternshipStore{}
	svc := NewInternshipService(store, zerolog.Nop())

	if _, err := svc.Create(context.Background(), 1, &dto.CreateInternshipRequest{Title: "One"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), 2, &dto.CreateInternshipRequest{Title: "Two"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected 2 postings, got %d", resp.Count)
	}
}
