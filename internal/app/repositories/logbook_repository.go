package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/prashikshan/backend/internal/pkg/logger"
)

// LogbookRepository handles the logbook_entries table. Every operation is
// scoped to the owning student; one student can never touch another's entries.
type LogbookRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLogbookRepository creates a new LogbookRepository
func NewLogbookRepository(db *pgxpool.Pool) *LogbookRepository {
	return &LogbookRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a log entry and returns it with its generated fields
func (r *LogbookRepository) Create(ctx context.Context, entry *models.LogEntry) (*models.LogEntry, error) {
	sql, args, err := r.sb.Insert("logbook_entries").
		Columns("student_id", "content", "date", "status").
		Values(entry.StudentID, entry.Content, entry.Date, entry.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert log entry query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", entry.StudentID).Msg("Error inserting log entry")
		return nil, fmt.Errorf("error inserting log entry: %w", err)
	}
	return entry, nil
}

// ListByStudent lists a student's entries, newest first
func (r *LogbookRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.LogEntry, error) {
	sql, args, err := r.sb.Select("id", "student_id", "content", "date", "status", "created_at").
		From("logbook_entries").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build log entry list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error listing log entries")
		return nil, fmt.Errorf("error listing log entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.LogEntry
	for rows.Next() {
		entry := &models.LogEntry{}
		err := rows.Scan(&entry.ID, &entry.StudentID, &entry.Content, &entry.Date, &entry.Status, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning log entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log entry rows: %w", err)
	}
	return entries, nil
}

// Update edits an entry owned by the student. Fields left nil are untouched.
func (r *LogbookRepository) Update(ctx context.Context, studentID, entryID int64, content, status *string) (*models.LogEntry, error) {
	builder := r.sb.Update("logbook_entries").
		Where(squirrel.Eq{"id": entryID, "student_id": studentID})
	if content != nil {
		builder = builder.Set("content", *content)
	}
	if status != nil {
		builder = builder.Set("status", *status)
	}
	if content == nil && status == nil {
		return r.getOwned(ctx, studentID, entryID)
	}

	sql, args, err := builder.
		Suffix("RETURNING id, student_id, content, date, status, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build log entry update query: %w", err)
	}

	entry := &models.LogEntry{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&entry.ID, &entry.StudentID, &entry.Content, &entry.Date, &entry.Status, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLogEntryNotFound
		}
		logger.Error().Err(err).Int64("entryID", entryID).Msg("Error updating log entry")
		return nil, fmt.Errorf("error updating log entry: %w", err)
	}
	return entry, nil
}

// Delete removes an entry owned by the student
func (r *LogbookRepository) Delete(ctx context.Context, studentID, entryID int64) error {
	sql, args, err := r.sb.Delete("logbook_entries").
		Where(squirrel.Eq{"id": entryID, "student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build log entry delete query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("entryID", entryID).Msg("Error deleting log entry")
		return fmt.Errorf("error deleting log entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLogEntryNotFound
	}
	return nil
}

func (r *LogbookRepository) getOwned(ctx context.Context, studentID, entryID int64) (*models.LogEntry, error) {
	sql, args, err := r.sb.Select("id", "student_id", "content", "date", "status", "created_at").
		From("logbook_entries").
		Where(squirrel.Eq{"id": entryID, "student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build log entry get query: %w", err)
	}

	entry := &models.LogEntry{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&entry.ID, &entry.StudentID, &entry.Content, &entry.Date, &entry.Status, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLogEntryNotFound
		}
		return nil, fmt.Errorf("error retrieving log entry: %w", err)
	}
	return entry, nil
}
