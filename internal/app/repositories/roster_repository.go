package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/pkg/logger"
)

// RosterRepository handles college_student_records, the college-supplied
// ground truth used to verify student link requests.
type RosterRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRosterRepository creates a new RosterRepository
func NewRosterRepository(db *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Exists reports whether the college already has a record with the given
// roll number or email. Blank values do not participate in the check.
func (r *RosterRepository) Exists(ctx context.Context, collegeName, rollNo, email string) (bool, error) {
	or := squirrel.Or{}
	if rollNo != "" {
		or = append(or, squirrel.Eq{"roll_no": rollNo})
	}
	if email != "" {
		or = append(or, squirrel.Eq{"email": email})
	}
	if len(or) == 0 {
		return false, nil
	}

	sql, args, err := r.sb.Select("1").
		From("college_student_records").
		Where(squirrel.And{squirrel.Eq{"college_name": collegeName}, or}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build roster exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Str("college", collegeName).Msg("Error checking roster record existence")
		return false, fmt.Errorf("error checking roster record: %w", err)
	}
	return true, nil
}

// Insert adds one roster record and returns it with generated fields
func (r *RosterRepository) Insert(ctx context.Context, record *models.RosterRecord) (*models.RosterRecord, error) {
	sql, args, err := r.sb.Insert("college_student_records").
		Columns("college_name", "student_name", "email", "mobile_number", "roll_no", "course", "current_year", "section").
		Values(record.CollegeName, record.StudentName, record.Email, record.MobileNumber,
			record.RollNo, record.Course, record.CurrentYear, record.Section).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build roster insert query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Str("college", record.CollegeName).Msg("Error inserting roster record")
		return nil, fmt.Errorf("error inserting roster record: %w", err)
	}
	return record, nil
}

// ListByCollege lists a college's roster records, newest first
func (r *RosterRepository) ListByCollege(ctx context.Context, collegeName string) ([]*models.RosterRecord, error) {
	sql, args, err := r.sb.Select(
		"id", "college_name", "email", "mobile_number", "roll_no",
		"student_name", "course", "current_year", "section", "created_at").
		From("college_student_records").
		Where(squirrel.Eq{"college_name": collegeName}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build roster list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("college", collegeName).Msg("Error listing roster records")
		return nil, fmt.Errorf("error listing roster records: %w", err)
	}
	defer rows.Close()

	var records []*models.RosterRecord
	for rows.Next() {
		record := &models.RosterRecord{}
		err := rows.Scan(
			&record.ID, &record.CollegeName, &record.Email, &record.MobileNumber, &record.RollNo,
			&record.StudentName, &record.Course, &record.CurrentYear, &record.Section, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}
	return records, nil
}

// FindMatch looks for a roster record matching any of the student's
// self-asserted keys within one college. Blank keys are skipped so a
// missing mobile number can never match a NULL column. A nil record with
// a nil error means no match.
func (r *RosterRepository) FindMatch(ctx context.Context, collegeName, email, mobile, rollNo string) (*models.RosterRecord, error) {
	or := squirrel.Or{}
	if email != "" {
		or = append(or, squirrel.Eq{"email": email})
	}
	if mobile != "" {
		or = append(or, squirrel.Eq{"mobile_number": mobile})
	}
	if rollNo != "" {
		or = append(or, squirrel.Eq{"roll_no": rollNo})
	}
	if len(or) == 0 {
		return nil, nil
	}

	sql, args, err := r.sb.Select(
		"id", "college_name", "email", "mobile_number", "roll_no",
		"student_name", "course", "current_year", "section", "created_at").
		From("college_student_records").
		Where(squirrel.And{squirrel.Eq{"college_name": collegeName}, or}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build roster match query: %w", err)
	}

	record := &models.RosterRecord{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&record.ID, &record.CollegeName, &record.Email, &record.MobileNumber, &record.RollNo,
		&record.StudentName, &record.Course, &record.CurrentYear, &record.Section, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("college", collegeName).Msg("Error matching roster record")
		return nil, fmt.Errorf("error matching roster record: %w", err)
	}
	return record, nil
}
