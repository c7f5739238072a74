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

// StudentRepository handles the students table
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves a student profile row
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select("id", "first_name", "mid_name", "last_name", "college_name", "college_id", "roll_no", "status", "profile_data").
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.StudentProfile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.FirstName, &student.MidName, &student.LastName,
		&student.CollegeName, &student.CollegeID, &student.RollNo, &student.Status, &student.ProfileData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetWithEmail retrieves a student profile joined with the register email
func (r *StudentRepository) GetWithEmail(ctx context.Context, id int64) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.first_name", "s.mid_name", "s.last_name",
		"s.college_name", "s.college_id", "s.roll_no", "s.status", "s.profile_data",
		"r.email").
		From("students s").
		Join("register r ON r.id = s.id").
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.StudentProfile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.FirstName, &student.MidName, &student.LastName,
		&student.CollegeName, &student.CollegeID, &student.RollNo, &student.Status, &student.ProfileData,
		&student.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// SaveLinkRequest writes a student's college link request: the college
// linkage, roll number and self-asserted details, resetting the approval
// status to pending. Resubmission simply overwrites the previous request.
func (r *StudentRepository) SaveLinkRequest(ctx context.Context, id int64, collegeID int64, collegeName string, rollNo string, details models.ProfileData) error {
	sql, args, err := r.sb.Update("students").
		Set("college_id", collegeID).
		Set("college_name", collegeName).
		Set("roll_no", rollNo).
		Set("status", string(models.StatusPending)).
		Set("profile_data", squirrel.Expr("COALESCE(profile_data, '{}'::jsonb) || ?", details)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build link request query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error saving link request")
		return fmt.Errorf("error saving link request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// ListByCollegeAndStatus lists students of one college with a given
// approval status, joined with their account email.
func (r *StudentRepository) ListByCollegeAndStatus(ctx context.Context, collegeID int64, status models.StudentStatus) ([]*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.first_name", "s.mid_name", "s.last_name",
		"s.college_name", "s.college_id", "s.roll_no", "s.status", "s.profile_data",
		"r.email").
		From("students s").
		Join("register r ON r.id = s.id").
		Where(squirrel.Eq{"s.college_id": collegeID, "s.status": string(status)}).
		OrderBy("s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student listing query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("collegeID", collegeID).Msg("Error listing students")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.StudentProfile
	for rows.Next() {
		student := &models.StudentProfile{}
		err := rows.Scan(
			&student.ID, &student.FirstName, &student.MidName, &student.LastName,
			&student.CollegeName, &student.CollegeID, &student.RollNo, &student.Status, &student.ProfileData,
			&student.Email)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// UpdateStatus sets a student's approval status unconditionally
func (r *StudentRepository) UpdateStatus(ctx context.Context, id int64, status models.StudentStatus) error {
	sql, args, err := r.sb.Update("students").
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build status update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error updating student status")
		return fmt.Errorf("error updating student status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// ApproveIfPending promotes a student to approved only from the pending
// state, leaving a rejection in place. Reports whether a row changed.
func (r *StudentRepository) ApproveIfPending(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Update("students").
		Set("status", string(models.StatusApproved)).
		Where(squirrel.Eq{"id": id, "status": string(models.StatusPending)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build approve query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error approving student")
		return false, fmt.Errorf("error approving student: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// UpdateProfile applies name changes and merges free-form profile data
func (r *StudentRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName *string, data models.ProfileData) error {
	builder := r.sb.Update("students").Where(squirrel.Eq{"id": id})
	if firstName != nil {
		builder = builder.Set("first_name", *firstName)
	}
	if lastName != nil {
		builder = builder.Set("last_name", *lastName)
	}
	if len(data) > 0 {
		builder = builder.Set("profile_data", squirrel.Expr("COALESCE(profile_data, '{}'::jsonb) || ?", data))
	}
	if firstName == nil && lastName == nil && len(data) == 0 {
		return nil
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build profile update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error updating student profile")
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
