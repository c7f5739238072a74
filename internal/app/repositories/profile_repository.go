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

// ProfileRepository reads role profile rows generically for the public
// profile lookup. Writes stay with the role-specific repositories.
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetRoleProfile fetches the profile row matching the stored role.
// A register row holding a role outside 1-5 yields ErrInvalidRole.
func (r *ProfileRepository) GetRoleProfile(ctx context.Context, role models.Role, id int64) (interface{}, error) {
	switch role {
	case models.RoleStudent:
		return r.getStudent(ctx, id)
	case models.RoleFaculty:
		return r.getFaculty(ctx, id)
	case models.RoleAdmin:
		return r.getAdmin(ctx, id)
	case models.RoleEmployer:
		return r.getEmployer(ctx, id)
	case models.RoleStateAdmin:
		return r.getStateAdmin(ctx, id)
	default:
		return nil, apperrors.ErrInvalidRole
	}
}

func (r *ProfileRepository) getStudent(ctx context.Context, id int64) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select("id", "first_name", "mid_name", "last_name", "college_name", "college_id", "roll_no", "status", "profile_data").
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student profile query: %w", err)
	}

	p := &models.StudentProfile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.FirstName, &p.MidName, &p.LastName, &p.CollegeName, &p.CollegeID, &p.RollNo, &p.Status, &p.ProfileData)
	if err != nil {
		return nil, r.mapNotFound(err, id, "student")
	}
	return p, nil
}

func (r *ProfileRepository) getFaculty(ctx context.Context, id int64) (*models.FacultyProfile, error) {
	sql, args, err := r.sb.Select("id", "first_name", "mid_name", "last_name", "college_name", "profile_data").
		From("faculty").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build faculty profile query: %w", err)
	}

	p := &models.FacultyProfile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.FirstName, &p.MidName, &p.LastName, &p.CollegeName, &p.ProfileData)
	if err != nil {
		return nil, r.mapNotFound(err, id, "faculty")
	}
	return p, nil
}

func (r *ProfileRepository) getAdmin(ctx context.Context, id int64) (*models.AdminProfile, error) {
	sql, args, err := r.sb.Select(
		"id", "first_name", "mid_name", "last_name", "college_name", "aishe_code", "college_website",
		"designation", "department", "official_email", "mobile_number", "alternate_mobile_number", "gender", "profile_data").
		From("admin").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build admin profile query: %w", err)
	}

	p := &models.AdminProfile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.FirstName, &p.MidName, &p.LastName, &p.CollegeName, &p.AisheCode, &p.CollegeWebsite,
		&p.Designation, &p.Department, &p.OfficialEmail, &p.MobileNumber, &p.AlternateMobileNumber, &p.Gender, &p.ProfileData)
	if err != nil {
		return nil, r.mapNotFound(err, id, "admin")
	}
	return p, nil
}

func (r *ProfileRepository) getEmployer(ctx context.Context, id int64) (*models.EmployerProfile, error) {
	sql, args, err := r.sb.Select("id", "company_name", "gst_number", "profile_data").
		From("employer").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build employer profile query: %w", err)
	}

	p := &models.EmployerProfile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CompanyName, &p.GSTNumber, &p.ProfileData)
	if err != nil {
		return nil, r.mapNotFound(err, id, "employer")
	}
	return p, nil
}

func (r *ProfileRepository) getStateAdmin(ctx context.Context, id int64) (*models.StateAdminProfile, error) {
	sql, args, err := r.sb.Select("id", "first_name", "mid_name", "last_name", "state", "profile_data").
		From("state_admin").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build state admin profile query: %w", err)
	}

	p := &models.StateAdminProfile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.FirstName, &p.MidName, &p.LastName, &p.State, &p.ProfileData)
	if err != nil {
		return nil, r.mapNotFound(err, id, "state admin")
	}
	return p, nil
}

func (r *ProfileRepository) mapNotFound(err error, id int64, kind string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrResourceNotFound
	}
	logger.Error().Err(err).Int64("userID", id).Str("kind", kind).Msg("Error scanning profile row")
	return fmt.Errorf("error retrieving %s profile: %w", kind, err)
}
