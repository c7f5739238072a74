package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/db"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/prashikshan/backend/internal/pkg/logger"
)

// CollegeRepository handles the college table and the admin profile rows
// bound to it.
type CollegeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCollegeRepository creates a new CollegeRepository
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListColleges lists all colleges with the AISHE code of their admin, if any
func (r *CollegeRepository) ListColleges(ctx context.Context) ([]*models.College, error) {
	sql, args, err := r.sb.Select("c.id", "c.college_name", "MAX(a.aishe_code)").
		From("college c").
		LeftJoin("admin a ON a.college_name = c.college_name").
		GroupBy("c.id", "c.college_name").
		OrderBy("c.college_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build college list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing colleges")
		return nil, fmt.Errorf("error listing colleges: %w", err)
	}
	defer rows.Close()

	var colleges []*models.College
	for rows.Next() {
		college := &models.College{}
		if err := rows.Scan(&college.ID, &college.CollegeName, &college.AisheCode); err != nil {
			return nil, fmt.Errorf("error scanning college row: %w", err)
		}
		colleges = append(colleges, college)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating college rows: %w", err)
	}
	return colleges, nil
}

// GetByID retrieves a full college row
func (r *CollegeRepository) GetByID(ctx context.Context, id int64) (*models.College, error) {
	sql, args, err := r.sb.Select(
		"id", "college_name", "location", "college_code", "university", "college_type",
		"college_email", "establishment_year", "address", "district", "pincode", "state", "website_url").
		From("college").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get college query: %w", err)
	}

	college := &models.College{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&college.ID, &college.CollegeName, &college.Location, &college.CollegeCode,
		&college.University, &college.CollegeType, &college.CollegeEmail, &college.EstablishmentYear,
		&college.Address, &college.District, &college.Pincode, &college.State, &college.WebsiteURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		logger.Error().Err(err).Int64("collegeID", id).Msg("Error scanning college row")
		return nil, fmt.Errorf("error retrieving college: %w", err)
	}
	return college, nil
}

// GetAdminWithCollege retrieves an admin profile joined with its college row
func (r *CollegeRepository) GetAdminWithCollege(ctx context.Context, userID int64) (*models.AdminProfile, *models.College, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.first_name", "a.mid_name", "a.last_name", "a.college_name",
		"a.aishe_code", "a.college_website", "a.designation", "a.department",
		"a.official_email", "a.mobile_number", "a.alternate_mobile_number", "a.gender", "a.profile_data",
		"c.id", "c.college_name", "c.location", "c.college_code", "c.university", "c.college_type",
		"c.college_email", "c.establishment_year", "c.address", "c.district", "c.pincode", "c.state", "c.website_url").
		From("admin a").
		LeftJoin("college c ON c.college_name = a.college_name").
		Where(squirrel.Eq{"a.id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build admin profile query: %w", err)
	}

	admin := &models.AdminProfile{}
	var (
		collegeID   *int64
		collegeName *string
		college     models.College
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&admin.ID, &admin.FirstName, &admin.MidName, &admin.LastName, &admin.CollegeName,
		&admin.AisheCode, &admin.CollegeWebsite, &admin.Designation, &admin.Department,
		&admin.OfficialEmail, &admin.MobileNumber, &admin.AlternateMobileNumber, &admin.Gender, &admin.ProfileData,
		&collegeID, &collegeName, &college.Location, &college.CollegeCode, &college.University, &college.CollegeType,
		&college.CollegeEmail, &college.EstablishmentYear, &college.Address, &college.District,
		&college.Pincode, &college.State, &college.WebsiteURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrAdminNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning admin profile row")
		return nil, nil, fmt.Errorf("error retrieving admin profile: %w", err)
	}

	if collegeID == nil {
		return admin, nil, nil
	}
	college.ID = *collegeID
	college.CollegeName = *collegeName
	return admin, &college, nil
}

// UpdateAdminAndCollege applies an admin profile update and the paired
// college update in one transaction. A missing admin row is recreated
// first so a half-registered account can still complete its profile.
func (r *CollegeRepository) UpdateAdminAndCollege(ctx context.Context, userID int64, adminSets map[string]interface{}, adminData models.ProfileData, collegeSets map[string]interface{}) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		healSQL, healArgs, err := r.sb.Insert("admin").
			Columns("id").
			Values(userID).
			Suffix("ON CONFLICT (id) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build admin self-heal query: %w", err)
		}
		if _, err := tx.Exec(ctx, healSQL, healArgs...); err != nil {
			return fmt.Errorf("error ensuring admin row: %w", err)
		}

		if len(adminSets) > 0 || len(adminData) > 0 {
			builder := r.sb.Update("admin").Where(squirrel.Eq{"id": userID})
			if len(adminSets) > 0 {
				builder = builder.SetMap(adminSets)
			}
			if len(adminData) > 0 {
				builder = builder.Set("profile_data", squirrel.Expr("COALESCE(profile_data, '{}'::jsonb) || ?", adminData))
			}
			updateSQL, updateArgs, err := builder.ToSql()
			if err != nil {
				return fmt.Errorf("failed to build admin update query: %w", err)
			}
			if _, err := tx.Exec(ctx, updateSQL, updateArgs...); err != nil {
				return fmt.Errorf("error updating admin profile: %w", err)
			}
		}

		collegeName, err := r.adminCollegeName(ctx, tx, userID, adminSets)
		if err != nil {
			return err
		}
		if collegeName == "" || len(collegeSets) == 0 {
			return nil
		}

		var websiteURL *string
		if v, ok := collegeSets["website_url"].(string); ok {
			websiteURL = &v
		}
		if _, err := ensureCollege(ctx, tx, r.sb, collegeName, websiteURL); err != nil {
			return err
		}

		collegeSQL, collegeArgs, err := r.sb.Update("college").
			SetMap(collegeSets).
			Where(squirrel.Eq{"college_name": collegeName}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build college update query: %w", err)
		}
		if _, err := tx.Exec(ctx, collegeSQL, collegeArgs...); err != nil {
			return fmt.Errorf("error updating college: %w", err)
		}
		return nil
	})
}

// adminCollegeName resolves the college the update applies to: the new name
// when the update sets one, otherwise the admin's stored name.
func (r *CollegeRepository) adminCollegeName(ctx context.Context, tx pgx.Tx, userID int64, adminSets map[string]interface{}) (string, error) {
	if v, ok := adminSets["college_name"].(string); ok && v != "" {
		return v, nil
	}

	sql, args, err := r.sb.Select("college_name").
		From("admin").
		Where(squirrel.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build admin college lookup: %w", err)
	}

	var name *string
	if err := tx.QueryRow(ctx, sql, args...).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("error resolving admin college: %w", err)
	}
	if name == nil {
		return "", nil
	}
	return *name, nil
}

// Stats returns the dashboard counters for a college
func (r *CollegeRepository) Stats(ctx context.Context, collegeID int64) (totalStudents, active, pending, completed int64, err error) {
	const sql = `SELECT
		(SELECT COUNT(*) FROM students WHERE college_id = $1),
		(SELECT COUNT(*) FROM applications WHERE college_id = $1 AND job_status = 'ongoing'),
		(SELECT COUNT(*) FROM applications WHERE college_id = $1 AND job_status = 'applied'),
		(SELECT COUNT(*) FROM applications WHERE college_id = $1 AND job_status = 'completed')`

	err = r.db.QueryRow(ctx, sql, collegeID).Scan(&totalStudents, &active, &pending, &completed)
	if err != nil {
		logger.Error().Err(err).Int64("collegeID", collegeID).Msg("Error computing college stats")
		return 0, 0, 0, 0, fmt.Errorf("error computing college stats: %w", err)
	}
	return totalStudents, active, pending, completed, nil
}
