package repositories

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/db"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/prashikshan/backend/internal/pkg/dberrors"
	"github.com/prashikshan/backend/internal/pkg/logger"
)

// IdentityRepository handles the register table and the role profile rows
// created alongside it at signup.
type IdentityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewIdentityRepository creates a new IdentityRepository
func NewIdentityRepository(db *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// EmailExists checks whether an email is already registered
func (r *IdentityRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("register").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Msg("Error checking email existence")
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return true, nil
}

// IDExists checks whether a candidate user id is already taken
func (r *IdentityRepository) IDExists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("register").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build id exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error checking id existence")
		return false, fmt.Errorf("error checking id existence: %w", err)
	}
	return true, nil
}

// GetByEmail retrieves an identity by email
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	sql, args, err := r.sb.Select("id", "email", "password", "role", "create_time").
		From("register").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get identity query: %w", err)
	}

	identity := &models.Identity{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&identity.ID, &identity.Email, &identity.Password, &identity.Role, &identity.CreateTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning identity row")
		return nil, fmt.Errorf("error retrieving identity: %w", err)
	}
	return identity, nil
}

// GetByID retrieves an identity by user id
func (r *IdentityRepository) GetByID(ctx context.Context, id int64) (*models.Identity, error) {
	sql, args, err := r.sb.Select("id", "email", "password", "role", "create_time").
		From("register").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get identity query: %w", err)
	}

	identity := &models.Identity{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&identity.ID, &identity.Email, &identity.Password, &identity.Role, &identity.CreateTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error scanning identity row")
		return nil, fmt.Errorf("error retrieving identity: %w", err)
	}
	return identity, nil
}

// insertIdentity writes the register row inside an open transaction.
// Primary key collisions surface as ErrConflict so the caller can retry
// with a fresh id; duplicate emails surface as ErrEmailAlreadyExists.
func (r *IdentityRepository) insertIdentity(ctx context.Context, tx pgx.Tx, identity *models.Identity) error {
	sql, args, err := r.sb.Insert("register").
		Columns("id", "email", "password", "role", "create_time").
		Values(identity.ID, identity.Email, identity.Password, int(identity.Role), identity.CreateTime).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert identity query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "register_pkey") {
			return apperrors.ErrConflict
		}
		if dberrors.IsDuplicateConstraintError(err, "register_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("id", identity.ID).Msg("Error inserting register row")
		return fmt.Errorf("error inserting identity: %w", err)
	}
	return nil
}

// CreateStudent inserts the register row and the students row in one transaction
func (r *IdentityRepository) CreateStudent(ctx context.Context, identity *models.Identity, profile *models.StudentProfile) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.insertIdentity(ctx, tx, identity); err != nil {
			return err
		}
		sql, args, err := r.sb.Insert("students").
			Columns("id", "first_name", "mid_name", "last_name", "college_name", "college_id", "roll_no", "status", "profile_data").
			Values(identity.ID, profile.FirstName, profile.MidName, profile.LastName,
				profile.CollegeName, profile.CollegeID, profile.RollNo, string(models.StatusPending), profile.ProfileData).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert student query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error inserting student profile: %w", err)
		}
		return nil
	})
}

// CreateFaculty inserts the register row and the faculty row in one transaction
func (r *IdentityRepository) CreateFaculty(ctx context.Context, identity *models.Identity, profile *models.FacultyProfile) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.insertIdentity(ctx, tx, identity); err != nil {
			return err
		}
		sql, args, err := r.sb.Insert("faculty").
			Columns("id", "first_name", "mid_name", "last_name", "college_name", "profile_data").
			Values(identity.ID, profile.FirstName, profile.MidName, profile.LastName,
				profile.CollegeName, profile.ProfileData).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert faculty query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error inserting faculty profile: %w", err)
		}
		return nil
	})
}

// CreateAdmin inserts the register row, ensures the college row exists and
// inserts the admin row, all in one transaction.
func (r *IdentityRepository) CreateAdmin(ctx context.Context, identity *models.Identity, profile *models.AdminProfile) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.insertIdentity(ctx, tx, identity); err != nil {
			return err
		}
		if profile.CollegeName != nil && *profile.CollegeName != "" {
			if _, err := ensureCollege(ctx, tx, r.sb, *profile.CollegeName, profile.CollegeWebsite); err != nil {
				return err
			}
		}
		sql, args, err := r.sb.Insert("admin").
			Columns("id", "first_name", "mid_name", "last_name", "college_name", "aishe_code", "college_website", "profile_data").
			Values(identity.ID, profile.FirstName, profile.MidName, profile.LastName,
				profile.CollegeName, profile.AisheCode, profile.CollegeWebsite, profile.ProfileData).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert admin query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error inserting admin profile: %w", err)
		}
		return nil
	})
}

// CreateEmployer inserts the register row and the employer row in one transaction
func (r *IdentityRepository) CreateEmployer(ctx context.Context, identity *models.Identity, profile *models.EmployerProfile) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.insertIdentity(ctx, tx, identity); err != nil {
			return err
		}
		sql, args, err := r.sb.Insert("employer").
			Columns("id", "company_name", "gst_number", "profile_data").
			Values(identity.ID, profile.CompanyName, profile.GSTNumber, profile.ProfileData).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert employer query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error inserting employer profile: %w", err)
		}
		return nil
	})
}

// CreateStateAdmin inserts the register row and the state_admin row in one transaction
func (r *IdentityRepository) CreateStateAdmin(ctx context.Context, identity *models.Identity, profile *models.StateAdminProfile) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.insertIdentity(ctx, tx, identity); err != nil {
			return err
		}
		sql, args, err := r.sb.Insert("state_admin").
			Columns("id", "first_name", "mid_name", "last_name", "state", "profile_data").
			Values(identity.ID, profile.FirstName, profile.MidName, profile.LastName,
				profile.State, profile.ProfileData).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert state admin query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error inserting state admin profile: %w", err)
		}
		return nil
	})
}

// ensureCollege finds a college by name or creates it with a random 6-digit
// id, retrying a bounded number of times on id collision.
func ensureCollege(ctx context.Context, tx pgx.Tx, sb squirrel.StatementBuilderType, name string, websiteURL *string) (int64, error) {
	lookupSQL, lookupArgs, err := sb.Select("id").
		From("college").
		Where(squirrel.Eq{"college_name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build college lookup query: %w", err)
	}

	var collegeID int64
	err = tx.QueryRow(ctx, lookupSQL, lookupArgs...).Scan(&collegeID)
	if err == nil {
		return collegeID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("error looking up college: %w", err)
	}

	// ON CONFLICT DO NOTHING keeps the surrounding transaction healthy on
	// an id collision; a plain constraint error would abort it.
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate := int64(rand.Intn(900000) + 100000)
		insertSQL, insertArgs, err := sb.Insert("college").
			Columns("id", "college_name", "website_url").
			Values(candidate, name, websiteURL).
			Suffix("ON CONFLICT DO NOTHING").
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build insert college query: %w", err)
		}
		cmdTag, err := tx.Exec(ctx, insertSQL, insertArgs...)
		if err != nil {
			return 0, fmt.Errorf("error inserting college: %w", err)
		}
		if cmdTag.RowsAffected() == 1 {
			return candidate, nil
		}
		// Either the id or the name collided. If the name now resolves,
		// another registration won the race and its row is reused.
		err = tx.QueryRow(ctx, lookupSQL, lookupArgs...).Scan(&collegeID)
		if err == nil {
			return collegeID, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("error re-checking college: %w", err)
		}
	}
	return 0, apperrors.ErrIDSpaceExhausted
}

// maxIDAttempts bounds random id allocation for both user and college ids.
const maxIDAttempts = 10
