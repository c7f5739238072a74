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

// EmployerRepository handles the employer table
type EmployerRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEmployerRepository creates a new EmployerRepository
func NewEmployerRepository(db *pgxpool.Pool) *EmployerRepository {
	return &EmployerRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetWithEmail retrieves an employer profile joined with the register email
func (r *EmployerRepository) GetWithEmail(ctx context.Context, id int64) (*models.EmployerProfile, error) {
	sql, args, err := r.sb.Select("e.id", "e.company_name", "e.gst_number", "e.profile_data", "r.email").
		From("employer e").
		Join("register r ON r.id = e.id").
		Where(squirrel.Eq{"e.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get employer query: %w", err)
	}

	employer := &models.EmployerProfile{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&employer.ID, &employer.CompanyName, &employer.GSTNumber, &employer.ProfileData, &employer.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEmployerNotFound
		}
		logger.Error().Err(err).Int64("employerID", id).Msg("Error scanning employer row")
		return nil, fmt.Errorf("error retrieving employer: %w", err)
	}
	return employer, nil
}

// UpdateProfile merges profile data and refreshes the scalar columns,
// keeping existing values when the update omits them.
func (r *EmployerRepository) UpdateProfile(ctx context.Context, id int64, companyName, gstNumber *string, data models.ProfileData) error {
	builder := r.sb.Update("employer").
		Set("company_name", squirrel.Expr("COALESCE(?, company_name)", companyName)).
		Set("gst_number", squirrel.Expr("COALESCE(?, gst_number)", gstNumber)).
		Where(squirrel.Eq{"id": id})
	if len(data) > 0 {
		builder = builder.Set("profile_data", squirrel.Expr("COALESCE(profile_data, '{}'::jsonb) || ?", data))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build employer update query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("employerID", id).Msg("Error updating employer profile")
		return fmt.Errorf("error updating employer profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEmployerNotFound
	}
	return nil
}
