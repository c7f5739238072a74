package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prashikshan/backend/internal/pkg/logger"
)

// TokenRepository handles the token bookkeeping table. One row per user,
// overwritten on every login; verification never reads this table.
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert records the latest token pair for a user
func (r *TokenRepository) Upsert(ctx context.Context, userID int64, accessToken, refreshToken string) error {
	sql, args, err := r.sb.Insert("token").
		Columns("token_id", "accesstoken", "refreshtoken", "created_at").
		Values(userID, accessToken, refreshToken, time.Now()).
		Suffix("ON CONFLICT (token_id) DO UPDATE SET accesstoken = EXCLUDED.accesstoken, refreshtoken = EXCLUDED.refreshtoken, created_at = EXCLUDED.created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error upserting token row")
		return fmt.Errorf("error storing token pair: %w", err)
	}
	return nil
}

// Delete removes a user's token row. Deleting an absent row is not an error.
func (r *TokenRepository) Delete(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete("token").
		Where(squirrel.Eq{"token_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting token row")
		return fmt.Errorf("error deleting token pair: %w", err)
	}
	return nil
}
