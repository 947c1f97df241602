package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront/internal/model"
)

// cartRepository implements CartRepository using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Upsert adds a cart line. The unique index on (user, detail, ordered
// option list) makes the match-then-increment a single atomic statement:
// concurrent adds of the same combination sum instead of duplicating.
func (r *cartRepository) Upsert(ctx context.Context, line *model.CartLine) error {
	query := `
		INSERT INTO cart_lines (id, user_id, product_detail_id, variation_option_ids, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id, product_detail_id, variation_option_ids)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
	`
	optIDs := line.OptionIDs
	if optIDs == nil {
		optIDs = []uuid.UUID{}
	}
	_, err := r.pool.Exec(ctx, query, line.ID, line.UserID, line.ProductDetailID, optIDs, line.Quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", line.UserID.String()).
			Str("product_detail_id", line.ProductDetailID.String()).
			Msg("failed to upsert cart line")
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID, lineID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_lines WHERE id = $1 AND user_id = $2`, lineID, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("line_id", lineID.String()).Msg("failed to delete cart line")
		return false, fmt.Errorf("failed to delete cart line: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
