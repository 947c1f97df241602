package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront/internal/model"
)

// variationRepository implements VariationRepository using PostgreSQL.
type variationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVariationRepository creates a new PostgreSQL-backed variation repository.
func NewVariationRepository(pool *pgxpool.Pool, logger zerolog.Logger) VariationRepository {
	return &variationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "variation").Logger(),
	}
}

func (r *variationRepository) CreateVariation(ctx context.Context, v *model.Variation) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO variations (id, name, category_id) VALUES ($1, $2, $3)
	`, v.ID, v.Name, v.CategoryID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", v.Name).Msg("failed to create variation")
		return fmt.Errorf("failed to create variation: %w", err)
	}
	return nil
}

func (r *variationRepository) ListVariations(ctx context.Context, categoryID *uuid.UUID) ([]model.Variation, error) {
	sql := `SELECT id, name, category_id FROM variations`
	args := []any{}
	if categoryID != nil {
		sql += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}
	sql += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query variations")
		return nil, fmt.Errorf("failed to query variations: %w", err)
	}
	defer rows.Close()

	var variations []model.Variation
	for rows.Next() {
		var v model.Variation
		if err := rows.Scan(&v.ID, &v.Name, &v.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan variation: %w", err)
		}
		variations = append(variations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variations: %w", err)
	}
	return variations, nil
}

func (r *variationRepository) DeleteVariation(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM variations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("variation_id", id.String()).Msg("failed to delete variation")
		return false, fmt.Errorf("failed to delete variation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *variationRepository) CreateOption(ctx context.Context, o *model.VariationOption) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO variation_options (id, value, variation_id) VALUES ($1, $2, $3)
	`, o.ID, o.Value, o.VariationID)
	if err != nil {
		r.logger.Error().Err(err).Str("value", o.Value).Msg("failed to create variation option")
		return fmt.Errorf("failed to create variation option: %w", err)
	}
	return nil
}

func (r *variationRepository) ListOptions(ctx context.Context, variationID *uuid.UUID) ([]model.VariationOption, error) {
	sql := `SELECT id, value, variation_id FROM variation_options`
	args := []any{}
	if variationID != nil {
		sql += ` WHERE variation_id = $1`
		args = append(args, *variationID)
	}
	sql += ` ORDER BY value`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query variation options")
		return nil, fmt.Errorf("failed to query variation options: %w", err)
	}
	defer rows.Close()

	var options []model.VariationOption
	for rows.Next() {
		var o model.VariationOption
		if err := rows.Scan(&o.ID, &o.Value, &o.VariationID); err != nil {
			return nil, fmt.Errorf("failed to scan variation option: %w", err)
		}
		options = append(options, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variation options: %w", err)
	}
	return options, nil
}

func (r *variationRepository) DeleteOption(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM variation_options WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("option_id", id.String()).Msg("failed to delete variation option")
		return false, fmt.Errorf("failed to delete variation option: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// VariationExists reports whether a variation axis exists.
func (r *variationRepository) VariationExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM variations WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check variation: %w", err)
	}
	return exists, nil
}

// OptionsExist reports whether every given option ID exists.
func (r *variationRepository) OptionsExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT id) FROM variation_options WHERE id = ANY($1)
	`, ids).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to check variation options")
		return false, fmt.Errorf("failed to check variation options: %w", err)
	}

	distinct := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	return count == len(distinct), nil
}
