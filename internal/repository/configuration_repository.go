package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront/internal/model"
)

// configurationRepository implements ConfigurationRepository using PostgreSQL.
type configurationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewConfigurationRepository creates a new PostgreSQL-backed configuration
// repository.
func NewConfigurationRepository(pool *pgxpool.Pool, logger zerolog.Logger) ConfigurationRepository {
	return &configurationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "configuration").Logger(),
	}
}

// Create stores a configuration. The option set is canonicalized (sorted)
// before insert so the unique index on (detail, option set) rejects a
// duplicate combination regardless of the order the caller sent it in.
func (r *configurationRepository) Create(ctx context.Context, c *model.ProductConfiguration) error {
	canonical := canonicalOptionSet(c.OptionIDs)

	query := `
		INSERT INTO product_configurations (id, product_detail_id, variation_option_ids)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query, c.ID, c.ProductDetailID, canonical)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateConfig
		}
		r.logger.Error().
			Err(err).
			Str("product_detail_id", c.ProductDetailID.String()).
			Msg("failed to create configuration")
		return fmt.Errorf("failed to create configuration: %w", err)
	}
	return nil
}

func (r *configurationRepository) ListForDetail(ctx context.Context, detailID uuid.UUID) ([]model.ProductConfiguration, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_detail_id, variation_option_ids
		FROM product_configurations
		WHERE product_detail_id = $1
		ORDER BY id
	`, detailID)
	if err != nil {
		r.logger.Error().Err(err).Str("detail_id", detailID.String()).Msg("failed to query configurations")
		return nil, fmt.Errorf("failed to query configurations: %w", err)
	}
	defer rows.Close()

	var configs []model.ProductConfiguration
	for rows.Next() {
		var c model.ProductConfiguration
		if err := rows.Scan(&c.ID, &c.ProductDetailID, &c.OptionIDs); err != nil {
			return nil, fmt.Errorf("failed to scan configuration: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating configurations: %w", err)
	}
	return configs, nil
}

func (r *configurationRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM product_configurations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("configuration_id", id.String()).Msg("failed to delete configuration")
		return false, fmt.Errorf("failed to delete configuration: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// canonicalOptionSet returns a sorted copy of the option IDs so that set
// equality reduces to array equality.
func canonicalOptionSet(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
