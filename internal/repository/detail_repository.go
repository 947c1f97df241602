package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront/internal/model"
)

const detailColumns = `id, name, slug, image, color, size, price, inventory, product_id, created_at, updated_at`

// detailRepository implements ProductDetailRepository using PostgreSQL.
type detailRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductDetailRepository creates a new PostgreSQL-backed detail repository.
func NewProductDetailRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductDetailRepository {
	return &detailRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product_detail").Logger(),
	}
}

func (r *detailRepository) Create(ctx context.Context, d *model.ProductDetail) error {
	query := `
		INSERT INTO product_details (id, name, slug, image, color, size, price, inventory, product_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		d.ID, d.Name, d.Slug, d.Image, d.Color, d.Size, d.Price, d.Inventory, d.ProductID, d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Conflict("Product detail name already exists")
		}
		r.logger.Error().Err(err).Str("detail_id", d.ID.String()).Msg("failed to create product detail")
		return fmt.Errorf("failed to create product detail: %w", err)
	}
	return nil
}

func (r *detailRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error) {
	var d model.ProductDetail
	err := r.pool.QueryRow(ctx,
		`SELECT `+detailColumns+` FROM product_details WHERE id = $1`, id).Scan(
		&d.ID, &d.Name, &d.Slug, &d.Image, &d.Color, &d.Size, &d.Price,
		&d.Inventory, &d.ProductID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("detail_id", id.String()).Msg("failed to query product detail")
		return nil, fmt.Errorf("failed to query product detail: %w", err)
	}
	return &d, nil
}

func (r *detailRepository) Update(ctx context.Context, d *model.ProductDetail) error {
	query := `
		UPDATE product_details
		SET name = $2, slug = $3, image = $4, color = $5, size = $6, price = $7, inventory = $8, updated_at = now()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		d.ID, d.Name, d.Slug, d.Image, d.Color, d.Size, d.Price, d.Inventory)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Conflict("Product detail name already exists")
		}
		r.logger.Error().Err(err).Str("detail_id", d.ID.String()).Msg("failed to update product detail")
		return fmt.Errorf("failed to update product detail: %w", err)
	}
	return nil
}

func (r *detailRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM product_details WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("detail_id", id.String()).Msg("failed to delete product detail")
		return false, fmt.Errorf("failed to delete product detail: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *detailRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM product_details WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product detail existence: %w", err)
	}
	return exists, nil
}
