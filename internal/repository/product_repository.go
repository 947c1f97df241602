package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront/internal/model"
)

// productRepository implements ProductRepository using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (id, name, slug, description, price, brand_id, category_item_id, images, sold, total_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, $9, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.BrandID, p.CategoryItemID, p.Images, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Conflict("Product slug already exists")
		}
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT id, name, slug, description, price, brand_id, category_item_id, images, sold, total_rating, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.BrandID,
		&p.CategoryItemID, &p.Images, &p.Sold, &p.TotalRating, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &p, nil
}

// Update applies a partial-field merge and returns the updated row, or nil
// when the product does not exist.
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}
	next := 2

	add := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, next))
		args = append(args, val)
		next++
	}
	if req.Name != nil {
		add("name", *req.Name)
		add("slug", model.Slugify(*req.Name))
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Price != nil {
		add("price", *req.Price)
	}
	if req.BrandID != nil {
		add("brand_id", *req.BrandID)
	}
	if req.CategoryItemID != nil {
		add("category_item_id", *req.CategoryItemID)
	}

	query := fmt.Sprintf(`
		UPDATE products SET %s WHERE id = $1
		RETURNING id, name, slug, description, price, brand_id, category_item_id, images, sold, total_rating, created_at, updated_at
	`, strings.Join(sets, ", "))

	var p model.Product
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.BrandID,
		&p.CategoryItemID, &p.Images, &p.Sold, &p.TotalRating, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, model.Conflict("Product slug already exists")
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &p, nil
}

func (r *productRepository) SetImages(ctx context.Context, id uuid.UUID, images []string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE products SET images = $2, updated_at = now() WHERE id = $1`, id, images)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to set product images")
		return fmt.Errorf("failed to set product images: %w", err)
	}
	return nil
}

// Delete hard-deletes the product. Dependent rows (details referencing it)
// are left in place; reads resolve the dangling reference to null.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *productRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// UpsertRating writes the user's rating and recomputes the product's total
// rating inside one transaction, closing the read-modify-write race a
// two-round-trip version would have.
func (r *productRepository) UpsertRating(ctx context.Context, rating *model.Rating) (float64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin rating transaction")
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	upsert := `
		INSERT INTO ratings (product_id, user_id, star, comment, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, user_id)
		DO UPDATE SET star = EXCLUDED.star, comment = EXCLUDED.comment
	`
	if _, err := tx.Exec(ctx, upsert, rating.ProductID, rating.UserID, rating.Star, rating.Comment); err != nil {
		r.logger.Error().Err(err).Str("product_id", rating.ProductID.String()).Msg("failed to upsert rating")
		return 0, fmt.Errorf("failed to upsert rating: %w", err)
	}

	recompute := `
		UPDATE products
		SET total_rating = COALESCE((SELECT ROUND(AVG(star)::numeric, 1) FROM ratings WHERE product_id = $1), 0),
		    updated_at = now()
		WHERE id = $1
		RETURNING total_rating
	`
	var total float64
	if err := tx.QueryRow(ctx, recompute, rating.ProductID).Scan(&total); err != nil {
		r.logger.Error().Err(err).Str("product_id", rating.ProductID.String()).Msg("failed to recompute total rating")
		return 0, fmt.Errorf("failed to recompute total rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit rating transaction: %w", err)
	}

	r.logger.Debug().
		Str("product_id", rating.ProductID.String()).
		Int("star", rating.Star).
		Float64("total_rating", total).
		Msg("rating stored")

	return total, nil
}

