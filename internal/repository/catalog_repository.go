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
	"storefront/internal/query"
)

// catalogRepository implements CatalogRepository using PostgreSQL.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

// --- categories ---

func (r *catalogRepository) CreateCategory(ctx context.Context, c *model.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, thumbnail, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`
	_, err := r.pool.Exec(ctx, query, c.ID, c.Name, c.Slug, c.Thumbnail, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Conflict("Category already exists")
		}
		r.logger.Error().Err(err).Str("name", c.Name).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *catalogRepository) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, thumbnail, created_at, updated_at FROM categories WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Slug, &c.Thumbnail, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &c, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context, opts query.Options) ([]model.Category, int, error) {
	where, args, next := opts.WhereClause(1)

	var total int
	if err := r.pool.QueryRow(ctx, strings.TrimSpace("SELECT COUNT(*) FROM categories "+where), args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count categories")
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	limit, pageArgs, _ := opts.LimitOffset(next)
	args = append(args, pageArgs...)

	sql := fmt.Sprintf(`SELECT id, name, slug, thumbnail, created_at, updated_at FROM categories %s %s %s`,
		where, opts.OrderByClause("name"), limit)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, 0, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Thumbnail, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, total, nil
}

func (r *catalogRepository) UpdateCategory(ctx context.Context, c *model.Category) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE categories SET name = $2, slug = $3, thumbnail = $4, updated_at = now() WHERE id = $1
	`, c.ID, c.Name, c.Slug, c.Thumbnail)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Conflict("Category already exists")
		}
		r.logger.Error().Err(err).Str("category_id", c.ID.String()).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeleteCategory hard-deletes with no cascade; category items keep their
// now-dangling reference and joins resolve it to null.
func (r *catalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// --- category items ---

func (r *catalogRepository) CreateCategoryItem(ctx context.Context, item *model.CategoryItem) error {
	query := `
		INSERT INTO category_items (id, name, slug, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`
	_, err := r.pool.Exec(ctx, query, item.ID, item.Name, item.Slug, item.CategoryID, item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Conflict("Category item name already exists")
		}
		r.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create category item")
		return fmt.Errorf("failed to create category item: %w", err)
	}
	return nil
}

func (r *catalogRepository) GetCategoryItem(ctx context.Context, id uuid.UUID) (*model.CategoryItem, error) {
	var item model.CategoryItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, category_id, created_at, updated_at FROM category_items WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Slug, &item.CategoryID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to query category item")
		return nil, fmt.Errorf("failed to query category item: %w", err)
	}
	return &item, nil
}

func (r *catalogRepository) ListCategoryItems(ctx context.Context) ([]model.CategoryItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, category_id, created_at, updated_at FROM category_items ORDER BY name
	`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query category items")
		return nil, fmt.Errorf("failed to query category items: %w", err)
	}
	defer rows.Close()

	var items []model.CategoryItem
	for rows.Next() {
		var item model.CategoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Slug, &item.CategoryID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category items: %w", err)
	}
	return items, nil
}

func (r *catalogRepository) DeleteCategoryItem(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM category_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to delete category item")
		return false, fmt.Errorf("failed to delete category item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *catalogRepository) CategoryItemExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM category_items WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category item existence: %w", err)
	}
	return exists, nil
}

// --- brands ---

func (r *catalogRepository) CreateBrand(ctx context.Context, b *model.Brand) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO brands (id, name, created_at) VALUES ($1, $2, $3)
	`, b.ID, b.Name, b.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", b.Name).Msg("failed to create brand")
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

func (r *catalogRepository) ListBrands(ctx context.Context) ([]model.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM brands ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query brands")
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	var brands []model.Brand
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}
	return brands, nil
}

func (r *catalogRepository) DeleteBrand(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("brand_id", id.String()).Msg("failed to delete brand")
		return false, fmt.Errorf("failed to delete brand: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *catalogRepository) BrandExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM brands WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check brand existence: %w", err)
	}
	return exists, nil
}
