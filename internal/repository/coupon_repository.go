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

// couponRepository implements CouponRepository using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

func (r *couponRepository) Create(ctx context.Context, c *model.Coupon) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO coupons (id, name, discount, expiry, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Name, c.Discount, c.Expiry, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Conflict("Coupon name already exists")
		}
		r.logger.Error().Err(err).Str("name", c.Name).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	var c model.Coupon
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, discount, expiry, created_at FROM coupons WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Discount, &c.Expiry, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return &c, nil
}

func (r *couponRepository) List(ctx context.Context, opts query.Options) ([]model.Coupon, int, error) {
	where, args, next := opts.WhereClause(1)

	var total int
	if err := r.pool.QueryRow(ctx, strings.TrimSpace("SELECT COUNT(*) FROM coupons c "+where), args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count coupons")
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	limit, pageArgs, _ := opts.LimitOffset(next)
	args = append(args, pageArgs...)

	sql := fmt.Sprintf(`
		SELECT c.id, c.name, c.discount, c.expiry, c.created_at
		FROM coupons c %s %s %s
	`, where, opts.OrderByClause("c.created_at DESC"), limit)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, 0, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := rows.Scan(&c.ID, &c.Name, &c.Discount, &c.Expiry, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating coupons: %w", err)
	}
	return coupons, total, nil
}

func (r *couponRepository) Update(ctx context.Context, c *model.Coupon) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE coupons SET name = $2, discount = $3, expiry = $4 WHERE id = $1
	`, c.ID, c.Name, c.Discount, c.Expiry)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Conflict("Coupon name already exists")
		}
		r.logger.Error().Err(err).Str("coupon_id", c.ID.String()).Msg("failed to update coupon")
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NotFound("Coupon not found")
	}
	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to delete coupon")
		return false, fmt.Errorf("failed to delete coupon: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
