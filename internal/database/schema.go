package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// schema holds the DDL applied on startup, in dependency order.
// Statements are idempotent so Migrate is safe to run on every boot.
//
// Reference-by-ID columns carry no foreign-key constraint: deletes are
// hard deletes with no cascade, so dependent rows keep their now-dangling
// reference and the read model resolves it to null (or drops the line).
// The one exception is blog_reactions.blog_id, which cascades because a
// reaction is meaningless without its blog.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                 UUID PRIMARY KEY,
		email              TEXT NOT NULL UNIQUE,
		password_hash      TEXT NOT NULL,
		role               TEXT NOT NULL,
		name               TEXT NOT NULL,
		phone              TEXT NOT NULL DEFAULT '',
		address            TEXT NOT NULL DEFAULT '',
		avatar_url         TEXT NOT NULL DEFAULT '',
		blocked            BOOLEAN NOT NULL DEFAULT FALSE,
		refresh_token      TEXT,
		reset_token_hash   TEXT,
		reset_token_expiry TIMESTAMPTZ,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		slug       TEXT NOT NULL,
		thumbnail  TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS category_items (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		slug        TEXT NOT NULL,
		category_id UUID NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS brands (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id               UUID PRIMARY KEY,
		name             TEXT NOT NULL,
		slug             TEXT NOT NULL UNIQUE,
		description      TEXT NOT NULL,
		price            DOUBLE PRECISION NOT NULL,
		brand_id         UUID NOT NULL,
		category_item_id UUID NOT NULL,
		images           TEXT[] NOT NULL DEFAULT '{}',
		sold             INTEGER NOT NULL DEFAULT 0,
		total_rating     DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS product_details (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		slug       TEXT NOT NULL,
		image      TEXT NOT NULL DEFAULT '',
		color      TEXT NOT NULL DEFAULT '',
		size       TEXT NOT NULL DEFAULT '',
		price      DOUBLE PRECISION NOT NULL,
		inventory  INTEGER NOT NULL DEFAULT 0,
		product_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS variations (
		id          UUID PRIMARY KEY,
		name        TEXT NOT NULL,
		category_id UUID NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS variation_options (
		id           UUID PRIMARY KEY,
		value        TEXT NOT NULL,
		variation_id UUID NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS product_configurations (
		id                   UUID PRIMARY KEY,
		product_detail_id    UUID NOT NULL,
		variation_option_ids UUID[] NOT NULL,
		UNIQUE (product_detail_id, variation_option_ids)
	)`,

	`CREATE TABLE IF NOT EXISTS ratings (
		product_id UUID NOT NULL,
		user_id    UUID NOT NULL,
		star       INTEGER NOT NULL,
		comment    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (product_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS cart_lines (
		id                   UUID PRIMARY KEY,
		user_id              UUID NOT NULL,
		product_detail_id    UUID NOT NULL,
		variation_option_ids UUID[] NOT NULL DEFAULT '{}',
		quantity             INTEGER NOT NULL,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, product_detail_id, variation_option_ids)
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id                 UUID PRIMARY KEY,
		order_by           UUID NOT NULL,
		status             TEXT NOT NULL,
		payment_session_id TEXT,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS order_lines (
		id                  UUID PRIMARY KEY,
		order_id            UUID NOT NULL,
		product_detail_id   UUID NOT NULL,
		quantity            INTEGER NOT NULL,
		variation_option_id UUID
	)`,

	`CREATE TABLE IF NOT EXISTS blog_categories (
		id   UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,

	`CREATE TABLE IF NOT EXISTS blogs (
		id          UUID PRIMARY KEY,
		title       TEXT NOT NULL,
		body        TEXT NOT NULL,
		category_id UUID,
		author_id   UUID NOT NULL,
		views       INTEGER NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS blog_reactions (
		blog_id    UUID NOT NULL REFERENCES blogs(id) ON DELETE CASCADE,
		user_id    UUID NOT NULL,
		kind       TEXT NOT NULL,
		PRIMARY KEY (blog_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS coupons (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		discount   DOUBLE PRECISION NOT NULL,
		expiry     TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_products_brand ON products (brand_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category_item ON products (category_item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_product_details_product ON product_details (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cart_lines_user ON cart_lines (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_by ON orders (order_by)`,
	`CREATE INDEX IF NOT EXISTS idx_order_lines_order ON order_lines (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_blogs_category ON blogs (category_id)`,
}

// Migrate applies the schema to the connected database.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	logger.Info().Int("statements", len(schema)).Msg("database schema applied")
	return nil
}
