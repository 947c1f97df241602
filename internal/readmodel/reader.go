package readmodel

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront/internal/query"
)

// Shared join specs. Each read-model shape is composed out of these; the
// transitive chains (product -> category item -> category, detail ->
// product -> brand/category item -> category) resolve in a single pass.
var (
	brandSpec = JoinSpec{
		LocalField:   "brand_id",
		ForeignTable: "brands",
		ForeignField: "id",
		ResultField:  "brand",
		Columns:      []Col{{Name: "id"}, {Name: "name"}},
	}

	categorySpec = JoinSpec{
		LocalField:   "category_id",
		ForeignTable: "categories",
		ForeignField: "id",
		ResultField:  "category",
		Columns:      []Col{{Name: "id"}, {Name: "name"}, {Name: "slug"}},
	}

	categoryItemSpec = JoinSpec{
		LocalField:   "category_item_id",
		ForeignTable: "category_items",
		ForeignField: "id",
		ResultField:  "categoryItem",
		Columns:      []Col{{Name: "id"}, {Name: "name"}, {Name: "slug"}},
		Nested:       []JoinSpec{categorySpec},
	}

	productSpec = JoinSpec{
		LocalField:   "product_id",
		ForeignTable: "products",
		ForeignField: "id",
		ResultField:  "product",
		Columns: []Col{
			{Name: "id"}, {Name: "name"}, {Name: "slug"}, {Name: "price"},
			{Name: "total_rating", Key: "totalRating"},
		},
		Nested: []JoinSpec{brandSpec, categoryItemSpec},
	}

	detailSpec = JoinSpec{
		LocalField:   "product_detail_id",
		ForeignTable: "product_details",
		ForeignField: "id",
		ResultField:  "productDetail",
		Columns: []Col{
			{Name: "id"}, {Name: "name"}, {Name: "slug"}, {Name: "image"},
			{Name: "color"}, {Name: "size"}, {Name: "price"}, {Name: "inventory"},
		},
		Nested: []JoinSpec{productSpec},
	}

	orderLinesSpec = JoinSpec{
		Cardinality:  Many,
		LocalField:   "id",
		ForeignTable: "order_lines",
		ForeignField: "order_id",
		ResultField:  "lines",
		OrderBy:      "id",
		Columns:      []Col{{Name: "quantity"}},
		Nested: []JoinSpec{
			detailSpec,
			{
				LocalField:   "variation_option_id",
				ForeignTable: "variation_options",
				ForeignField: "id",
				ResultField:  "variationOption",
				Columns:      []Col{{Name: "id"}, {Name: "value"}},
				Nested: []JoinSpec{{
					LocalField:   "variation_id",
					ForeignTable: "variations",
					ForeignField: "id",
					ResultField:  "variation",
					Columns:      []Col{{Name: "id"}, {Name: "name"}},
				}},
			},
		},
	}
)

// Reader runs the composed read-model queries.
type Reader struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReader creates a read-model reader.
func NewReader(pool *pgxpool.Pool, logger zerolog.Logger) *Reader {
	return &Reader{
		pool:   pool,
		logger: logger.With().Str("component", "readmodel").Logger(),
	}
}

// ProductPage returns one page of resolved products plus the total count of
// the filtered set (pre-pagination).
func (r *Reader) ProductPage(ctx context.Context, opts query.Options) ([]ProductView, int, error) {
	where, args, next := opts.WhereClause(1)

	var total int
	countSQL := strings.TrimSpace("SELECT COUNT(*) FROM products p " + where)
	if err := r.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	selects, joins := Compose("p", []JoinSpec{brandSpec, categoryItemSpec})
	limit, pageArgs, _ := opts.LimitOffset(next)
	args = append(args, pageArgs...)

	sql := fmt.Sprintf(
		`SELECT p.id, p.name, p.slug, p.description, p.price, p.images, p.sold, p.total_rating, p.created_at, p.updated_at, %s
		FROM products p %s %s %s %s`,
		strings.Join(selects, ", "), strings.Join(joins, " "),
		where, opts.OrderByClause("p.created_at DESC"), limit,
	)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query product page")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []ProductView
	for rows.Next() {
		var v ProductView
		err := rows.Scan(
			&v.ID, &v.Name, &v.Slug, &v.Description, &v.Price, &v.Images,
			&v.Sold, &v.TotalRating, &v.CreatedAt, &v.UpdatedAt,
			&v.Brand, &v.CategoryItem,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product view")
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// ProductByID returns one resolved product, or nil when it does not exist.
func (r *Reader) ProductByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	selects, joins := Compose("p", []JoinSpec{brandSpec, categoryItemSpec})

	sql := fmt.Sprintf(
		`SELECT p.id, p.name, p.slug, p.description, p.price, p.images, p.sold, p.total_rating, p.created_at, p.updated_at, %s
		FROM products p %s WHERE p.id = $1`,
		strings.Join(selects, ", "), strings.Join(joins, " "),
	)

	var v ProductView
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&v.ID, &v.Name, &v.Slug, &v.Description, &v.Price, &v.Images,
		&v.Sold, &v.TotalRating, &v.CreatedAt, &v.UpdatedAt,
		&v.Brand, &v.CategoryItem,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product view")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &v, nil
}

// DetailByID returns one resolved product detail (detail -> product ->
// brand/category item -> category), or nil when it does not exist.
func (r *Reader) DetailByID(ctx context.Context, id uuid.UUID) (*DetailView, error) {
	selects, joins := Compose("d", []JoinSpec{productSpec})

	sql := fmt.Sprintf(
		`SELECT d.id, d.name, d.slug, d.image, d.color, d.size, d.price, d.inventory, d.created_at, d.updated_at, %s
		FROM product_details d %s WHERE d.id = $1`,
		strings.Join(selects, ", "), strings.Join(joins, " "),
	)

	var v DetailView
	err := r.pool.QueryRow(ctx, sql, id).Scan(
		&v.ID, &v.Name, &v.Slug, &v.Image, &v.Color, &v.Size, &v.Price,
		&v.Inventory, &v.CreatedAt, &v.UpdatedAt, &v.Product,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("detail_id", id.String()).Msg("failed to query detail view")
		return nil, fmt.Errorf("failed to query product detail: %w", err)
	}
	return &v, nil
}

// CartForUser returns the user's cart lines with detail, product and
// variation options resolved, in insertion order. A line whose detail is
// gone, whose quantity is not positive or whose option references no longer
// all resolve is dropped, not surfaced as an error.
func (r *Reader) CartForUser(ctx context.Context, userID uuid.UUID) ([]CartLineView, error) {
	selects, joins := Compose("l", []JoinSpec{detailSpec})

	sql := fmt.Sprintf(
		`SELECT l.id, l.quantity, l.variation_option_ids, %s, %s AS "variationOptions"
		FROM cart_lines l %s
		WHERE l.user_id = $1
		ORDER BY l.created_at, l.id`,
		strings.Join(selects, ", "), optionListExpr("l", "variation_option_ids"),
		strings.Join(joins, " "),
	)

	rows, err := r.pool.Query(ctx, sql, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	lines := []CartLineView{}
	for rows.Next() {
		var (
			line   CartLineView
			optIDs []uuid.UUID
		)
		if err := rows.Scan(&line.ID, &line.Quantity, &optIDs, &line.ProductDetail, &line.Options); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart line")
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		if line.ProductDetail == nil || line.Quantity <= 0 || len(line.Options) != len(optIDs) {
			r.logger.Debug().
				Str("line_id", line.ID.String()).
				Msg("dropping partially resolvable cart line")
			continue
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// OrdersForUser returns one page of the user's orders with line details
// resolved, plus the total count over the same filter.
func (r *Reader) OrdersForUser(ctx context.Context, userID uuid.UUID, opts query.Options) ([]OrderView, int, error) {
	where, args, next := opts.WhereClause(2)
	scope := "WHERE o.order_by = $1"
	if where != "" {
		scope += " AND " + strings.TrimPrefix(where, "WHERE ")
	}
	args = append([]any{userID}, args...)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders o "+scope, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	selects, _ := Compose("o", []JoinSpec{orderLinesSpec})
	limit, pageArgs, _ := opts.LimitOffset(next)
	args = append(args, pageArgs...)

	sql := fmt.Sprintf(
		`SELECT o.id, o.order_by, o.status, o.created_at, o.updated_at, %s
		FROM orders o %s %s %s`,
		strings.Join(selects, ", "), scope,
		opts.OrderByClause("o.created_at DESC"), limit,
	)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query orders")
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []OrderView
	for rows.Next() {
		var v OrderView
		if err := rows.Scan(&v.ID, &v.OrderBy, &v.Status, &v.CreatedAt, &v.UpdatedAt, &v.Lines); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order view")
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, total, nil
}

// OrderByID returns one resolved order, or nil when it does not exist.
func (r *Reader) OrderByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	selects, _ := Compose("o", []JoinSpec{orderLinesSpec})

	sql := fmt.Sprintf(
		`SELECT o.id, o.order_by, o.status, o.created_at, o.updated_at, %s
		FROM orders o WHERE o.id = $1`,
		strings.Join(selects, ", "),
	)

	var v OrderView
	err := r.pool.QueryRow(ctx, sql, id).Scan(&v.ID, &v.OrderBy, &v.Status, &v.CreatedAt, &v.UpdatedAt, &v.Lines)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order view")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return &v, nil
}
