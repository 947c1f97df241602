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

// blogRepository implements BlogRepository using PostgreSQL.
type blogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBlogRepository creates a new PostgreSQL-backed blog repository.
func NewBlogRepository(pool *pgxpool.Pool, logger zerolog.Logger) BlogRepository {
	return &blogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "blog").Logger(),
	}
}

const blogColumns = `
	b.id, b.title, b.body, b.category_id, b.author_id, b.views, b.created_at, b.updated_at,
	(SELECT COUNT(*) FROM blog_reactions br WHERE br.blog_id = b.id AND br.kind = 'like'),
	(SELECT COUNT(*) FROM blog_reactions br WHERE br.blog_id = b.id AND br.kind = 'dislike')
`

func (r *blogRepository) Create(ctx context.Context, b *model.Blog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO blogs (id, title, body, category_id, author_id, views, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $6)
	`, b.ID, b.Title, b.Body, b.CategoryID, b.AuthorID, b.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("title", b.Title).Msg("failed to create blog")
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

func (r *blogRepository) scanOne(row pgx.Row) (*model.Blog, error) {
	var b model.Blog
	err := row.Scan(
		&b.ID, &b.Title, &b.Body, &b.CategoryID, &b.AuthorID, &b.Views,
		&b.CreatedAt, &b.UpdatedAt, &b.Likes, &b.Dislikes,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan blog: %w", err)
	}
	return &b, nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs b WHERE b.id = $1`, id))
}

func (r *blogRepository) List(ctx context.Context, opts query.Options) ([]model.Blog, int, error) {
	where, args, next := opts.WhereClause(1)

	var total int
	if err := r.pool.QueryRow(ctx, strings.TrimSpace("SELECT COUNT(*) FROM blogs b "+where), args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count blogs")
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	limit, pageArgs, _ := opts.LimitOffset(next)
	args = append(args, pageArgs...)

	sql := fmt.Sprintf(`SELECT %s FROM blogs b %s %s %s`,
		blogColumns, where, opts.OrderByClause("b.created_at DESC"), limit)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query blogs")
		return nil, 0, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer rows.Close()

	var blogs []model.Blog
	for rows.Next() {
		var b model.Blog
		err := rows.Scan(
			&b.ID, &b.Title, &b.Body, &b.CategoryID, &b.AuthorID, &b.Views,
			&b.CreatedAt, &b.UpdatedAt, &b.Likes, &b.Dislikes,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating blogs: %w", err)
	}
	return blogs, total, nil
}

func (r *blogRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBlogRequest) (*model.Blog, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}
	next := 2

	add := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, next))
		args = append(args, val)
		next++
	}
	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Body != nil {
		add("body", *req.Body)
	}
	if req.CategoryID != nil {
		add("category_id", *req.CategoryID)
	}

	sql := fmt.Sprintf(`UPDATE blogs SET %s WHERE id = $1 RETURNING id`, strings.Join(sets, ", "))
	var updated uuid.UUID
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&updated); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("blog_id", id.String()).Msg("failed to update blog")
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("blog_id", id.String()).Msg("failed to delete blog")
		return false, fmt.Errorf("failed to delete blog: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *blogRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE blogs SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("blog_id", id.String()).Msg("failed to increment views")
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// React applies the reaction toggle inside one transaction. The row for
// (blog, user) is locked so two concurrent toggles serialize instead of
// double-applying.
func (r *blogRepository) React(ctx context.Context, blogID, userID uuid.UUID, kind string) (int, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin reaction transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing string
	err = tx.QueryRow(ctx, `
		SELECT kind FROM blog_reactions WHERE blog_id = $1 AND user_id = $2 FOR UPDATE
	`, blogID, userID).Scan(&existing)

	switch {
	case err == pgx.ErrNoRows:
		_, err = tx.Exec(ctx, `
			INSERT INTO blog_reactions (blog_id, user_id, kind) VALUES ($1, $2, $3)
		`, blogID, userID, kind)
	case err != nil:
		r.logger.Error().Err(err).Str("blog_id", blogID.String()).Msg("failed to read reaction")
		return 0, 0, fmt.Errorf("failed to read reaction: %w", err)
	case existing == kind:
		// idempotent toggle: same reaction twice removes it
		_, err = tx.Exec(ctx, `
			DELETE FROM blog_reactions WHERE blog_id = $1 AND user_id = $2
		`, blogID, userID)
	default:
		// mutually exclusive: the opposite reaction replaces it
		_, err = tx.Exec(ctx, `
			UPDATE blog_reactions SET kind = $3 WHERE blog_id = $1 AND user_id = $2
		`, blogID, userID, kind)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("blog_id", blogID.String()).Msg("failed to apply reaction")
		return 0, 0, fmt.Errorf("failed to apply reaction: %w", err)
	}

	var likes, dislikes int
	err = tx.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE kind = 'like'),
			COUNT(*) FILTER (WHERE kind = 'dislike')
		FROM blog_reactions WHERE blog_id = $1
	`, blogID).Scan(&likes, &dislikes)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count reactions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to commit reaction: %w", err)
	}
	return likes, dislikes, nil
}

func (r *blogRepository) CreateCategory(ctx context.Context, c *model.BlogCategory) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO blog_categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Conflict("Blog category already exists")
		}
		r.logger.Error().Err(err).Str("name", c.Name).Msg("failed to create blog category")
		return fmt.Errorf("failed to create blog category: %w", err)
	}
	return nil
}

func (r *blogRepository) ListCategories(ctx context.Context) ([]model.BlogCategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM blog_categories ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query blog categories")
		return nil, fmt.Errorf("failed to query blog categories: %w", err)
	}
	defer rows.Close()

	var categories []model.BlogCategory
	for rows.Next() {
		var c model.BlogCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan blog category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog categories: %w", err)
	}
	return categories, nil
}

func (r *blogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete blog category")
		return false, fmt.Errorf("failed to delete blog category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
