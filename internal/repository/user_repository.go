package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/query"
)

const userColumns = `id, email, password_hash, role, name, phone, address, avatar_url, blocked, refresh_token, reset_token_hash, reset_token_expiry, created_at, updated_at`

// userRepository implements UserRepository using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, role, name, blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, $6, $6)
	`
	_, err := r.pool.Exec(ctx, query, u.ID, u.Email, u.PasswordHash, u.Role, u.Name, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Str("email", u.Email).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) scanOne(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.Phone, &u.Address,
		&u.AvatarURL, &u.Blocked, &u.RefreshToken, &u.ResetHash, &u.ResetExpiry,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) GetByRefreshToken(ctx context.Context, token string) (*model.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token))
}

func (r *userRepository) GetByResetHash(ctx context.Context, hash string) (*model.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE reset_token_hash = $1`, hash))
}

func (r *userRepository) List(ctx context.Context, opts query.Options) ([]model.User, int, error) {
	where, args, next := opts.WhereClause(1)

	var total int
	if err := r.pool.QueryRow(ctx, strings.TrimSpace("SELECT COUNT(*) FROM users "+where), args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count users")
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	limit, pageArgs, _ := opts.LimitOffset(next)
	args = append(args, pageArgs...)

	sql := fmt.Sprintf(`SELECT %s FROM users %s %s %s`,
		userColumns, where, opts.OrderByClause("created_at DESC"), limit)

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.Phone, &u.Address,
			&u.AvatarURL, &u.Blocked, &u.RefreshToken, &u.ResetHash, &u.ResetExpiry,
			&u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}

	return users, total, nil
}

// UpdateProfile applies a partial-field merge and returns the updated row,
// or nil when the user does not exist.
func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
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
	}
	if req.Phone != nil {
		add("phone", *req.Phone)
	}
	if req.Address != nil {
		add("address", *req.Address)
	}

	sql := fmt.Sprintf(`UPDATE users SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), userColumns)
	return r.scanOne(r.pool.QueryRow(ctx, sql, args...))
}

func (r *userRepository) SetAvatar(ctx context.Context, id uuid.UUID, url string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET avatar_url = $2, updated_at = now() WHERE id = $1`, id, url)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to set avatar")
		return fmt.Errorf("failed to set avatar: %w", err)
	}
	return nil
}

func (r *userRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET blocked = $2, updated_at = now() WHERE id = $1`, id, blocked)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to set blocked flag")
		return fmt.Errorf("failed to set blocked flag: %w", err)
	}
	return nil
}

func (r *userRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`, id, token)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to set refresh token")
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	return nil
}

func (r *userRepository) SetResetToken(ctx context.Context, id uuid.UUID, hash string, expiry time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET reset_token_hash = $2, reset_token_expiry = $3, updated_at = now() WHERE id = $1`,
		id, hash, expiry)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to set reset token")
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	return nil
}

// UpdatePassword replaces the password hash and clears any pending reset
// token in the same statement.
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, reset_token_hash = NULL, reset_token_expiry = NULL, updated_at = now()
		WHERE id = $1
	`, id, passwordHash)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update password")
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to delete user")
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
