package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/config"
	"storefront/internal/mailer"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// authService implements AuthService with JWT token pairs and bcrypt
// password hashes.
type authService struct {
	userRepo repository.UserRepository
	mailer   mailer.Mailer
	cfg      config.AuthConfig
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, m mailer.Mailer, cfg config.AuthConfig, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		mailer:   m,
		cfg:      cfg,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Register creates a new customer account.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleCustomer,
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

// Login verifies credentials and issues a token pair. The refresh token is
// persisted on the user row so it can be rotated and revoked.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if user == nil {
		s.logger.Debug().Str("email", req.Email).Msg("login with unknown email")
		return nil, TokenPair{}, model.ErrEmailIncorrect
	}
	if user.Blocked {
		return nil, TokenPair{}, model.ErrUserBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Debug().Str("user_id", user.ID.String()).Msg("login with wrong password")
		return nil, TokenPair{}, model.ErrPasswordIncorrect
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return user, pair, nil
}

// Refresh rotates the token pair. The presented token must both verify as a
// JWT and match the token stored on a user row.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	user, err := s.userRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	if user == nil {
		return TokenPair{}, model.ErrTokenInvalid
	}

	if _, err := s.parseToken(refreshToken, s.cfg.RefreshSecret); err != nil {
		// stored token no longer verifies, revoke it
		if err := s.userRepo.SetRefreshToken(ctx, user.ID, nil); err != nil {
			s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to revoke stale refresh token")
		}
		return TokenPair{}, model.ErrTokenInvalid
	}
	if user.Blocked {
		return TokenPair{}, model.ErrUserBlocked
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the stored refresh token. An unknown token is a no-op so
// logout is idempotent.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	user, err := s.userRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, nil); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged out")
	return nil
}

// ForgotPassword issues a reset token. The raw token goes to the user by
// mail; only its SHA-256 hash is stored.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return model.ErrEmailIncorrect
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	expiry := time.Now().UTC().Add(s.cfg.ResetTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, hashResetToken(token), expiry); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(user.Email, token); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("password reset token issued")
	return nil
}

// ResetPassword consumes a reset token and sets the new password. The token
// is looked up by hash; an expired or unknown token is rejected.
func (s *authService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	user, err := s.userRepo.GetByResetHash(ctx, hashResetToken(req.Token))
	if err != nil {
		return err
	}
	if user == nil {
		return model.ErrResetTokenExpired
	}
	if user.ResetExpiry == nil || time.Now().UTC().After(*user.ResetExpiry) {
		return model.ErrResetTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("password reset")
	return nil
}

// VerifyAccess parses and verifies an access token.
func (s *authService) VerifyAccess(token string) (*Claims, error) {
	claims, err := s.parseToken(token, s.cfg.AccessSecret)
	if err != nil {
		return nil, model.ErrTokenInvalid
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, model.ErrTokenInvalid
	}
	return &Claims{UserID: userID, Role: claims.Role}, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (TokenPair, error) {
	access, err := s.signToken(user, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.signToken(user, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *authService) signToken(user *model.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := accessClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) parseToken(token, secret string) (*accessClaims, error) {
	var claims accessClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return &claims, nil
}

// hashResetToken hashes the raw reset token for storage and lookup.
func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
