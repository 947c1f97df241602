package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	store    storage.ObjectStore
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, store storage.ObjectStore, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		store:    store,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// GetByID retrieves a user account.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.NotFound("User")
	}
	return user, nil
}

// UpdateProfile merges the given fields into the profile.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.UpdateProfile(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.NotFound("User")
	}
	return user, nil
}

// UpdateAvatar uploads the avatar image and records its URL. The uploaded
// object is removed again when the database write fails.
func (s *userService) UpdateAvatar(ctx context.Context, id uuid.UUID, file Upload) (string, error) {
	key := storage.ObjectKey("avatars", file.Filename)
	url, err := s.store.Put(ctx, key, file.ContentType, file.Body)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.SetAvatar(ctx, id, url); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error().Err(delErr).Str("key", key).Msg("failed to clean up orphaned avatar")
		}
		return "", err
	}

	return url, nil
}

// List retrieves a page of users for administration.
func (s *userService) List(ctx context.Context, opts query.Options) ([]model.User, int, error) {
	return s.userRepo.List(ctx, opts)
}

// SetBlocked blocks or unblocks an account.
func (s *userService) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	if err := s.userRepo.SetBlocked(ctx, id, blocked); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id.String()).Bool("blocked", blocked).Msg("user block state changed")
	return nil
}

// Delete removes an account.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("User")
	}
	return nil
}
