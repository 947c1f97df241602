package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// variationService implements VariationService.
type variationService struct {
	varRepo     repository.VariationRepository
	catalogRepo repository.CatalogRepository
	logger      zerolog.Logger
}

// NewVariationService creates a new variation service.
func NewVariationService(varRepo repository.VariationRepository, catalogRepo repository.CatalogRepository, logger zerolog.Logger) VariationService {
	return &variationService{
		varRepo:     varRepo,
		catalogRepo: catalogRepo,
		logger:      logger.With().Str("service", "variation").Logger(),
	}
}

// CreateVariation creates an attribute axis under a category.
func (s *variationService) CreateVariation(ctx context.Context, req *model.CreateVariationRequest) (*model.Variation, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	category, err := s.catalogRepo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.NotFound("Category")
	}

	variation := &model.Variation{
		ID:         uuid.New(),
		Name:       req.Name,
		CategoryID: &categoryID,
	}

	if err := s.varRepo.CreateVariation(ctx, variation); err != nil {
		return nil, err
	}
	return variation, nil
}

// ListVariations lists variations, optionally scoped to one category.
func (s *variationService) ListVariations(ctx context.Context, categoryID *uuid.UUID) ([]model.Variation, error) {
	return s.varRepo.ListVariations(ctx, categoryID)
}

// DeleteVariation removes a variation axis.
func (s *variationService) DeleteVariation(ctx context.Context, id uuid.UUID) error {
	found, err := s.varRepo.DeleteVariation(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Variation")
	}
	return nil
}

// CreateOption creates a concrete value on a variation axis.
func (s *variationService) CreateOption(ctx context.Context, req *model.CreateVariationOptionRequest) (*model.VariationOption, error) {
	variationID, err := uuid.Parse(req.VariationID)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	exists, err := s.varRepo.VariationExists(ctx, variationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.NotFound("Variation")
	}

	option := &model.VariationOption{
		ID:          uuid.New(),
		Value:       req.Value,
		VariationID: &variationID,
	}

	if err := s.varRepo.CreateOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

// ListOptions lists options, optionally scoped to one variation.
func (s *variationService) ListOptions(ctx context.Context, variationID *uuid.UUID) ([]model.VariationOption, error) {
	return s.varRepo.ListOptions(ctx, variationID)
}

// DeleteOption removes a variation option. Configurations and cart lines
// referencing it keep the ID; reads resolve it to null or drop the line.
func (s *variationService) DeleteOption(ctx context.Context, id uuid.UUID) error {
	found, err := s.varRepo.DeleteOption(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Variation option")
	}
	return nil
}
