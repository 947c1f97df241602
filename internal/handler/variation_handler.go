package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/service"
)

// VariationHandler handles variation axis and option requests.
type VariationHandler struct {
	service service.VariationService
	logger  zerolog.Logger
}

// NewVariationHandler creates a new variation handler.
func NewVariationHandler(service service.VariationService, logger zerolog.Logger) *VariationHandler {
	return &VariationHandler{
		service: service,
		logger:  logger.With().Str("handler", "variation").Logger(),
	}
}

// optionalScopeID parses an optional query-parameter UUID scope.
func optionalScopeID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, model.ErrInvalidID
	}
	return &id, nil
}

// CreateVariation handles POST /api/variation.
func (h *VariationHandler) CreateVariation(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVariationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	variation, err := h.service.CreateVariation(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Variation created", Data: variation, HasData: true}))
}

// ListVariations handles GET /api/variation?categoryId=.
func (h *VariationHandler) ListVariations(w http.ResponseWriter, r *http.Request) {
	categoryID, err := optionalScopeID(r, "categoryId")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	variations, err := h.service.ListVariations(r.Context(), categoryID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	count := len(variations)
	writeJSON(w, http.StatusOK, Format(Result{Count: &count, Data: variations}))
}

// DeleteVariation handles DELETE /api/variation/{id}.
func (h *VariationHandler) DeleteVariation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteVariation(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Variation deleted"}))
}

// CreateOption handles POST /api/variation-option.
func (h *VariationHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVariationOptionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	option, err := h.service.CreateOption(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Variation option created", Data: option, HasData: true}))
}

// ListOptions handles GET /api/variation-option?variationId=.
func (h *VariationHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	variationID, err := optionalScopeID(r, "variationId")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	options, err := h.service.ListOptions(r.Context(), variationID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	count := len(options)
	writeJSON(w, http.StatusOK, Format(Result{Count: &count, Data: options}))
}

// DeleteOption handles DELETE /api/variation-option/{id}.
func (h *VariationHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteOption(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Variation option deleted"}))
}
