package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// UserHandler handles profile, cart and account administration requests.
type UserHandler struct {
	users  service.UserService
	cart   service.CartService
	logger zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService, cart service.CartService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		cart:   cart,
		logger: logger.With().Str("handler", "user").Logger(),
	}
}

// Current handles GET /api/user/current.
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	user, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Data: user}))
}

// UpdateCurrent handles PUT /api/user/current.
func (h *UserHandler) UpdateCurrent(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	var req model.UpdateProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), claims.UserID, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Profile updated", Data: user, HasData: true}))
}

// UpdateAvatar handles PUT /api/user/current/avatar with a multipart body.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Avatar file is required")
		return
	}
	defer file.Close()

	url, err := h.users.UpdateAvatar(r.Context(), claims.UserID, service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Format(Result{Msg: "Avatar updated", Data: url, HasData: true}))
}

// Cart handles GET /api/user/cart.
func (h *UserHandler) Cart(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	lines, err := h.cart.Get(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	count := len(lines)
	writeJSON(w, http.StatusOK, Format(Result{Count: &count, Data: lines}))
}

// AddCartLine handles POST /api/user/cart.
func (h *UserHandler) AddCartLine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	var req model.AddCartLineRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.cart.Add(r.Context(), claims.UserID, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Cart updated"}))
}

// RemoveCartLine handles DELETE /api/user/cart/{lineID}.
func (h *UserHandler) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	lineID, err := pathID(r, "lineID")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.cart.Remove(r.Context(), claims.UserID, lineID); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Cart line removed"}))
}

// List handles the admin GET /api/user listing.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.Parse(r.URL.Query(), repository.UserListing)

	users, total, err := h.users.List(r.Context(), opts)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Format(Result{
		Data: opts.Project(users),
		Page: &PageInfo{Page: opts.Page, PageSize: opts.PageSize, TotalCount: total},
	}))
}

// SetBlocked handles the admin PUT /api/user/{id}/block and unblock.
func (h *UserHandler) SetBlocked(blocked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, err, h.logger)
			return
		}

		if err := h.users.SetBlocked(r.Context(), id, blocked); err != nil {
			respondError(w, err, h.logger)
			return
		}

		msg := "User unblocked"
		if blocked {
			msg = "User blocked"
		}
		writeJSON(w, http.StatusOK, Format(Result{Msg: msg}))
	}
}

// Delete handles the admin DELETE /api/user/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "User deleted"}))
}
