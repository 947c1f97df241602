package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/service"
)

// refreshCookie is the HTTP-only cookie carrying the refresh token.
const refreshCookie = "refreshToken"

// AuthHandler handles account lifecycle and token requests.
type AuthHandler struct {
	service    service.AuthService
	refreshTTL time.Duration
	logger     zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, refreshTTL time.Duration, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:    service,
		refreshTTL: refreshTTL,
		logger:     logger.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Registered successfully", Data: user, HasData: true}))
}

// Login handles POST /api/auth/login. On success it sets the HTTP-only
// refresh cookie and returns a bearer access token. No cookie or token is
// issued on failure.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	user, pair, err := h.service.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	h.setRefreshCookie(w, pair.Refresh)
	writeJSON(w, http.StatusOK, Format(Result{
		Msg:         "Logged in",
		AccessToken: pair.Access,
		Data:        user,
		HasData:     true,
	}))
}

// RefreshToken handles POST /api/auth/refresh-token. It reads the refresh
// cookie and rotates the token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookie)
	if err != nil || cookie.Value == "" {
		respondError(w, model.ErrTokenInvalid, h.logger)
		return
	}

	pair, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	h.setRefreshCookie(w, pair.Refresh)
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Token refreshed", AccessToken: pair.Access}))
}

// Logout handles POST /api/auth/logout. It revokes the stored refresh token
// and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookie); err == nil {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			respondError(w, err, h.logger)
			return
		}
	}

	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Logged out"}))
}

// ForgotPassword handles GET /api/auth/forgot-password?email=.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.service.ForgotPassword(r.Context(), email); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Format(Result{Msg: "Reset token sent"}))
}

// ResetPassword handles PUT /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Format(Result{Msg: "Password updated"}))
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
