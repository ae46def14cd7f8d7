package handler

import (
	"net/http"
	"time"

	"cafe-site/internal/auth"

	"github.com/rs/zerolog"
)

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse tells the dashboard when the session ends.
type LoginResponse struct {
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	sessions *auth.Sessions
	now      func() time.Time
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(sessions *auth.Sessions, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		now:      time.Now,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /api/admin/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	now := h.now()
	token, err := h.sessions.Login(req.Password, now)
	if err != nil {
		h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("admin login failed")
		writeServiceError(w, err, "failed to log in", h.logger)
		return
	}

	http.SetCookie(w, h.sessions.Cookie(token))
	h.logger.Info().Str("remote_addr", r.RemoteAddr).Msg("admin logged in")
	writeJSON(w, http.StatusOK, LoginResponse{ExpiresAt: now.Add(h.sessions.TTL()).UTC()})
}

// Logout handles POST /api/admin/logout requests.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.ClearCookie())
	w.WriteHeader(http.StatusNoContent)
}

