package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jornaltgi/backend/internal/auth"
	"github.com/jornaltgi/backend/internal/logging"
)

// AuthHandler implements the login, check-auth and logout endpoints.
type AuthHandler struct {
	Sessions SessionService
	// Limiter guards login against credential stuffing. Nil disables the guard.
	Limiter RateLimiter
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logoutRequest struct {
	SessionID string `json:"session_id"`
}

type userPayload struct {
	Username string `json:"username"`
}

type loginResponse struct {
	Success   bool        `json:"success"`
	User      userPayload `json:"user"`
	SessionID string      `json:"session_id"`
}

type checkAuthResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *userPayload `json:"user"`
}

// Login handles POST /api/login requests.
func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Sessions == nil {
		logger.Error("session service unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "authentication services unavailable"})
		return
	}

	if !allowRequest(h.Limiter, r, "login") {
		logger.Warn("login rate limited", "remote_addr", r.RemoteAddr)
		respondJSON(ctx, w, http.StatusTooManyRequests, map[string]string{"error": "too many login attempts"})
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		logger.Warn("login missing credentials", "username", req.Username)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	session, err := h.Sessions.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.Warn("login rejected", "username", req.Username)
			respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		logger.Error("failed to create session", "error", err, "username", req.Username)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, loginResponse{
		Success:   true,
		User:      userPayload{Username: session.Username},
		SessionID: session.Token,
	})
}

// CheckAuth handles GET /api/check-auth requests. It never errors: an absent
// or unknown token simply reports authenticated=false.
func (h AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Sessions == nil {
		respondJSON(ctx, w, http.StatusOK, checkAuthResponse{Authenticated: false})
		return
	}

	username, ok := h.Sessions.Check(ctx, sessionToken(r))
	if !ok {
		respondJSON(ctx, w, http.StatusOK, checkAuthResponse{Authenticated: false})
		return
	}

	respondJSON(ctx, w, http.StatusOK, checkAuthResponse{
		Authenticated: true,
		User:          &userPayload{Username: username},
	})
}

// Logout handles POST /api/logout requests. Revoking an absent token is not
// an error, so the response is always a success.
func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := ""
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
		token = req.SessionID
	}
	if token == "" {
		token = sessionToken(r)
	}

	if h.Sessions != nil {
		h.Sessions.Logout(ctx, token)
	}

	respondJSON(ctx, w, http.StatusOK, map[string]bool{"success": true})
}
