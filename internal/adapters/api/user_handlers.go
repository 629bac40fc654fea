package api

import (
	"errors"
	"net/http"

	"github.com/dverbeek/paddle/internal/domain/users"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, users.ErrEmailTaken):
			h.respondError(w, http.StatusConflict, users.ErrEmailTaken.Error())
		default:
			h.logger.Error("Failed to register user", "error", err)
			h.respondError(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered",
		"userId":  user.ID,
	})
}

// Login handles GET /login. There are no sessions: a successful lookup
// returns the account profile.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	password := r.URL.Query().Get("password")
	if email == "" || password == "" {
		h.respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.users.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			h.respondError(w, http.StatusUnauthorized, users.ErrInvalidCredentials.Error())
			return
		}
		h.logger.Error("Failed to authenticate user", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"user":    user,
	})
}

// GetUser handles GET /user
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			h.respondError(w, http.StatusNotFound, users.ErrUserNotFound.Error())
			return
		}
		h.logger.Error("Failed to get user", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}
