package api

import (
	"errors"
	"net/http"

	"github.com/dverbeek/paddle/internal/domain/deposits"
	"github.com/dverbeek/paddle/internal/domain/users"
)

type createDepositRequest struct {
	UserID int64 `json:"userId"`
	Amount int64 `json:"amount"`
}

// CreateDeposit handles POST /deposits
func (h *Handler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req createDepositRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	deposit, err := h.deposits.CreateDeposit(r.Context(), req.UserID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, deposits.ErrInvalidAmount):
			h.respondError(w, http.StatusBadRequest, deposits.ErrInvalidAmount.Error())
		case errors.Is(err, users.ErrUserNotFound):
			h.respondError(w, http.StatusNotFound, users.ErrUserNotFound.Error())
		default:
			h.logger.Error("Failed to create deposit", "error", err)
			h.respondError(w, http.StatusInternalServerError, "failed to create deposit")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]any{
		"message":   "deposit created",
		"depositId": deposit.ID,
	})
}

// ListDeposits handles GET /deposit
func (h *Handler) ListDeposits(w http.ResponseWriter, r *http.Request) {
	list, err := h.deposits.ListDeposits(r.Context())
	if err != nil {
		h.logger.Error("Failed to list deposits", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list deposits")
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}
