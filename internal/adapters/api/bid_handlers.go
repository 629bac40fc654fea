package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dverbeek/paddle/internal/domain/bids"
)

type placeBidRequest struct {
	ItemID   int64 `json:"itemId"`
	BidderID int64 `json:"bidderId"`
	Amount   int64 `json:"bidAmount"`
}

type reviseBidRequest struct {
	Amount int64 `json:"bidAmount"`
}

// respondBidError maps bid engine sentinels to status codes. Policy
// rejections come back as 422 with the violated constraint in the body.
func (h *Handler) respondBidError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bids.ErrInvalidBidAmount):
		h.respondError(w, http.StatusBadRequest, bids.ErrInvalidBidAmount.Error())
	case errors.Is(err, bids.ErrBidNotFound),
		errors.Is(err, bids.ErrItemNotFound),
		errors.Is(err, bids.ErrBidderNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, bids.ErrItemNotBiddable),
		errors.Is(err, bids.ErrBidBelowFloor),
		errors.Is(err, bids.ErrBidNotAboveMax):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("Bid operation failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, "bid operation failed")
	}
}

// PlaceBid handles POST /bid
func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	var req placeBidRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	bid, err := h.bids.PlaceBid(r.Context(), bids.PlaceBidCommand{
		ItemID:   req.ItemID,
		BidderID: req.BidderID,
		Amount:   req.Amount,
	})
	if err != nil {
		h.respondBidError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]any{
		"message": "bid placed",
		"bidId":   bid.ID,
	})
}

// ListBids handles GET /bid
func (h *Handler) ListBids(w http.ResponseWriter, r *http.Request) {
	list, err := h.bids.ListBids(r.Context())
	if err != nil {
		h.respondBidError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// ReviseBid handles PUT /bids/{bidId}
func (h *Handler) ReviseBid(w http.ResponseWriter, r *http.Request) {
	bidID, err := strconv.ParseInt(chi.URLParam(r, "bidId"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid bid id")
		return
	}

	var req reviseBidRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	bid, err := h.bids.ReviseBid(r.Context(), bidID, req.Amount)
	if err != nil {
		h.respondBidError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"message": "bid revised",
		"bid":     bid,
	})
}
