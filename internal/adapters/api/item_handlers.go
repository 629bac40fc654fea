package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dverbeek/paddle/internal/domain/items"
)

type itemRequest struct {
	Name              string          `json:"itemName"`
	FloorPrice        int64           `json:"itemPrice"`
	TimeWindowHours   int             `json:"timeWindowHours"`
	TimeWindowMinutes int             `json:"timeWindowMinutes"`
	State             items.ItemState `json:"state"`
}

type itemPriceRequest struct {
	FloorPrice int64 `json:"itemPrice"`
}

func itemIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
}

// respondItemError maps item service sentinels to status codes
func (h *Handler) respondItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, items.ErrItemNotFound):
		h.respondError(w, http.StatusNotFound, items.ErrItemNotFound.Error())
	case errors.Is(err, items.ErrItemImmutable):
		h.respondError(w, http.StatusConflict, items.ErrItemImmutable.Error())
	case errors.Is(err, items.ErrInvalidName),
		errors.Is(err, items.ErrInvalidFloorPrice),
		errors.Is(err, items.ErrInvalidTimeWindow),
		errors.Is(err, items.ErrInvalidState):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Item operation failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, "item operation failed")
	}
}

// CreateItem handles POST /items
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := h.items.CreateItem(r.Context(), items.CreateItemCommand{
		Name:              req.Name,
		FloorPrice:        req.FloorPrice,
		TimeWindowHours:   req.TimeWindowHours,
		TimeWindowMinutes: req.TimeWindowMinutes,
		State:             req.State,
	})
	if err != nil {
		h.respondItemError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]any{
		"message": "item created",
		"itemId":  item.ID,
	})
}

// ListItems handles GET /items
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	list, err := h.items.ListItems(r.Context())
	if err != nil {
		h.respondItemError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// ListPublishedItems handles GET /published-items
func (h *Handler) ListPublishedItems(w http.ResponseWriter, r *http.Request) {
	list, err := h.items.ListItemsByState(r.Context(), items.ItemStatePublished)
	if err != nil {
		h.respondItemError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// ListItemsByState handles GET /existing-items. Without a state filter it
// returns draft items.
func (h *Handler) ListItemsByState(w http.ResponseWriter, r *http.Request) {
	state := items.ItemState(r.URL.Query().Get("state"))
	if state == "" {
		state = items.ItemStateDraft
	}

	list, err := h.items.ListItemsByState(r.Context(), state)
	if err != nil {
		h.respondItemError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// UpdateItem handles PUT /items/{itemId}
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := h.items.UpdateItemDetails(r.Context(), items.UpdateItemDetailsCommand{
		ItemID:            itemID,
		Name:              req.Name,
		FloorPrice:        req.FloorPrice,
		TimeWindowHours:   req.TimeWindowHours,
		TimeWindowMinutes: req.TimeWindowMinutes,
	})
	if err != nil {
		h.respondItemError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

// UpdateItemPrice handles PUT /items/{itemId}/price
func (h *Handler) UpdateItemPrice(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemPriceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := h.items.UpdateItemPrice(r.Context(), itemID, req.FloorPrice)
	if err != nil {
		h.respondItemError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

// PublishItem handles PUT /bidding-items/{itemId}/publish
func (h *Handler) PublishItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.items.PublishItem(r.Context(), itemID)
	if err != nil {
		h.respondItemError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /items/{itemId}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.items.DeleteItem(r.Context(), itemID); err != nil {
		h.respondItemError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
