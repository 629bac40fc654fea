package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dverbeek/paddle/internal/domain/bids"
	"github.com/dverbeek/paddle/internal/domain/deposits"
	"github.com/dverbeek/paddle/internal/domain/items"
	"github.com/dverbeek/paddle/internal/domain/users"
)

// Handler holds the domain services behind the HTTP surface
type Handler struct {
	users    *users.Service
	items    *items.Service
	bids     *bids.Engine
	deposits *deposits.Service
	pool     *pgxpool.Pool
	logger   *slog.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	userService *users.Service,
	itemService *items.Service,
	bidEngine *bids.Engine,
	depositService *deposits.Service,
	pool *pgxpool.Pool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		users:    userService,
		items:    itemService,
		bids:     bidEngine,
		deposits: depositService,
		pool:     pool,
		logger:   logger,
	}
}

// Router builds the HTTP routes
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	r.Post("/register", h.Register)
	r.Get("/login", h.Login)
	r.Get("/user", h.GetUser)

	r.Post("/items", h.CreateItem)
	r.Get("/items", h.ListItems)
	r.Get("/published-items", h.ListPublishedItems)
	r.Get("/existing-items", h.ListItemsByState)
	r.Put("/items/{itemId}", h.UpdateItem)
	r.Put("/items/{itemId}/price", h.UpdateItemPrice)
	r.Put("/bidding-items/{itemId}/publish", h.PublishItem)
	r.Delete("/items/{itemId}", h.DeleteItem)

	r.Post("/bid", h.PlaceBid)
	r.Get("/bid", h.ListBids)
	r.Put("/bids/{bidId}", h.ReviseBid)

	r.Post("/deposits", h.CreateDeposit)
	r.Get("/deposit", h.ListDeposits)

	return r
}

// Health reports liveness, including a database ping
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.Ping(r.Context()); err != nil {
		h.logger.Error("Health check failed", "error", err)
		h.respondError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
