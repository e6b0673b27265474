package admin

import (
	"log"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sngm3741/delivery-availability/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger       *log.Logger
	storeService adminapp.StoreService
	availability adminapp.AvailabilityService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger              *log.Logger
	StoreService        adminapp.StoreService
	AvailabilityService adminapp.AvailabilityService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:       cfg.Logger,
		storeService: cfg.StoreService,
		availability: cfg.AvailabilityService,
	}
}

// Register mounts admin routes onto router. Authentication is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/auth/verify", h.authVerifyHandler())
	r.Get("/stores", h.storeSearchHandler())
	r.Post("/stores", h.storeCreateHandler())
	r.Get("/stores/{id}", h.storeDetailHandler())
	r.Put("/stores/{id}/schedule", h.storeScheduleHandler())
	r.Get("/stores/{id}/availability", h.availabilityHandler())
	r.Post("/stores/{id}/pause", h.pauseHandler())
	r.Post("/stores/{id}/resume", h.resumeHandler())
	r.Post("/stores/{id}/block", h.blockHandler())
	r.Post("/stores/{id}/unblock", h.unblockHandler())
}
