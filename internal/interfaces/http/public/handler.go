package public

import (
	"log"

	"github.com/go-chi/chi/v5"

	publicapp "github.com/sngm3741/delivery-availability/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger       *log.Logger
	storeQueries publicapp.StoreQueryService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger       *log.Logger
	StoreQueries publicapp.StoreQueryService
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:       cfg.Logger,
		storeQueries: cfg.StoreQueries,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/{id}", h.storeDetailHandler())
	r.Get("/stores/{id}/availability", h.storeAvailabilityHandler())
}
