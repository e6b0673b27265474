package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/sngm3741/delivery-availability/api/internal/admin/application"
	"github.com/sngm3741/delivery-availability/api/internal/availability"
	"github.com/sngm3741/delivery-availability/api/internal/clock"
	"github.com/sngm3741/delivery-availability/api/internal/config"
	"github.com/sngm3741/delivery-availability/api/internal/infrastructure/metrics"
	mongodoc "github.com/sngm3741/delivery-availability/api/internal/infrastructure/mongo"
	adminhttp "github.com/sngm3741/delivery-availability/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/delivery-availability/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/delivery-availability/api/internal/interfaces/http/public"
	publicapp "github.com/sngm3741/delivery-availability/api/internal/public/application"
)

// Server owns the HTTP lifecycle and is the composition root wiring repositories,
// services and handlers together.
type Server struct {
	logger              *log.Logger
	client              *mongo.Client
	registry            *prometheus.Registry
	adminStoreService   adminapp.StoreService
	availabilityService adminapp.AvailabilityService
	storeQueryService   publicapp.StoreQueryService
	jwtConfigs          []config.JWTConfig
	jwtAudience         string
	addr                string
	allowedOrigins      []string
}

// Run starts the HTTP server and blocks until it stops or a shutdown signal arrives.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// Routes builds the router: infra endpoints, public queries and the JWT-protected admin surface.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:       s.logger,
		StoreQueries: s.storeQueryService,
	})
	publicHandler.Register(router)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:              s.logger,
		StoreService:        s.adminStoreService,
		AvailabilityService: s.availabilityService,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		adminHandler.Register(r)
	})

	return router
}

// healthHandler reports whether MongoDB answers a primary ping.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if s.client == nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  "database client not configured",
			})
			return
		}
		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (s *Server) shutdown(ctx context.Context) {
	if s.client == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("mongodb disconnect failed: %v", err)
	}
}

// waitForShutdown waits for ListenAndServe to fail or for SIGINT/SIGTERM, then drains
// in-flight requests and disconnects from MongoDB.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Printf("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("http shutdown failed: %v", err)
		}
	}

	srv.shutdown(context.Background())
	return runErr
}

// New assembles the server from configuration and a connected Mongo client.
func New(cfg config.Config, client *mongo.Client) (*Server, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.FixedZone("BRT", -3*60*60)
		cfg.ServerLog.Printf("failed to load timezone %s: %v, falling back to UTC-3", cfg.Timezone, err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewAvailabilityMetrics(registry)

	clk := clock.NewSystem()
	cache, err := adminapp.NewStoreCache(cfg.CacheSize, cfg.CacheTTL, clk, recorder)
	if err != nil {
		return nil, err
	}

	database := client.Database(cfg.MongoDatabase)
	adminStoreRepo := mongodoc.NewAdminStoreRepository(database, cfg.StoreCollection)
	resolver := availability.NewResolver(loc)
	availabilityService := adminapp.NewAvailabilityService(adminapp.AvailabilityConfig{
		Repo:     adminStoreRepo,
		Clock:    clk,
		Resolver: resolver,
		Cache:    cache,
		Logger:   cfg.ServerLog,
		Recorder: recorder,
	})

	storeRepo := mongodoc.NewStoreRepository(database, cfg.StoreCollection)

	return &Server{
		logger:              cfg.ServerLog,
		client:              client,
		registry:            registry,
		adminStoreService:   adminapp.NewStoreService(adminStoreRepo, clk, cache),
		availabilityService: availabilityService,
		storeQueryService:   publicapp.NewStoreQueryService(storeRepo, availabilityService, resolver, clk),
		jwtConfigs:          append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:         cfg.JWTAudience,
		addr:                cfg.Addr,
		allowedOrigins:      append([]string(nil), cfg.AllowedOrigins...),
	}, nil
}
