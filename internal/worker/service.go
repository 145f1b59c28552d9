// Package worker provides the recommendation worker service for brandmatch.
package worker

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Maiuran1404/brandmatch/internal/config"
	"github.com/Maiuran1404/brandmatch/internal/db"
	gormdb "github.com/Maiuran1404/brandmatch/internal/db/gorm"
	"github.com/Maiuran1404/brandmatch/internal/db/sqlite"
	"github.com/Maiuran1404/brandmatch/internal/history"
	"github.com/Maiuran1404/brandmatch/internal/scoring"
	"github.com/Maiuran1404/brandmatch/internal/styles"
	"github.com/Maiuran1404/brandmatch/internal/taxonomy"
	"github.com/Maiuran1404/brandmatch/internal/video"
	"github.com/Maiuran1404/brandmatch/internal/watcher"
)

// Service configuration constants
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// MaxRequestBodySize caps incoming request bodies at 1 MiB.
	MaxRequestBodySize = 1 << 20
)

// Service is the recommendation worker orchestrator.
type Service struct {
	// Version of the worker binary
	version string

	// Configuration
	config *config.Config

	// Database
	store db.Store

	// Domain services
	stylesService *styles.Service
	videoService  *video.Service
	table         taxonomy.Table

	// HTTP server
	router    *chi.Mux
	server    *http.Server
	startTime time.Time

	// Metrics
	metrics *metrics

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Initialization state (for deferred init)
	ready     atomic.Bool
	initError error
	initMu    sync.RWMutex
}

// NewService creates a new worker service with deferred initialization.
// The HTTP server comes up immediately with health endpoints available,
// while database and taxonomy initialization happens in the background.
func NewService(version string) (*Service, error) {
	cfg := config.Get()

	ctx, cancel := context.WithCancel(context.Background())

	svc := &Service{
		version:   version,
		config:    cfg,
		router:    chi.NewRouter(),
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
		metrics:   newMetrics(),
	}

	svc.setupMiddleware()
	svc.setupRoutes()

	go svc.initializeAsync()

	return svc, nil
}

// initializeAsync performs heavy initialization in the background.
func (s *Service) initializeAsync() {
	log.Info().Msg("Starting async initialization...")

	if err := config.EnsureAll(); err != nil {
		s.setInitError(fmt.Errorf("ensure data dir: %w", err))
		return
	}

	store, err := s.openStore()
	if err != nil {
		s.setInitError(fmt.Errorf("init database: %w", err))
		return
	}

	table := s.loadTaxonomy()

	s.initMu.Lock()
	s.store = store
	s.buildServicesLocked(store, table)
	s.initMu.Unlock()

	s.ready.Store(true)
	log.Info().Msg("Async initialization complete - service ready")

	if s.config.WatchTaxonomy && s.config.TaxonomyPath != "" {
		s.wg.Add(1)
		go s.watchTaxonomy()
	}
}

// openStore selects the storage backend from configuration. A postgres DSN
// selects the gorm backend, otherwise the embedded sqlite store is used.
func (s *Service) openStore() (db.Store, error) {
	if s.config.PostgresDSN != "" {
		log.Info().Msg("Using postgres storage backend")
		return gormdb.NewStore(gormdb.Config{
			DSN:      s.config.PostgresDSN,
			MaxConns: s.config.MaxConns,
		})
	}
	log.Info().Str("path", s.config.DBPath).Msg("Using sqlite storage backend")
	return sqlite.NewStore(sqlite.StoreConfig{
		Path:     s.config.DBPath,
		MaxConns: s.config.MaxConns,
	})
}

// loadTaxonomy loads the taxonomy file when configured, falling back to the
// built-in table on any error.
func (s *Service) loadTaxonomy() taxonomy.Table {
	if s.config.TaxonomyPath == "" {
		return taxonomy.Default()
	}
	table, err := taxonomy.LoadFile(s.config.TaxonomyPath)
	if err != nil {
		log.Warn().Err(err).Str("path", s.config.TaxonomyPath).Msg("Failed to load taxonomy file, using built-in table")
		return taxonomy.Default()
	}
	log.Info().Int("axes", len(table)).Str("path", s.config.TaxonomyPath).Msg("Loaded taxonomy file")
	return table
}

// buildServicesLocked rebuilds the domain services around a store and
// taxonomy table. Callers must hold initMu.
func (s *Service) buildServicesLocked(store db.Store, table taxonomy.Table) {
	s.table = table
	calc := scoring.NewCalculator(nil, table)
	booster := history.NewStoreBooster(store, nil)
	s.stylesService = styles.NewService(store, store, booster, calc)
	s.videoService = video.NewService(store, video.NewKeywordExtractor(table), nil)
}

// watchTaxonomy runs the taxonomy file watcher until shutdown. Reloaded
// tables swap in a fresh calculator and extractor under the init lock.
func (s *Service) watchTaxonomy() {
	defer s.wg.Done()

	w := watcher.NewTaxonomyWatcher(s.config.TaxonomyPath, func(table taxonomy.Table) {
		s.initMu.Lock()
		s.buildServicesLocked(s.store, table)
		s.initMu.Unlock()
	})
	if err := w.Watch(s.ctx); err != nil && err != context.Canceled {
		log.Warn().Err(err).Msg("Taxonomy watcher stopped")
	}
}

// setInitError records an initialization error.
func (s *Service) setInitError(err error) {
	s.initMu.Lock()
	s.initError = err
	s.initMu.Unlock()
	log.Error().Err(err).Msg("Async initialization failed")
}

// GetInitError returns any initialization error.
func (s *Service) GetInitError() error {
	s.initMu.RLock()
	defer s.initMu.RUnlock()
	return s.initError
}

// services returns the current domain services. They are swapped as a unit
// on taxonomy reload, so handlers must fetch both through this accessor.
func (s *Service) services() (*styles.Service, *video.Service, db.Store) {
	s.initMu.RLock()
	defer s.initMu.RUnlock()
	return s.stylesService, s.videoService, s.store
}

// setupMiddleware configures HTTP middleware.
func (s *Service) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(DefaultHTTPTimeout))
	s.router.Use(middleware.RealIP)
	s.router.Use(RequestID)
	s.router.Use(SecurityHeaders)
	s.router.Use(MaxBodySize(MaxRequestBodySize))
}

// setupRoutes configures HTTP routes.
func (s *Service) setupRoutes() {
	// Health check (both root and API-prefixed for compatibility)
	// Returns 200 immediately so callers can connect during init
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/api/health", s.handleHealth)

	// Version endpoint for deploy tooling
	s.router.Get("/api/version", s.handleVersion)

	// Readiness check - returns 200 only when fully initialized
	s.router.Get("/api/ready", s.handleReady)

	// Routes that require DB to be ready
	s.router.Group(func(r chi.Router) {
		r.Use(s.requireReady)

		// Style recommendations
		r.Get("/api/styles", s.handleGetStyles)
		r.Get("/api/styles/axis/{axis}", s.handleGetStylesByAxis)
		r.Post("/api/styles", s.handleUpsertStyle)
		r.Post("/api/styles/{id}/select", s.handleSelectStyle)

		// Video recommendations
		r.Post("/api/video-references/chat", s.handleVideoReferencesForChat)

		// Taxonomy introspection
		r.Get("/api/taxonomy", s.handleGetTaxonomy)
	})
}

// Start starts the worker service.
// The HTTP server starts immediately; database initialization happens async.
func (s *Service) Start() error {
	port := config.GetWorkerPort()

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	log.Info().
		Int("port", port).
		Int("pid", os.Getpid()).
		Msg("Worker HTTP server started (initialization in progress)")

	return nil
}

// Shutdown gracefully shuts down the service.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown error")
		}
	}

	s.initMu.RLock()
	store := s.store
	s.initMu.RUnlock()
	if store != nil {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Database close error")
		}
	}

	s.wg.Wait()

	log.Info().Msg("Worker service shutdown complete")
	return nil
}
