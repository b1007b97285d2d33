package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dqlens/adapters/excel"
	"dqlens/app"
	"dqlens/domain/quality/catalog"
	"dqlens/ports"
)

// App represents the HTTP application
type App struct {
	router   *chi.Mux
	analyzer *app.Analyzer
	catalog  *catalog.Catalog
	reports  ports.ReportRepository
	openFile func(path string) ports.DatasetReader
}

// Config holds HTTP application configuration
type Config struct {
	Port string
}

// NewApp creates a new HTTP application
func NewApp(analyzer *app.Analyzer, cat *catalog.Catalog, reports ports.ReportRepository) *App {
	a := &App{
		router:   chi.NewRouter(),
		analyzer: analyzer,
		catalog:  cat,
		reports:  reports,
		openFile: func(path string) ports.DatasetReader { return excel.NewDataReader(path) },
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Post("/api/analyses", a.handleAnalyze)
	a.router.Get("/api/analyses", a.handleListAnalyses)
	a.router.Get("/api/analyses/{id}", a.handleGetAnalysis)
	a.router.Get("/api/analyses/{id}/summary", a.handleAnalysisSummary)
	a.router.Get("/api/datasets/{name}/history", a.handleScoreHistory)
	a.router.Get("/api/catalog", a.handleCatalog)
	a.router.Post("/api/clean", a.handleClean)
}

// Router exposes the configured router
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server per the supplied configuration
func (a *App) Start(cfg Config) error {
	addr := fmt.Sprintf(":%s", cfg.Port)
	return http.ListenAndServe(addr, a.router)
}
