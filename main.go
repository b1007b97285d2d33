package main

import (
	"context"
	"log"

	"dqlens/adapters/memory"
	"dqlens/adapters/postgres"
	"dqlens/app"
	"dqlens/domain/quality"
	"dqlens/domain/quality/catalog"
	"dqlens/internal/config"
	"dqlens/internal/errors"
	"dqlens/internal/inference"
	"dqlens/internal/migration"
	"dqlens/ports"
	"dqlens/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func loadCatalog(appConfig *config.Config) (*catalog.Catalog, error) {
	if appConfig.Analysis.CatalogPath != "" {
		log.Printf("Loading rule catalog from %s", appConfig.Analysis.CatalogPath)
		return catalog.Load(appConfig.Analysis.CatalogPath)
	}
	return catalog.Default()
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cat, err := loadCatalog(appConfig)
	if err != nil {
		log.Fatalf("Failed to load rule catalog: %v", err)
	}

	weights, err := quality.NewWeights(map[quality.Category]float64{
		quality.CategoryCompleteness: appConfig.Analysis.WeightCompleteness,
		quality.CategoryValidity:     appConfig.Analysis.WeightValidity,
		quality.CategoryUniqueness:   appConfig.Analysis.WeightUniqueness,
		quality.CategoryConsistency:  appConfig.Analysis.WeightConsistency,
	})
	if err != nil {
		log.Fatalf("Invalid category weights: %v", err)
	}

	sampling := inference.Sampling{
		Size:           appConfig.Analysis.SampleSize,
		ConformitySize: appConfig.Analysis.ConformitySample,
		Seed:           appConfig.Analysis.Seed,
	}

	analyzer := app.NewAnalyzer(cat, weights, sampling)

	// Persist reports in Postgres when configured, otherwise in memory
	var reports ports.ReportRepository
	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		reports = postgres.NewReportRepository(db)
		log.Printf("Report history backed by PostgreSQL")
	} else {
		reports = memory.NewReportRepository()
		log.Printf("No DATABASE_URL configured, report history kept in memory")
	}

	httpApp := ui.NewApp(analyzer, cat, reports)
	log.Printf("Starting server on port %s", appConfig.Server.Port)
	if err := httpApp.Start(ui.Config{Port: appConfig.Server.Port}); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
