package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/black-yen/sketer-workmoney/cmd/docs"
	"github.com/black-yen/sketer-workmoney/internal/adapters/rowstore/csvfile"
	"github.com/black-yen/sketer-workmoney/internal/adapters/rowstore/guard"
	"github.com/black-yen/sketer-workmoney/internal/adapters/rowstore/pgsql"
	sheetsstore "github.com/black-yen/sketer-workmoney/internal/adapters/rowstore/sheets"
	portsrepo "github.com/black-yen/sketer-workmoney/internal/core/ports/repositories"
	"github.com/black-yen/sketer-workmoney/internal/core/services"
	"github.com/black-yen/sketer-workmoney/internal/handlers"
	"github.com/black-yen/sketer-workmoney/internal/middleware"
	"github.com/black-yen/sketer-workmoney/internal/platform/config"
	"github.com/black-yen/sketer-workmoney/pkg/database"
)

// @title Workmoney Backend API
// @version 1.0
// @description Payroll-entry backend for part-time skating coaches.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	payrollCfg, err := config.LoadPayrollConfig(cfg.PayrollConfigFile)
	if err != nil {
		logger.Error("Failed to load payroll config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loc := cfg.Location()
	ctx := context.Background()

	var repo portsrepo.LedgerRepositoryFacade
	switch cfg.StoreBackend {
	case config.StoreCSV:
		repo = csvfile.NewCSVRepository(cfg.CSVPath, loc)
		logger.Info("Using CSV row store", slog.String("path", cfg.CSVPath))
	case config.StoreSheets:
		sheetsRepo, err := sheetsstore.NewSheetsRepository(ctx, cfg.SheetsCredentialsFile, cfg.SheetsSpreadsheetID, cfg.SheetsSheetName, loc)
		if err != nil {
			logger.Error("Failed to connect to Google Sheets", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repo = sheetsRepo
		logger.Info("Using Google Sheets row store", slog.String("spreadsheet_id", cfg.SheetsSpreadsheetID))
	case config.StorePgSQL:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer dbPool.Close()
		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			os.Exit(1)
		}
		repo = pgsql.NewPgxLedgerRepository(dbPool, loc)
		logger.Info("Using PostgreSQL row store")
	}

	guarded := guard.Wrap(repo)
	if err := guarded.EnsureHeader(ctx); err != nil {
		logger.Error("Failed to prepare row store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateSvc := services.NewRateService(payrollCfg)
	rosterSvc := services.NewRosterService(payrollCfg)
	ledgerSvc := services.NewLedgerService(payrollCfg, rateSvc, rosterSvc, guarded, loc)
	reportingSvc := services.NewReportingService(guarded, rosterSvc)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	limiterInstance := limiter.New(memorystore.NewStore(), limiter.Rate{
		Period: cfg.RateLimitPeriod,
		Limit:  cfg.RateLimitRequests,
	})

	handlers.RegisterValidations()

	r.GET("/healthz", handlers.GetHome)

	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance), middleware.CoachIdentityMiddleware())
	handlers.RegisterRoutes(v1, handlers.Services{
		Rate:      rateSvc,
		Ledger:    ledgerSvc,
		Reporting: reportingSvc,
		Roster:    rosterSvc,
		Payroll:   payrollCfg,
	})

	setupSwaggerRoutes(r, cfg)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreBackend))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Database migrations up to date.")
	return nil
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
