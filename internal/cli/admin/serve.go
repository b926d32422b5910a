package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/api/handlers"
	"github.com/cloo-solutions/lexsearch/internal/config"
	"github.com/cloo-solutions/lexsearch/internal/database"
	"github.com/cloo-solutions/lexsearch/internal/jobs"
	"github.com/cloo-solutions/lexsearch/internal/llm"
	"github.com/cloo-solutions/lexsearch/internal/repository"
	"github.com/cloo-solutions/lexsearch/internal/server"
	"github.com/cloo-solutions/lexsearch/internal/service"
	"github.com/cloo-solutions/lexsearch/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the lexsearch API server. Migrations run on startup unless --no-migrate is set.",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides LEXSEARCH_PORT)")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer log.Sync()

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	flush := telemetry.Init(telemetry.Config{
		DSN:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate(),
		Debug:            cfg.Debug,
	}, log)
	defer flush()
	if cfg.HasSentry() {
		log.Info("error reporting enabled", zap.String("environment", cfg.Environment))
	}

	if noMigrate, _ := cmd.Flags().GetBool("no-migrate"); !noMigrate {
		if _, err := database.Migrate(cfg.DatabaseURL, database.Up, log); err != nil {
			return err
		}
	}

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info("connected to database")

	caseRepo := repository.NewCaseRepository(pool)
	historyRepo := repository.NewSearchHistoryRepository(pool)

	app := buildServices(cfg, log, caseRepo, historyRepo)

	router := server.NewRouter(server.RouterConfig{
		Logger:        log,
		DB:            pool,
		AdminToken:    cfg.AdminToken,
		MaxBodyBytes:  cfg.MaxBodyBytes,
		SearchHandler: handlers.NewSearchHandler(app.search),
		CaseHandler:   handlers.NewCaseHandler(app.cases),
		AdminHandler:  handlers.NewAdminHandler(app.importer),
	})

	var backfill *jobs.Worker
	if cfg.HasBackfill() && app.enricher != nil {
		processor := jobs.NewSummaryBackfill(caseRepo, app.enricher, cfg.BackfillBatch, log)
		backfill = jobs.NewWorker("summary-backfill", processor, cfg.BackfillInterval, log)
		go backfill.Start(ctx)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("shutting down")

	if backfill != nil {
		backfill.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

type services struct {
	search   *service.SearchService
	cases    *service.CaseService
	importer *service.ImportService
	enricher *service.Enricher
}

// buildServices wires the service layer. Without an LLM key, searches use the
// default analysis, suggestions are empty, and no summaries are generated.
func buildServices(cfg *config.Config, log *zap.Logger, caseRepo *repository.CaseRepository, historyRepo *repository.SearchHistoryRepository) services {
	var (
		analyzer  service.QueryAnalyzer
		suggester service.Suggester
		enricher  *service.Enricher
	)

	client, err := llm.NewClient(llm.Config{
		APIKey:        cfg.LLMAPIKey,
		BaseURL:       cfg.LLMBaseURL,
		SummaryModel:  cfg.LLMSummaryModel,
		AnalysisModel: cfg.LLMAnalysisModel,
		Timeout:       cfg.LLMTimeout,
	}, log.Named("llm"))
	if err != nil {
		log.Warn("LLM features disabled", zap.Error(err))
	} else {
		analyzer = client
		suggester = client
		enricher = service.NewEnricher(client, caseRepo, log.Named("enricher"))
	}

	return services{
		search:   service.NewSearchService(caseRepo, historyRepo, analyzer, suggester, enricher, log.Named("search")),
		cases:    service.NewCaseService(caseRepo, enricher, log.Named("cases")),
		importer: service.NewImportService(caseRepo, log.Named("import")),
		enricher: enricher,
	}
}
