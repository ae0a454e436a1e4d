package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/handlers"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/services/analysis"
	"github.com/ternarybob/domus/internal/services/events"
	"github.com/ternarybob/domus/internal/services/export"
	"github.com/ternarybob/domus/internal/services/llm"
	"github.com/ternarybob/domus/internal/services/scheduler"
	"github.com/ternarybob/domus/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	EventService     interfaces.EventService
	LLMFactory       *llm.ProviderFactory
	Pipeline         *analysis.Pipeline
	SchedulerService *scheduler.Service
	ExportService    *export.Service

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	PropertyHandler *handlers.PropertyHandler
	AnalysisHandler *handlers.AnalysisHandler
	WSHandler       *handlers.WebSocketHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	app.EventService = events.NewService(logger)
	app.WSHandler = handlers.NewWebSocketHandler(app.EventService, logger, &cfg.WebSocket)

	// The generator falls back to deterministic reports whenever the LLM is
	// unavailable, so a missing API key downgrades gracefully instead of
	// failing startup.
	var generator interfaces.ContentGenerator
	if cfg.Claude.APIKey != "" || cfg.Gemini.APIKey != "" {
		app.LLMFactory = llm.NewProviderFactory(&cfg.Claude, &cfg.Gemini, &cfg.LLM, logger)
		generator = app.LLMFactory
		logger.Info().
			Str("default_provider", cfg.LLM.DefaultProvider).
			Msg("LLM provider factory initialized")
	} else {
		logger.Warn().Msg("No LLM API key configured, reports will use deterministic generation")
	}

	assembler := analysis.NewContextAssembler(storageManager.PropertyStorage(), &cfg.Pipeline, logger)
	reportGenerator := analysis.NewGenerator(generator, logger)
	app.Pipeline = analysis.NewPipeline(storageManager, assembler, reportGenerator, app.EventService, &cfg.Pipeline, logger)
	app.Pipeline.Start()

	if cfg.Scheduler.Enabled {
		app.SchedulerService = scheduler.NewService(storageManager.AnalysisStorage(), app.EventService, &cfg.Scheduler, logger)
		if err := app.SchedulerService.Start(); err != nil {
			app.Pipeline.Stop()
			storageManager.Close()
			return nil, fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	app.ExportService = export.NewService(logger)

	app.APIHandler = handlers.NewAPIHandler()
	app.PropertyHandler = handlers.NewPropertyHandler(storageManager.PropertyStorage(), logger)
	app.AnalysisHandler = handlers.NewAnalysisHandler(
		app.Pipeline,
		storageManager.AnalysisStorage(),
		storageManager.PropertyStorage(),
		app.ExportService,
		logger,
	)

	logger.Info().Msg("Application initialized")
	return app, nil
}

// Close shuts down all application components in reverse dependency order.
func (a *App) Close() {
	a.Logger.Info().Msg("Shutting down application")

	if a.SchedulerService != nil {
		a.SchedulerService.Stop()
	}

	if a.Pipeline != nil {
		a.Pipeline.Stop()
	}

	if a.LLMFactory != nil {
		if err := a.LLMFactory.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM factory")
		}
	}

	if a.EventService != nil {
		if err := a.EventService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close event service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}

	a.Logger.Info().Msg("Application shutdown complete")
}
