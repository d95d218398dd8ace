package di

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appservices "lineage-backend/application/services"
	"lineage-backend/domain/canvas"
	domainconfig "lineage-backend/domain/config"
	"lineage-backend/infrastructure/config"
	"lineage-backend/interfaces/http/rest"
	"lineage-backend/interfaces/http/rest/handlers"
	pkgerrors "lineage-backend/pkg/errors"
	"lineage-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domainconfig.DomainConfig
	Logger       *zap.Logger
	IDs          canvas.IDGenerator
	Metrics      *observability.Collector
	ErrorHandler *pkgerrors.ErrorHandler
	Orchestrator *appservices.SplitOrchestrator
	Pruner       *appservices.CanvasPruneService
	Router       *rest.Router
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}

// ProvideDomainConfig maps service configuration onto the domain defaults
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	dc := domainconfig.DefaultDomainConfig()
	if cfg.GenerationsPerCanvas > 0 {
		dc.DefaultGenerationsPerCanvas = cfg.GenerationsPerCanvas
	}
	if cfg.MaxBranchRecursion > 0 {
		dc.MaxBranchRecursion = cfg.MaxBranchRecursion
	}
	if cfg.CanvasNamePattern != "" {
		dc.DefaultCanvasPattern = cfg.CanvasNamePattern
	}
	return dc
}

// ProvideIDGenerator creates the node ID source
func ProvideIDGenerator() canvas.IDGenerator {
	return canvas.UUIDGenerator()
}

// ProvideMetrics creates the metrics collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("lineage")
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideSplitOrchestrator creates the tree decomposition service
func ProvideSplitOrchestrator(dc *domainconfig.DomainConfig, logger *zap.Logger) *appservices.SplitOrchestrator {
	return appservices.NewSplitOrchestrator(dc, logger)
}

// ProvideCanvasPruneService creates the canvas prune service
func ProvideCanvasPruneService(ids canvas.IDGenerator, dc *domainconfig.DomainConfig, logger *zap.Logger) *appservices.CanvasPruneService {
	return appservices.NewCanvasPruneService(ids, dc, logger)
}

// ProvideSplitHandler creates the split HTTP handler
func ProvideSplitHandler(
	orchestrator *appservices.SplitOrchestrator,
	errorHandler *pkgerrors.ErrorHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *handlers.SplitHandler {
	return handlers.NewSplitHandler(orchestrator, errorHandler, metrics, logger)
}

// ProvidePruneHandler creates the prune HTTP handler
func ProvidePruneHandler(
	pruner *appservices.CanvasPruneService,
	errorHandler *pkgerrors.ErrorHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *handlers.PruneHandler {
	return handlers.NewPruneHandler(pruner, errorHandler, metrics, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	splitHandler *handlers.SplitHandler,
	pruneHandler *handlers.PruneHandler,
	metrics *observability.Collector,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(cfg, splitHandler, pruneHandler, metrics, logger)
}
