package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NewsSieve/internal/catalog"
	"NewsSieve/internal/classify"
	"NewsSieve/internal/config"
	"NewsSieve/internal/infrastructure/embeddings"
	"NewsSieve/internal/infrastructure/feed"
	"NewsSieve/internal/infrastructure/sanitize"
	"NewsSieve/internal/infrastructure/scheduler"
	"NewsSieve/internal/infrastructure/storage"
	"NewsSieve/internal/infrastructure/telegram"
	"NewsSieve/internal/logging"
	"NewsSieve/internal/ports"
	"NewsSieve/internal/usecase"
)

// shutdownTimeout bounds the wait for an in-flight run during shutdown.
const shutdownTimeout = 30 * time.Second

// Application wires configuration to use cases and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	return &Application{cfg: cfg, logger: baseLogger}
}

// Run performs startup checks, fires the first pipeline run and keeps
// the daily scheduler alive until an interrupt arrives.
func (a *Application) Run(ctx context.Context) error {
	runner, err := a.buildScheduler(ctx)
	if err != nil {
		return err
	}

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "time", a.cfg.Scheduler.Time, "timezone", a.cfg.Scheduler.Timezone)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		a.logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		a.logger.Info("context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return runner.Stop(shutdownCtx)
}

// buildScheduler resolves every dependency up front so configuration and
// embedding-backend problems surface before the first scheduled run.
func (a *Application) buildScheduler(ctx context.Context) (*usecase.Scheduler, error) {
	cat, err := catalog.Load(a.cfg.Classifier.KeywordsFile)
	if err != nil {
		return nil, fmt.Errorf("load keyword catalog: %w", err)
	}
	a.logger.Info("keyword catalog loaded", "categories", cat.Len())

	embedder := embeddings.NewOllamaClient(a.cfg.Embedding.Host, a.cfg.Embedding.Model)
	if err := embedder.Probe(ctx); err != nil {
		return nil, fmt.Errorf("probe embedding backend: %w", err)
	}

	index, err := classify.BuildIndex(ctx, cat, embedder)
	if err != nil {
		return nil, fmt.Errorf("build category index: %w", err)
	}

	classifier := classify.NewClassifier(index, embedder, a.cfg.Classifier.Threshold,
		a.logger.With("component", "classifier"))

	var notifier ports.Notifier
	tg := a.cfg.Notifications.Telegram
	if tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Feeds:      a.cfg.Feeds,
		Source:     feed.NewRSSSource(a.logger.With("component", "feed")),
		Classifier: classifier,
		Sanitizer:  sanitize.New(),
		Store:      storage.NewFileRepository(a.cfg.Output.Dir),
		Notifier:   notifier,
		Logger:     a.logger.With("component", "pipeline"),
	})

	driver, err := scheduler.NewDailyScheduler(a.cfg.Scheduler.Time, a.cfg.Scheduler.Location())
	if err != nil {
		return nil, fmt.Errorf("configure scheduler: %w", err)
	}

	return usecase.NewScheduler(driver, pipeline, a.logger.With("component", "scheduler")), nil
}
