package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"NewsSieve/internal/domain"
	"NewsSieve/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Feeds      map[string]string
	Source     ports.FeedSource
	Classifier ports.Classifier
	Sanitizer  ports.Sanitizer
	Store      ports.ArticleStore
	Notifier   ports.Notifier
	Logger     *slog.Logger
}

// Pipeline implements the fetch-classify-normalize-persist workflow. All
// fields are set once at construction and never mutated between runs.
type Pipeline struct {
	feeds      map[string]string
	source     ports.FeedSource
	classifier ports.Classifier
	sanitizer  ports.Sanitizer
	store      ports.ArticleStore
	notifier   ports.Notifier
	logger     *slog.Logger
}

// RunReport summarizes one pipeline run: what was kept and what was
// skipped, instead of surfacing per-source failures as errors.
type RunReport struct {
	Articles       []domain.Article
	SkippedSources []string
	SkippedEntries int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		feeds:      deps.Feeds,
		source:     deps.Source,
		classifier: deps.Classifier,
		sanitizer:  deps.Sanitizer,
		store:      deps.Store,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
	}
}

// Run executes one full pass over the configured feeds. A failing source
// is skipped and never aborts the remaining sources; a failing entry is
// skipped and never aborts its source. The collected batch is handed to
// the store exactly once.
func (p *Pipeline) Run(ctx context.Context, now time.Time) (RunReport, error) {
	var report RunReport

	for _, name := range p.sourceNames() {
		url := p.feeds[name]

		entries, err := p.source.Fetch(ctx, url)
		if err != nil {
			p.warn("source skipped", "source", name, "url", url, "error", err)
			report.SkippedSources = append(report.SkippedSources, name)
			continue
		}

		p.info("source fetched", "source", name, "entries", len(entries))

		for _, entry := range entries {
			article, ok := p.processEntry(ctx, name, entry, &report)
			if !ok {
				continue
			}
			report.Articles = append(report.Articles, article)
		}
	}

	if p.store != nil {
		if err := p.store.SaveBatch(ctx, report.Articles, now); err != nil {
			return report, fmt.Errorf("persist batch: %w", err)
		}
	}

	p.info("run complete",
		"articles", len(report.Articles),
		"skipped_sources", len(report.SkippedSources),
		"skipped_entries", report.SkippedEntries)

	p.notify(ctx, report)

	return report, nil
}

// processEntry classifies and normalizes a single raw entry. Entries with
// no relevant category are dropped silently; classification or content
// failures are logged, counted, and recovered.
func (p *Pipeline) processEntry(ctx context.Context, source string, entry domain.RawEntry, report *RunReport) (domain.Article, bool) {
	categories, err := p.classifier.Classify(ctx, entry.Title)
	if err != nil {
		p.warn("entry skipped: classification failed", "source", source, "title", entry.Title, "error", err)
		report.SkippedEntries++
		return domain.Article{}, false
	}

	if len(categories) == 0 {
		return domain.Article{}, false
	}

	article, ok, err := Normalize(entry, source, categories, p.sanitizer)
	if err != nil {
		p.warn("entry skipped", "source", source, "title", entry.Title, "error", err)
		report.SkippedEntries++
		return domain.Article{}, false
	}

	return article, ok
}

// sourceNames returns feed names in sorted order so runs are deterministic.
func (p *Pipeline) sourceNames() []string {
	names := make([]string, 0, len(p.feeds))
	for name := range p.feeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Pipeline) notify(ctx context.Context, report RunReport) {
	if p.notifier == nil || len(report.Articles) == 0 {
		return
	}

	if err := p.notifier.PublishDigest(ctx, buildDigest(report)); err != nil {
		p.warn("digest delivery failed", "error", err)
	}
}

// buildDigest renders a short Markdown summary of the run.
func buildDigest(report RunReport) string {
	msg := fmt.Sprintf("*%d matching articles*\n", len(report.Articles))
	for _, article := range report.Articles {
		msg += fmt.Sprintf("- %s (%s)\n%s\n", article.Title, article.Source, article.Link)
	}
	if len(report.SkippedSources) > 0 {
		msg += fmt.Sprintf("skipped sources: %d\n", len(report.SkippedSources))
	}
	return msg
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
