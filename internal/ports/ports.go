package ports

import (
	"context"
	"time"

	"NewsSieve/internal/domain"
)

// FeedSource fetches and parses a single feed URL into raw entries.
type FeedSource interface {
	Fetch(ctx context.Context, url string) ([]domain.RawEntry, error)
}

// Embedder turns text into a fixed-length vector. Vectors produced by the
// same Embedder are comparable via cosine similarity.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Classifier tags a title with the keyword categories it is relevant to.
type Classifier interface {
	Classify(ctx context.Context, title string) ([]string, error)
}

// Sanitizer strips markup from HTML fragments.
type Sanitizer interface {
	PlainText(html string) string
	FirstImageURL(html string) (string, bool)
}

// ArticleStore persists one run's batch of matched articles.
type ArticleStore interface {
	SaveBatch(ctx context.Context, articles []domain.Article, runDate time.Time) error
}

// Notifier publishes a short run digest to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
