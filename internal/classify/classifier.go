package classify

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"NewsSieve/internal/domain"
	"NewsSieve/internal/ports"
)

// Classifier tags article titles with the categories whose embeddings they
// exceed the similarity threshold against. Immutable after construction.
type Classifier struct {
	index     *Index
	embedder  ports.Embedder
	threshold float64
	logger    *slog.Logger
}

var _ ports.Classifier = (*Classifier)(nil)

// NewClassifier wires the prebuilt index with the embedder and threshold.
func NewClassifier(index *Index, embedder ports.Embedder, threshold float64, logger *slog.Logger) *Classifier {
	return &Classifier{
		index:     index,
		embedder:  embedder,
		threshold: threshold,
		logger:    logger,
	}
}

// Classify embeds the title and returns every category id whose cosine
// similarity strictly exceeds the threshold. A tie at exactly the
// threshold does not match. An empty result is a normal outcome.
func (c *Classifier) Classify(ctx context.Context, title string) ([]string, error) {
	titleVec, err := c.embedder.Embed(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("embed title: %w", err)
	}

	var matched []string
	for _, entry := range c.index.Entries() {
		if len(entry.Vector) != len(titleVec) {
			return nil, fmt.Errorf("category %s: got %d dimensions, title has %d: %w",
				entry.ID, len(entry.Vector), len(titleVec), domain.ErrVectorShape)
		}

		sim := Cosine(titleVec, entry.Vector)
		c.debug("similarity", "category", entry.ID, "value", sim)
		if sim > c.threshold {
			matched = append(matched, entry.ID)
		}
	}

	return matched, nil
}

// Cosine computes the cosine similarity of two equal-length vectors.
// A zero vector on either side yields 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}

func (c *Classifier) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
