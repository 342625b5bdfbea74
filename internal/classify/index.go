package classify

import (
	"context"
	"fmt"

	"NewsSieve/internal/catalog"
	"NewsSieve/internal/domain"
	"NewsSieve/internal/ports"
)

// CategoryVector pairs a category id with its precomputed embedding.
type CategoryVector struct {
	ID     string
	Vector []float32
}

// Index holds one embedding per category, in catalog order. Built once at
// startup and read-only afterwards.
type Index struct {
	entries []CategoryVector
}

// BuildIndex embeds each category's space-joined keyword string. A failure
// on any single category aborts the whole build: without a complete index
// no classification can proceed.
func BuildIndex(ctx context.Context, cat catalog.Catalog, embedder ports.Embedder) (*Index, error) {
	entries := make([]CategoryVector, 0, cat.Len())

	for _, c := range cat.Categories() {
		vec, err := embedder.Embed(ctx, c.CombinedKeywords())
		if err != nil {
			return nil, fmt.Errorf("embed category %s: %w: %w", c.ID, domain.ErrEmbeddingUnavailable, err)
		}
		entries = append(entries, CategoryVector{ID: c.ID, Vector: vec})
	}

	return &Index{entries: entries}, nil
}

// Entries returns the category vectors in build order.
func (i *Index) Entries() []CategoryVector {
	if i == nil {
		return nil
	}
	return i.entries
}

// Len returns the number of indexed categories.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}
