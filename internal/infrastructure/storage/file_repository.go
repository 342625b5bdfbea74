package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"NewsSieve/internal/domain"
	"NewsSieve/internal/ports"
)

// FileRepository writes each run's batch to a dated JSON file inside the
// output directory: {dir}/{YYYY-MM-DD}-news.json.
type FileRepository struct {
	dir string
}

var _ ports.ArticleStore = (*FileRepository)(nil)

// NewFileRepository wires the output directory; it is created on demand.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// SaveBatch serializes the full batch once per run, overwriting any earlier
// file for the same date.
func (r *FileRepository) SaveBatch(_ context.Context, articles []domain.Article, runDate time.Time) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if articles == nil {
		articles = []domain.Article{}
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	path := r.Path(runDate)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write batch file: %w", err)
	}

	return nil
}

// Path returns the output file location for a run date.
func (r *FileRepository) Path(runDate time.Time) string {
	return filepath.Join(r.dir, runDate.Format("2006-01-02")+"-news.json")
}
