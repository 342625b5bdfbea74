package classify

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"NewsSieve/internal/catalog"
	"NewsSieve/internal/domain"
)

// stubEmbedder maps exact input text to a fixed vector.
type stubEmbedder struct {
	vectors map[string][]float32
	failOn  string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.failOn != "" && text == s.failOn {
		return nil, errors.New("backend down")
	}
	vec, ok := s.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no stub vector for %q", text)
	}
	return vec, nil
}

func loadCatalog(t *testing.T, tsv string) catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keywords.tsv")
	if err := os.WriteFile(path, []byte(tsv), 0o644); err != nil {
		t.Fatalf("write tsv: %v", err)
	}
	cat, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func TestBuildIndexKeepsCatalogOrder(t *testing.T) {
	t.Parallel()

	cat := loadCatalog(t, "tech\tai, software\nsports\tfootball\n")
	emb := &stubEmbedder{vectors: map[string][]float32{
		"ai software": {1, 0},
		"football":    {0, 1},
	}}

	idx, err := BuildIndex(context.Background(), cat, emb)
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	if idx.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", idx.Len())
	}
	if idx.Entries()[0].ID != "tech" || idx.Entries()[1].ID != "sports" {
		t.Fatalf("unexpected order: %v", idx.Entries())
	}
}

func TestBuildIndexFailsWholesale(t *testing.T) {
	t.Parallel()

	cat := loadCatalog(t, "tech\tai\nsports\tfootball\n")
	emb := &stubEmbedder{
		vectors: map[string][]float32{"ai": {1, 0}},
		failOn:  "football",
	}

	_, err := BuildIndex(context.Background(), cat, emb)
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("expected ErrEmbeddingUnavailable, got %v", err)
	}
}

func TestClassifyStrictThreshold(t *testing.T) {
	t.Parallel()

	title := "New AI Model Released"
	titleVec := []float32{0.6, 0.8}
	techVec := []float32{1, 0}

	emb := &stubEmbedder{vectors: map[string][]float32{
		"ai":  techVec,
		title: titleVec,
	}}

	cat := loadCatalog(t, "tech\tai\n")
	idx, err := BuildIndex(context.Background(), cat, emb)
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	// A similarity equal to the threshold must not match.
	exact := Cosine(titleVec, techVec)
	atThreshold := NewClassifier(idx, emb, exact, nil)
	got, err := atThreshold.Classify(context.Background(), title)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("tie at threshold should not match, got %v", got)
	}

	// Any threshold strictly below the similarity does.
	below := NewClassifier(idx, emb, exact-1e-9, nil)
	got, err = below.Classify(context.Background(), title)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"tech"}) {
		t.Fatalf("expected [tech], got %v", got)
	}
}

func TestClassifyReturnsEachCategoryOnce(t *testing.T) {
	t.Parallel()

	// A repeated catalog row must not produce two index entries for the
	// same id, so a matching title carries the id exactly once.
	cat := loadCatalog(t, "tech\tai\ntech\tml\n")
	emb := &stubEmbedder{vectors: map[string][]float32{
		"ml":    {1, 0},
		"Title": {1, 0},
	}}

	idx, err := BuildIndex(context.Background(), cat, emb)
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}
	if idx.Len() != 1 {
		t.Fatalf("expected 1 index entry, got %d", idx.Len())
	}

	cl := NewClassifier(idx, emb, 0.5, nil)
	got, err := cl.Classify(context.Background(), "Title")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"tech"}) {
		t.Fatalf("expected [tech] exactly once, got %v", got)
	}
}

func TestClassifyZeroVectorIsNotRelevant(t *testing.T) {
	t.Parallel()

	emb := &stubEmbedder{vectors: map[string][]float32{
		"ai":        {0, 0},
		"Any Title": {1, 1},
	}}

	cat := loadCatalog(t, "tech\tai\n")
	idx, err := BuildIndex(context.Background(), cat, emb)
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	cl := NewClassifier(idx, emb, -0.5, nil)
	got, err := cl.Classify(context.Background(), "Any Title")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("zero vector must resolve to not relevant, got %v", got)
	}
}

func TestClassifyVectorShapeMismatch(t *testing.T) {
	t.Parallel()

	emb := &stubEmbedder{vectors: map[string][]float32{
		"ai":    {1, 0, 0},
		"Title": {1, 0},
	}}

	cat := loadCatalog(t, "tech\tai\n")
	idx, err := BuildIndex(context.Background(), cat, emb)
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	cl := NewClassifier(idx, emb, 0.5, nil)
	if _, err := cl.Classify(context.Background(), "Title"); !errors.Is(err, domain.ErrVectorShape) {
		t.Fatalf("expected ErrVectorShape, got %v", err)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	t.Parallel()

	emb := &stubEmbedder{vectors: map[string][]float32{
		"ai":       {0.9, 0.1},
		"football": {0.1, 0.9},
		"Title":    {0.8, 0.2},
	}}

	cat := loadCatalog(t, "tech\tai\nsports\tfootball\n")
	idx, err := BuildIndex(context.Background(), cat, emb)
	if err != nil {
		t.Fatalf("BuildIndex error: %v", err)
	}

	cl := NewClassifier(idx, emb, 0.6, nil)
	first, err := cl.Classify(context.Background(), "Title")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	second, err := cl.Classify(context.Background(), "Title")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classification not deterministic: %v vs %v", first, second)
	}
}

func TestCosineRange(t *testing.T) {
	t.Parallel()

	if got := Cosine([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Fatalf("identical vectors: %v, want 1", got)
	}
	if got := Cosine([]float32{1, 0}, []float32{-1, 0}); math.Abs(got+1) > 1e-9 {
		t.Fatalf("opposite vectors: %v, want -1", got)
	}
	if got := Cosine([]float32{1, 0}, []float32{1, 0, 0}); got != 0 {
		t.Fatalf("length mismatch should yield 0, got %v", got)
	}
}
