package usecase

import (
	"errors"
	"testing"

	"NewsSieve/internal/domain"
	"NewsSieve/internal/infrastructure/sanitize"
)

func TestNormalizeDropsEmptyCategorySet(t *testing.T) {
	t.Parallel()

	entry := domain.RawEntry{Title: "t", Link: "l", Summary: "s"}
	_, ok, err := Normalize(entry, "src", nil, sanitize.New())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if ok {
		t.Fatal("entry with zero categories must be dropped")
	}
}

func TestNormalizeMissingContent(t *testing.T) {
	t.Parallel()

	entry := domain.RawEntry{Title: "t", Link: "l"}
	_, _, err := Normalize(entry, "src", []string{"tech"}, sanitize.New())
	if !errors.Is(err, domain.ErrMissingContent) {
		t.Fatalf("expected ErrMissingContent, got %v", err)
	}
}

func TestNormalizePrefersSummaryOverDescription(t *testing.T) {
	t.Parallel()

	entry := domain.RawEntry{
		Title:       "t",
		Link:        "l",
		Summary:     "<p>summary body</p>",
		Description: "<p>fallback body</p>",
	}

	article, ok, err := Normalize(entry, "src", []string{"tech"}, sanitize.New())
	if err != nil || !ok {
		t.Fatalf("Normalize: ok=%v err=%v", ok, err)
	}
	if article.Text != "summary body" {
		t.Fatalf("text = %q, want summary body", article.Text)
	}

	entry.Summary = ""
	article, ok, err = Normalize(entry, "src", []string{"tech"}, sanitize.New())
	if err != nil || !ok {
		t.Fatalf("Normalize: ok=%v err=%v", ok, err)
	}
	if article.Text != "fallback body" {
		t.Fatalf("text = %q, want fallback body", article.Text)
	}
}

func TestNormalizeImagePrecedence(t *testing.T) {
	t.Parallel()

	block := `<div><img src="https://e.example/embedded.png"></div>`

	// structured media reference wins over embedded HTML
	entry := domain.RawEntry{
		Title:         "t",
		Link:          "l",
		Summary:       "s",
		MediaURL:      "https://e.example/media.jpg",
		ContentBlocks: []string{block},
	}
	article, _, err := Normalize(entry, "src", []string{"tech"}, sanitize.New())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if article.Image != "https://e.example/media.jpg" {
		t.Fatalf("image = %q, want structured media url", article.Image)
	}

	// embedded HTML is the fallback
	entry.MediaURL = ""
	article, _, err = Normalize(entry, "src", []string{"tech"}, sanitize.New())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if article.Image != "https://e.example/embedded.png" {
		t.Fatalf("image = %q, want embedded img src", article.Image)
	}

	// neither present: empty string, not an error
	entry.ContentBlocks = nil
	article, _, err = Normalize(entry, "src", []string{"tech"}, sanitize.New())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if article.Image != "" {
		t.Fatalf("image = %q, want empty", article.Image)
	}
}

func TestNormalizePassesThroughFields(t *testing.T) {
	t.Parallel()

	entry := domain.RawEntry{
		Title:     "New AI Model Released",
		Link:      "https://example.com/ai",
		Summary:   "<p>Details</p>",
		Published: "Mon, 10 Aug 2026 08:00:00 GMT",
	}

	article, ok, err := Normalize(entry, "techcrunch", []string{"tech"}, sanitize.New())
	if err != nil || !ok {
		t.Fatalf("Normalize: ok=%v err=%v", ok, err)
	}
	if article.Source != "techcrunch" {
		t.Fatalf("source = %q", article.Source)
	}
	if article.Link != entry.Link {
		t.Fatalf("link = %q", article.Link)
	}
	if article.Published != entry.Published {
		t.Fatalf("published = %q", article.Published)
	}
	if len(article.Categories) != 1 || article.Categories[0] != "tech" {
		t.Fatalf("categories = %v", article.Categories)
	}
}
