package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(embeddingHostEnv, "")
	t.Setenv(outputDirEnv, "")

	cfg := Load()

	if cfg.Classifier.Threshold != 0.6 {
		t.Fatalf("Threshold = %v, want 0.6", cfg.Classifier.Threshold)
	}
	if cfg.Classifier.KeywordsFile != "keywords.tsv" {
		t.Fatalf("KeywordsFile = %q", cfg.Classifier.KeywordsFile)
	}
	if len(cfg.Feeds) == 0 {
		t.Fatal("expected default feeds")
	}
	if cfg.Scheduler.Location() == nil {
		t.Fatal("expected resolved timezone")
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte(`
feeds:
  bbc: "https://feeds.bbci.co.uk/news/rss.xml"
classifier:
  threshold: 0.75
scheduler:
  time: "06:30"
  timezone: "UTC"
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(embeddingModelEnv, "all-minilm")
	t.Setenv(outputDirEnv, "/tmp/batches")

	cfg := Load()

	if cfg.Classifier.Threshold != 0.75 {
		t.Fatalf("Threshold = %v, want 0.75", cfg.Classifier.Threshold)
	}
	if cfg.Scheduler.Time != "06:30" {
		t.Fatalf("Scheduler.Time = %q, want 06:30", cfg.Scheduler.Time)
	}
	if len(cfg.Feeds) != 1 || cfg.Feeds["bbc"] == "" {
		t.Fatalf("Feeds not taken from file: %v", cfg.Feeds)
	}
	if cfg.Embedding.Model != "all-minilm" {
		t.Fatalf("env override lost: %q", cfg.Embedding.Model)
	}
	if cfg.Output.Dir != "/tmp/batches" {
		t.Fatalf("env override lost: %q", cfg.Output.Dir)
	}
	// untouched defaults survive the merge
	if cfg.Embedding.Host != "http://localhost:11434" {
		t.Fatalf("default host lost: %q", cfg.Embedding.Host)
	}
}
