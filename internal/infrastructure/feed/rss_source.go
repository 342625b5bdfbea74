package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"NewsSieve/internal/domain"
	"NewsSieve/internal/ports"
)

// RSSSource fetches and parses RSS/Atom feeds into raw entries.
type RSSSource struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

var _ ports.FeedSource = (*RSSSource)(nil)

// NewRSSSource builds a feed source with a bounded fetch timeout.
func NewRSSSource(logger *slog.Logger) *RSSSource {
	parser := gofeed.NewParser()
	parser.UserAgent = "NewsSieve/1.0"
	return &RSSSource{parser: parser, logger: logger}
}

// Fetch retrieves one feed URL and maps its items to raw entries.
func (s *RSSSource) Fetch(ctx context.Context, url string) ([]domain.RawEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	parsed, err := s.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}

	entries := make([]domain.RawEntry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, mapItem(item))
	}

	s.debug("feed fetched", "url", url, "entries", len(entries))
	return entries, nil
}

// mapItem converts a gofeed item into the pipeline's raw entry shape.
// Summary carries the RSS description; Description carries the encoded
// content body used as fallback text.
func mapItem(item *gofeed.Item) domain.RawEntry {
	entry := domain.RawEntry{
		Title:       strings.TrimSpace(item.Title),
		Link:        item.Link,
		Summary:     item.Description,
		Description: item.Content,
		MediaURL:    structuredMediaURL(item),
		Published:   item.Published,
	}

	if item.Content != "" {
		entry.ContentBlocks = []string{item.Content}
	}

	return entry
}

// structuredMediaURL resolves a direct media reference: the feed-level
// item image, an image-typed enclosure, or a media:content extension.
func structuredMediaURL(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, content := range media["content"] {
			if url := content.Attrs["url"]; url != "" {
				return url
			}
		}
	}

	return ""
}

func (s *RSSSource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
