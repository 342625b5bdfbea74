package usecase

import (
	"NewsSieve/internal/domain"
	"NewsSieve/internal/ports"
)

// Normalize maps a raw feed entry into the output article record. It
// returns ok=false when the category set is empty: such entries are
// dropped, never emitted. An entry without any text body fails with
// domain.ErrMissingContent, which callers recover per entry.
func Normalize(entry domain.RawEntry, sourceID string, categories []string, sanitizer ports.Sanitizer) (domain.Article, bool, error) {
	if len(categories) == 0 {
		return domain.Article{}, false, nil
	}

	if !entry.HasBody() {
		return domain.Article{}, false, domain.ErrMissingContent
	}

	body := entry.Summary
	if body == "" {
		body = entry.Description
	}

	return domain.Article{
		Title:      entry.Title,
		Categories: categories,
		Text:       sanitizer.PlainText(body),
		Image:      extractImage(entry, sanitizer),
		Source:     sourceID,
		Link:       entry.Link,
		Published:  entry.Published,
	}, true, nil
}

// extractImage applies the ordered image preference: a structured media
// reference wins, then the first <img> found in the content blocks.
// Absence of an image is not an error.
func extractImage(entry domain.RawEntry, sanitizer ports.Sanitizer) string {
	if entry.MediaURL != "" {
		return entry.MediaURL
	}

	for _, block := range entry.ContentBlocks {
		if src, ok := sanitizer.FirstImageURL(block); ok {
			return src
		}
	}

	return ""
}
