package sanitize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"NewsSieve/internal/ports"
)

// GoquerySanitizer strips markup from HTML fragments while preserving the
// document-order text content.
type GoquerySanitizer struct{}

var _ ports.Sanitizer = GoquerySanitizer{}

// New returns the goquery-backed sanitizer.
func New() GoquerySanitizer {
	return GoquerySanitizer{}
}

// PlainText removes all tags and returns the remaining text. Empty or
// unparseable input yields an empty string.
func (GoquerySanitizer) PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(doc.Text())
}

// FirstImageURL returns the src of the first <img> in the fragment.
func (GoquerySanitizer) FirstImageURL(html string) (string, bool) {
	if strings.TrimSpace(html) == "" {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	src, exists := doc.Find("img").First().Attr("src")
	if !exists || src == "" {
		return "", false
	}

	return src, true
}
