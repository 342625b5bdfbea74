package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Category is a named topical bucket defined by an ordered keyword list.
type Category struct {
	ID       string
	Keywords []string
}

// Catalog holds the loaded categories in source order.
type Catalog struct {
	categories []Category
}

// Load reads a TSV file where each record is (category, comma-separated
// keywords). Records with a field count other than two are skipped; this
// leniency is deliberate, not an error. Category ids are unique: when a
// file repeats an id, the later keywords win. An unreadable file is fatal.
func Load(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open keywords file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return Catalog{}, fmt.Errorf("read keywords file %s: %w", path, err)
	}

	var categories []Category
	position := make(map[string]int)
	for _, record := range records {
		if len(record) != 2 {
			continue
		}

		keywords := splitKeywords(record[1])
		if len(keywords) == 0 {
			continue
		}

		id := strings.TrimSpace(record[0])

		// Ids are unique: a repeated id replaces the earlier keywords
		// (last row wins) but keeps the first row's position.
		if at, seen := position[id]; seen {
			categories[at].Keywords = keywords
			continue
		}

		position[id] = len(categories)
		categories = append(categories, Category{ID: id, Keywords: keywords})
	}

	return Catalog{categories: categories}, nil
}

// Categories returns all categories in source order.
func (c Catalog) Categories() []Category {
	return c.categories
}

// Len returns the number of loaded categories.
func (c Catalog) Len() int {
	return len(c.categories)
}

// CombinedKeywords joins a category's keywords into the single string that
// gets embedded: one space-joined text per category, keyword order kept.
func (cat Category) CombinedKeywords() string {
	return strings.Join(cat.Keywords, " ")
}

func splitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return nil
	}
	return keywords
}
