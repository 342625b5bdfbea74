package domain

// RawEntry is a read-only view of a single feed item as delivered by a
// feed source. Optional fields are empty when the feed does not carry them.
type RawEntry struct {
	Title         string
	Link          string
	Summary       string
	Description   string
	MediaURL      string
	ContentBlocks []string
	Published     string
}

// HasBody reports whether the entry carries any text body at all.
func (e RawEntry) HasBody() bool {
	return e.Summary != "" || e.Description != ""
}

// Article is the pipeline output record: a feed entry that matched at
// least one keyword category, with its body stripped to plain text.
type Article struct {
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
	Text       string   `json:"text"`
	Image      string   `json:"image"`
	Source     string   `json:"source"`
	Link       string   `json:"link"`
	Published  string   `json:"published"`
}
