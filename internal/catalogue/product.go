package catalogue

import (
	"time"
)

// Product is the canonical record every feed schema variant is mapped into.
type Product struct {
	ID         string    `json:"id"`                   // Feed-provided id, or feed-{index}
	Title      string    `json:"title"`                // Required
	Price      *float64  `json:"price"`                // Nil unless the price string parsed
	Currency   *string   `json:"currency"`             // 3-letter code, upper, present iff price is
	Brand      *string   `json:"brand"`
	Tags       []string  `json:"tags"`                 // Subset of Tags(), may be empty
	URL        string    `json:"url"`                  // Required
	Image      *string   `json:"image"`
	SourceFeed *string   `json:"sourceFeed,omitempty"` // Feed URL that last produced this id
	ImportedAt time.Time `json:"importedAt,omitempty"`
}

// Feed is a registered feed source.
type Feed struct {
	ID        string    `json:"id"` // UUID
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Sustainability tag labels in presentation order.
const (
	TagRecycled = "Recycled"
	TagUpcycled = "Upcycled"
	TagHandmade = "Handmade"
	TagOrganic  = "Organic"
)

// Tags returns all valid sustainability tags in canonical order.
func Tags() []string {
	return []string{TagRecycled, TagUpcycled, TagHandmade, TagOrganic}
}

// IsValidTag reports whether s is one of the canonical tag labels.
func IsValidTag(s string) bool {
	for _, t := range Tags() {
		if t == s {
			return true
		}
	}
	return false
}
