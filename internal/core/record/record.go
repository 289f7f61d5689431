// Package record defines the displayable item every feed is reshaped into
package record

import "time"

// Record is a single item from a fetched list (match, article, title)
// it is treated as immutable once a fetch has produced it
type Record struct {
	ID          string            `json:"id"`
	CategoryKey string            `json:"category"`
	StateCode   int               `json:"state"`
	Timestamp   *time.Time        `json:"timestamp,omitempty"`
	Title       string            `json:"title"`
	Subtitle    string            `json:"subtitle,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
	Link        string            `json:"link,omitempty"`
	Home        *Side             `json:"home,omitempty"`
	Away        *Side             `json:"away,omitempty"`
	Clock       string            `json:"clock,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
}

// Side is one team of a match record
type Side struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
	Score   *int   `json:"score,omitempty"`
	Yellow  int    `json:"yellow_cards,omitempty"`
	Red     int    `json:"red_cards,omitempty"`
}

// Category returns the category key, used as an extractor for grouping
func Category(r Record) string { return r.CategoryKey }

// State returns the raw state code, used as an extractor for grouping
func State(r Record) int { return r.StateCode }

// Newer orders records by timestamp descending, records without one sort last
func Newer(a, b Record) int {
	switch {
	case a.Timestamp == nil && b.Timestamp == nil:
		return 0
	case a.Timestamp == nil:
		return 1
	case b.Timestamp == nil:
		return -1
	}
	return b.Timestamp.Compare(*a.Timestamp)
}

// Sooner orders records by timestamp ascending, records without one sort last
func Sooner(a, b Record) int {
	switch {
	case a.Timestamp == nil && b.Timestamp == nil:
		return 0
	case a.Timestamp == nil:
		return 1
	case b.Timestamp == nil:
		return -1
	}
	return a.Timestamp.Compare(*b.Timestamp)
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int { return &v }
