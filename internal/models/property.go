package models

import "time"

// Property represents a tracked property listing.
// Floor, TotalFloors, and BuiltYear are pointers because listings imported
// from external sources frequently omit them; the context assembler renders
// missing values as an explicit "unknown" so prompts stay structurally
// consistent.
type Property struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	PropertyType string    `json:"property_type"` // "apartment", "officetel", "villa", "house"
	AskingPrice  int64     `json:"asking_price"`  // in 10k KRW units
	AreaSqm      float64   `json:"area_sqm"`
	Floor        *int      `json:"floor,omitempty"`
	TotalFloors  *int      `json:"total_floors,omitempty"`
	BuiltYear    *int      `json:"built_year,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewsItem is a crawled or ingested news article linked to a property.
type NewsItem struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// ReviewItem is a visit review linked to a property.
type ReviewItem struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary,omitempty"`
	Content    string    `json:"content,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
