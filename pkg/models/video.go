package models

// VideoReference is a curated video catalog entry. Video references carry
// richer context metadata than static styles: the intents, platforms, and
// topics they were produced for.
type VideoReference struct {
	ID            string          `db:"id" json:"id"`
	Title         string          `db:"title" json:"title"`
	Description   string          `db:"description" json:"description"`
	VideoURL      string          `db:"video_url" json:"videoUrl"`
	ThumbnailURL  string          `db:"thumbnail_url" json:"thumbnailUrl,omitempty"`
	StyleAxis     string          `db:"style_axis" json:"styleAxis"`
	Intents       JSONStringArray `db:"intents" json:"intents,omitempty"`
	Platforms     JSONStringArray `db:"platforms" json:"platforms,omitempty"`
	Topics        JSONStringArray `db:"topics" json:"topics,omitempty"`
	Industries    JSONStringArray `db:"industries" json:"industries,omitempty"`
	MoodKeywords  JSONStringArray `db:"mood_keywords" json:"moodKeywords,omitempty"`
	UsageCount    int             `db:"usage_count" json:"usageCount"`
	FeaturedOrder int             `db:"featured_order" json:"featuredOrder"`
	DisplayOrder  int             `db:"display_order" json:"displayOrder"`
	IsActive      bool            `db:"is_active" json:"isActive"`
}

// ScoredVideoReference is a request-scoped video scoring result.
type ScoredVideoReference struct {
	VideoReference

	MatchScore   int                `json:"matchScore"`
	MatchReason  string             `json:"matchReason"`
	ScoreFactors map[string]float64 `json:"scoreFactors,omitempty"`
}
