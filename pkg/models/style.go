// Package models contains domain models for brandmatch.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DeliverableType is the kind of creative asset being produced.
type DeliverableType string

// Known deliverable types. The catalog is open-ended; these are the ones the
// studio currently commissions styles for.
const (
	DeliverableInstagramPost     DeliverableType = "instagram_post"
	DeliverableLaunchVideo       DeliverableType = "launch_video"
	DeliverablePresentationSlide DeliverableType = "presentation_slide"
	DeliverableBanner            DeliverableType = "banner"
	DeliverableLogo              DeliverableType = "logo"
)

// StyleReference is a curated catalog entry representing one design direction
// for a given deliverable type. Entries are created and ordered by the content
// team; usage_count is incremented when an end user selects the style.
type StyleReference struct {
	ID              string          `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Description     string          `db:"description" json:"description"`
	ImageURL        string          `db:"image_url" json:"imageUrl"`
	DeliverableType DeliverableType `db:"deliverable_type" json:"deliverableType"`
	StyleAxis       string          `db:"style_axis" json:"styleAxis"`
	SubStyle        string          `db:"sub_style" json:"subStyle,omitempty"`
	SemanticTags    JSONStringArray `db:"semantic_tags" json:"semanticTags,omitempty"`
	Industries      JSONStringArray `db:"industries" json:"industries,omitempty"`
	MoodKeywords    JSONStringArray `db:"mood_keywords" json:"moodKeywords,omitempty"`
	UsageCount      int             `db:"usage_count" json:"usageCount"`
	FeaturedOrder   int             `db:"featured_order" json:"featuredOrder"`
	DisplayOrder    int             `db:"display_order" json:"displayOrder"`
	IsActive        bool            `db:"is_active" json:"isActive"`
}

// ScoredStyle is a request-scoped scoring result. It is never persisted and
// is recomputed on every call.
type ScoredStyle struct {
	StyleReference

	BrandMatchScore int                `json:"brandMatchScore"`
	MatchReason     string             `json:"matchReason"`
	MatchReasons    []string           `json:"matchReasons,omitempty"`
	HistoryBoost    float64            `json:"historyBoost,omitempty"`
	ScoreFactors    map[string]float64 `json:"scoreFactors,omitempty"`
}

// StyleSelection records that a user picked a style for a deliverable.
// Selections feed the history booster.
type StyleSelection struct {
	ID              int64           `db:"id" json:"id"`
	UserID          string          `db:"user_id" json:"userId"`
	StyleID         string          `db:"style_id" json:"styleId"`
	StyleAxis       string          `db:"style_axis" json:"styleAxis"`
	DeliverableType DeliverableType `db:"deliverable_type" json:"deliverableType"`
	SelectedAtEpoch int64           `db:"selected_at_epoch" json:"selectedAtEpoch"`
}

// AxisSelectionCount aggregates a user's selections for one style axis.
type AxisSelectionCount struct {
	StyleAxis       string `db:"style_axis" json:"styleAxis"`
	Count           int    `db:"count" json:"count"`
	LastSelectedAt  int64  `db:"last_selected_at_epoch" json:"lastSelectedAtEpoch"`
	FirstSelectedAt int64  `db:"first_selected_at_epoch" json:"firstSelectedAtEpoch"`
}

// JSONStringArray is a custom type for handling JSON string arrays in SQL columns.
type JSONStringArray []string

// Scan implements sql.Scanner for JSONStringArray.
func (j *JSONStringArray) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("JSONStringArray: unsupported type %T", src)
	}

	if len(data) == 0 {
		*j = nil
		return nil
	}

	return json.Unmarshal(data, j)
}

// Value implements driver.Valuer for JSONStringArray.
func (j JSONStringArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}
