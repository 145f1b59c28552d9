// Package scoring computes brand match scores for catalog styles.
package scoring

import (
	"strings"

	"github.com/Maiuran1404/brandmatch/internal/taxonomy"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// Config contains the scoring point budget and thresholds.
type Config struct {
	// ColorDominantPoints is awarded when the style's color affinity contains
	// the brand's dominant temperature bucket.
	ColorDominantPoints float64 `json:"color_dominant_points"`

	// ColorDistributionPoints is the maximum bonus proportional to the summed
	// distribution weight of the style's affine buckets.
	ColorDistributionPoints float64 `json:"color_distribution_points"`

	// ColorNeutralFallbackPoints is awarded instead when the style misses the
	// dominant bucket but the brand is neutral. Neutral brands are compatible
	// with everything.
	ColorNeutralFallbackPoints float64 `json:"color_neutral_fallback_points"`

	// IndustryMatchPoints is awarded for a substring match (either direction)
	// between the brand industry and any of the style's industry keywords.
	IndustryMatchPoints float64 `json:"industry_match_points"`

	// IndustryPartialPoints is the partial credit for a supplied but
	// unmatched industry.
	IndustryPartialPoints float64 `json:"industry_partial_points"`

	// IndustryUnspecifiedPoints is the flat award when no industry is supplied.
	IndustryUnspecifiedPoints float64 `json:"industry_unspecified_points"`

	// BasePoints is the unconditional variety floor so no style scores zero.
	BasePoints float64 `json:"base_points"`

	// MaxScore caps the combined score (brand score plus history boost).
	MaxScore int `json:"max_score"`

	// PreferenceBoostThreshold is the history boost at which the match reason
	// switches to the preference phrasing.
	PreferenceBoostThreshold float64 `json:"preference_boost_threshold"`

	// StrongMatchThreshold is the total score at which brand/industry match
	// phrases are composed.
	StrongMatchThreshold int `json:"strong_match_threshold"`

	// VersatileThreshold is the total score for the versatile phrasing.
	VersatileThreshold int `json:"versatile_threshold"`

	// NoProfileScore is the flat score for users without a company record.
	NoProfileScore int `json:"no_profile_score"`
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		ColorDominantPoints:        30,
		ColorDistributionPoints:    10,
		ColorNeutralFallbackPoints: 20,
		IndustryMatchPoints:        30,
		IndustryPartialPoints:      10,
		IndustryUnspecifiedPoints:  15,
		BasePoints:                 20,
		MaxScore:                   100,
		PreferenceBoostThreshold:   15,
		StrongMatchThreshold:       70,
		VersatileThreshold:         50,
		NoProfileScore:             50,
	}
}

// Calculator computes brand match scores against an injected taxonomy table.
type Calculator struct {
	config *Config
	table  taxonomy.Table
}

// NewCalculator creates a scoring calculator.
// A nil config uses the default configuration; a nil table uses the compiled-in
// taxonomy.
func NewCalculator(config *Config, table taxonomy.Table) *Calculator {
	if config == nil {
		config = DefaultConfig()
	}
	if table == nil {
		table = taxonomy.Default()
	}
	return &Calculator{config: config, table: table}
}

// Components contains the breakdown of a brand match score calculation.
type Components struct {
	ColorPoints     float64 `json:"color_points"`
	IndustryPoints  float64 `json:"industry_points"`
	BasePoints      float64 `json:"base_points"`
	DominantMatch   bool    `json:"dominant_match"`
	IndustryMatch   bool    `json:"industry_match"`
	MatchedIndustry string  `json:"matched_industry,omitempty"`
	FinalScore      int     `json:"final_score"`
}

// Score computes the brand match score for one style axis.
func (c *Calculator) Score(axis string, profile models.ColorProfile, industry string) int {
	return c.ScoreComponents(axis, profile, industry).FinalScore
}

// ScoreComponents returns the individual components of the brand match score.
//
// The additive budget:
//
//	color    0-40  (dominant-bucket match 30 + up to 10 proportional to the
//	               summed distribution weight of the style's affine buckets;
//	               neutral brands without a match get 20 instead)
//	industry 0-30  (substring match 30, supplied-but-unmatched 10, absent 15)
//	base     20    (unconditional variety floor)
//
// The sum reaches at most 90 before clamping; the history boost added by the
// caller can push the combined total past 100, which is clamped there too.
func (c *Calculator) ScoreComponents(axis string, profile models.ColorProfile, industry string) Components {
	char := c.table.Lookup(axis)
	comp := Components{BasePoints: c.config.BasePoints}

	// Color affinity
	if char.HasAffinity(profile.Dominant) {
		comp.DominantMatch = true
		affineWeight := 0.0
		for _, bucket := range char.ColorAffinity {
			affineWeight += profile.Weight(bucket)
		}
		comp.ColorPoints = c.config.ColorDominantPoints + c.config.ColorDistributionPoints*affineWeight
	} else if profile.Dominant == models.BucketNeutral {
		comp.ColorPoints = c.config.ColorNeutralFallbackPoints
	}

	// Industry affinity
	switch {
	case industry == "":
		comp.IndustryPoints = c.config.IndustryUnspecifiedPoints
	default:
		if matched, keyword := matchIndustry(industry, char.IndustryAffinity); matched {
			comp.IndustryMatch = true
			comp.MatchedIndustry = keyword
			comp.IndustryPoints = c.config.IndustryMatchPoints
		} else {
			comp.IndustryPoints = c.config.IndustryPartialPoints
		}
	}

	comp.FinalScore = c.Clamp(comp.ColorPoints + comp.IndustryPoints + comp.BasePoints)
	return comp
}

// Clamp converts a raw point total to an integer score in [0, MaxScore].
func (c *Calculator) Clamp(points float64) int {
	score := int(points)
	if score > c.config.MaxScore {
		return c.config.MaxScore
	}
	if score < 0 {
		return 0
	}
	return score
}

// Config returns the current scoring configuration.
func (c *Calculator) Config() *Config {
	return c.config
}

// Table returns the taxonomy table the calculator scores against.
func (c *Calculator) Table() taxonomy.Table {
	return c.table
}

// matchIndustry reports whether the brand industry substring-matches any of
// the style's industry keywords, in either direction. Matching is
// case-insensitive.
func matchIndustry(industry string, keywords []string) (bool, string) {
	needle := strings.ToLower(strings.TrimSpace(industry))
	if needle == "" {
		return false, ""
	}
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(needle, k) || strings.Contains(k, needle) {
			return true, kw
		}
	}
	return false, ""
}
