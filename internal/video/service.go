// Package video scores curated video references against chat context. It is
// the context-aware sibling of the style scorer: instead of a brand palette,
// the signal comes from what the user is asking for in the intake chat.
package video

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Maiuran1404/brandmatch/internal/db"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// DefaultLimit is the number of references returned when no limit is requested.
const DefaultLimit = 6

// MaxPerAxis caps how many selected references may share one style axis.
// Unlike the static style list, video results tolerate two per axis before
// diversity kicks in.
const MaxPerAxis = 2

// ChatContext carries the intake-chat signals used for scoring.
type ChatContext struct {
	UserID     string `json:"userId"`
	Intent     string `json:"intent,omitempty"`
	Platform   string `json:"platform,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Industry   string `json:"industry,omitempty"`
	AIResponse string `json:"aiResponse,omitempty"`
}

// Config contains the per-signal point budgets.
type Config struct {
	IntentPoints       float64 `json:"intent_points"`        // 0-35
	PlatformPoints     float64 `json:"platform_points"`      // 0-25
	StylePoints        float64 `json:"style_points"`         // 0-30
	TopicPoints        float64 `json:"topic_points"`         // 0-10
	IndustryPoints     float64 `json:"industry_points"`      // 0-5, shares the topic group
	FeaturedBonus      float64 `json:"featured_bonus"`       // quality bonus for featured entries
	UsageBonusCap      float64 `json:"usage_bonus_cap"`      // cap on the popularity bonus
	StyleAxisPoints    float64 `json:"style_axis_points"`    // style group: extracted term names the axis
	StyleKeywordPoints float64 `json:"style_keyword_points"` // style group: per matched mood keyword
	MaxScore           int     `json:"max_score"`
}

// DefaultConfig returns the default video scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		IntentPoints:       35,
		PlatformPoints:     25,
		StylePoints:        30,
		TopicPoints:        10,
		IndustryPoints:     5,
		FeaturedBonus:      5,
		UsageBonusCap:      5,
		StyleAxisPoints:    20,
		StyleKeywordPoints: 5,
		MaxScore:           100,
	}
}

// Service scores and selects video references for intake chats.
type Service struct {
	catalog   db.CatalogReader
	extractor TermExtractor
	config    *Config
}

// NewService creates a video reference service. A nil extractor falls back to
// the keyword extractor; a nil config uses defaults.
func NewService(catalog db.CatalogReader, extractor TermExtractor, config *Config) *Service {
	if extractor == nil {
		extractor = NewKeywordExtractor(nil)
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Service{catalog: catalog, extractor: extractor, config: config}
}

// ReferencesForChat returns up to limit scored references for the chat
// context, capped at two per style axis with score-order backfill when the
// cap starves the result.
func (s *Service) ReferencesForChat(ctx context.Context, chat ChatContext, limit int) ([]models.ScoredVideoReference, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	refs, err := s.catalog.ListVideoReferences(ctx, db.CatalogQuery{})
	if err != nil {
		return nil, fmt.Errorf("fetch video catalog: %w", err)
	}
	if len(refs) == 0 {
		return []models.ScoredVideoReference{}, nil
	}

	styleTerms := s.extractTerms(ctx, chat.AIResponse)

	scored := make([]models.ScoredVideoReference, len(refs))
	for i, ref := range refs {
		scored[i] = s.score(ref, chat, styleTerms)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})

	return selectWithAxisCap(scored, limit, MaxPerAxis), nil
}

// score computes one candidate's weighted signal-group total.
func (s *Service) score(ref *models.VideoReference, chat ChatContext, styleTerms []string) models.ScoredVideoReference {
	factors := make(map[string]float64, 5)
	var reasons []string

	// Intent group (0-35)
	if chat.Intent != "" && matchesAnyFold(ref.Intents, chat.Intent) {
		factors["intent"] = s.config.IntentPoints
		reasons = append(reasons, fmt.Sprintf("Made for %s", chat.Intent))
	}

	// Platform group (0-25)
	if chat.Platform != "" && matchesAnyFold(ref.Platforms, chat.Platform) {
		factors["platform"] = s.config.PlatformPoints
		reasons = append(reasons, fmt.Sprintf("Works on %s", chat.Platform))
	}

	// AI-inferred style group (0-30)
	if stylePts := s.styleTermPoints(ref, styleTerms); stylePts > 0 {
		factors["style"] = stylePts
		reasons = append(reasons, "Matches the direction you described")
	}

	// Topic/industry group (0-15)
	topicPts := 0.0
	if chat.Topic != "" && matchesAnyFold(ref.Topics, chat.Topic) {
		topicPts += s.config.TopicPoints
	}
	if chat.Industry != "" && matchesAnyFold(ref.Industries, chat.Industry) {
		topicPts += s.config.IndustryPoints
		reasons = append(reasons, fmt.Sprintf("Popular in %s", chat.Industry))
	}
	if topicPts > 0 {
		factors["topic"] = topicPts
	}

	// Quality bonus (0-10): curated placement plus logarithmic popularity.
	quality := 0.0
	if ref.FeaturedOrder > 0 {
		quality += s.config.FeaturedBonus
	}
	if ref.UsageCount > 0 {
		usageBonus := math.Log2(float64(ref.UsageCount) + 1)
		if usageBonus > s.config.UsageBonusCap {
			usageBonus = s.config.UsageBonusCap
		}
		quality += usageBonus
	}
	if quality > 0 {
		factors["quality"] = quality
	}

	total := 0.0
	for _, v := range factors {
		total += v
	}
	score := int(total)
	if score > s.config.MaxScore {
		score = s.config.MaxScore
	}

	reason := "Reference picks for your brief"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, " · ")
	}

	return models.ScoredVideoReference{
		VideoReference: *ref,
		MatchScore:     score,
		MatchReason:    reason,
		ScoreFactors:   factors,
	}
}

// styleTermPoints scores extracted style terms against the candidate's axis
// and mood keywords, capped to the style group budget.
func (s *Service) styleTermPoints(ref *models.VideoReference, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}

	pts := 0.0
	for _, term := range terms {
		if strings.EqualFold(term, ref.StyleAxis) {
			pts += s.config.StyleAxisPoints
		} else if matchesAnyFold(ref.MoodKeywords, term) {
			pts += s.config.StyleKeywordPoints
		}
	}
	if pts > s.config.StylePoints {
		pts = s.config.StylePoints
	}
	return pts
}

// extractTerms runs the style-term extractor as a best-effort signal.
// Extraction failure degrades to no style signal, never to a failed request.
func (s *Service) extractTerms(ctx context.Context, aiResponse string) []string {
	if aiResponse == "" {
		return nil
	}
	terms, err := s.extractor.ExtractStyleTerms(ctx, aiResponse)
	if err != nil {
		log.Warn().Err(err).Msg("Style term extraction failed, scoring without style signal")
		return nil
	}
	return terms
}

// selectWithAxisCap admits candidates in score order, at most maxPerAxis per
// style axis, then backfills leftovers in score order when the cap starved
// the selection below limit.
func selectWithAxisCap(candidates []models.ScoredVideoReference, limit, maxPerAxis int) []models.ScoredVideoReference {
	selected := make([]models.ScoredVideoReference, 0, limit)
	taken := make([]bool, len(candidates))
	perAxis := make(map[string]int, len(candidates))

	for i, c := range candidates {
		if len(selected) >= limit {
			break
		}
		if perAxis[c.StyleAxis] >= maxPerAxis {
			continue
		}
		perAxis[c.StyleAxis]++
		taken[i] = true
		selected = append(selected, c)
	}

	for i, c := range candidates {
		if len(selected) >= limit {
			break
		}
		if !taken[i] {
			taken[i] = true
			selected = append(selected, c)
		}
	}

	return selected
}

// matchesAnyFold reports a case-insensitive bidirectional substring match
// between s and any list entry.
func matchesAnyFold(list []string, s string) bool {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "" {
		return false
	}
	for _, item := range list {
		candidate := strings.ToLower(strings.TrimSpace(item))
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return true
		}
	}
	return false
}
