// Package video scores curated video references against chat context.
package video

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Maiuran1404/brandmatch/internal/db"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// stubVideoCatalog serves video references from memory.
type stubVideoCatalog struct {
	refs []*models.VideoReference
	err  error
}

func (c *stubVideoCatalog) ListStyleReferences(ctx context.Context, q db.CatalogQuery) ([]*models.StyleReference, error) {
	return nil, nil
}

func (c *stubVideoCatalog) GetStyleReferenceByID(ctx context.Context, id string) (*models.StyleReference, error) {
	return nil, nil
}

func (c *stubVideoCatalog) ListVideoReferences(ctx context.Context, q db.CatalogQuery) ([]*models.VideoReference, error) {
	return c.refs, c.err
}

// failingExtractor always errors, for fail-soft tests.
type failingExtractor struct{}

func (failingExtractor) ExtractStyleTerms(ctx context.Context, text string) ([]string, error) {
	return nil, errors.New("extractor offline")
}

func videoRef(id, axis string) *models.VideoReference {
	return &models.VideoReference{
		ID:        id,
		Title:     id,
		StyleAxis: axis,
		IsActive:  true,
	}
}

// VideoServiceSuite tests chat-driven video reference selection.
type VideoServiceSuite struct {
	suite.Suite
	catalog *stubVideoCatalog
}

func TestVideoServiceSuite(t *testing.T) {
	suite.Run(t, new(VideoServiceSuite))
}

func (s *VideoServiceSuite) SetupTest() {
	s.catalog = &stubVideoCatalog{}
}

func (s *VideoServiceSuite) service() *Service {
	return NewService(s.catalog, nil, nil)
}

// TestScoreGroups tests the per-signal point budgets.
func (s *VideoServiceSuite) TestScoreGroups() {
	ref := &models.VideoReference{
		ID:           "v-1",
		StyleAxis:    "tech",
		Intents:      models.JSONStringArray{"product launch"},
		Platforms:    models.JSONStringArray{"instagram", "tiktok"},
		Topics:       models.JSONStringArray{"saas"},
		Industries:   models.JSONStringArray{"technology"},
		MoodKeywords: models.JSONStringArray{"energetic"},
	}
	svc := s.service()

	tests := []struct {
		name    string
		chat    ChatContext
		factors map[string]float64
		score   int
	}{
		{
			name:    "intent_only",
			chat:    ChatContext{Intent: "product launch"},
			factors: map[string]float64{"intent": 35},
			score:   35,
		},
		{
			name:    "platform_case_insensitive",
			chat:    ChatContext{Platform: "Instagram"},
			factors: map[string]float64{"platform": 25},
			score:   25,
		},
		{
			name:    "topic_and_industry",
			chat:    ChatContext{Topic: "saas", Industry: "technology"},
			factors: map[string]float64{"topic": 15},
			score:   15,
		},
		{
			name: "style_axis_from_ai_reply",
			chat: ChatContext{AIResponse: "I'd suggest a tech look, energetic pacing"},
			// axis hit 20 + mood keyword 5
			factors: map[string]float64{"style": 25},
			score:   25,
		},
		{
			name:    "no_signals",
			chat:    ChatContext{},
			factors: map[string]float64{},
			score:   0,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			terms := svc.extractTerms(context.Background(), tt.chat.AIResponse)
			scored := svc.score(ref, tt.chat, terms)
			s.Equal(tt.score, scored.MatchScore)
			for k, v := range tt.factors {
				s.InDelta(v, scored.ScoreFactors[k], 1e-9, "factor %s", k)
			}
		})
	}
}

// TestQualityBonus tests the featured and popularity bonuses.
func (s *VideoServiceSuite) TestQualityBonus() {
	svc := s.service()

	ref := videoRef("v-1", "tech")
	ref.FeaturedOrder = 1
	ref.UsageCount = 3 // log2(4) = 2
	scored := svc.score(ref, ChatContext{}, nil)
	s.InDelta(7, scored.ScoreFactors["quality"], 1e-9)
	s.Equal(7, scored.MatchScore)

	// Popularity saturates at the cap.
	ref.UsageCount = 100000
	scored = svc.score(ref, ChatContext{}, nil)
	s.InDelta(10, scored.ScoreFactors["quality"], 1e-9)
}

// TestMatchReason tests reason phrasing.
func (s *VideoServiceSuite) TestMatchReason() {
	svc := s.service()
	ref := &models.VideoReference{
		ID:         "v-1",
		StyleAxis:  "tech",
		Intents:    models.JSONStringArray{"product launch"},
		Platforms:  models.JSONStringArray{"instagram"},
		Industries: models.JSONStringArray{"technology"},
	}

	scored := svc.score(ref, ChatContext{Intent: "product launch", Platform: "instagram", Industry: "technology"}, nil)
	s.Equal("Made for product launch · Works on instagram · Popular in technology", scored.MatchReason)

	scored = svc.score(videoRef("v-2", "bold"), ChatContext{}, nil)
	s.Equal("Reference picks for your brief", scored.MatchReason)
}

// TestAxisCapWithBackfill tests the two-per-axis diversity rule.
func (s *VideoServiceSuite) TestAxisCapWithBackfill() {
	// Five tech refs with a matching intent outscore the two bold refs.
	for i := 0; i < 5; i++ {
		ref := videoRef(fmt.Sprintf("tech-%d", i), "tech")
		ref.Intents = models.JSONStringArray{"product launch"}
		s.catalog.refs = append(s.catalog.refs, ref)
	}
	s.catalog.refs = append(s.catalog.refs, videoRef("bold-0", "bold"), videoRef("bold-1", "bold"))

	refs, err := s.service().ReferencesForChat(context.Background(), ChatContext{Intent: "product launch"}, 6)
	s.Require().NoError(err)
	s.Require().Len(refs, 6)

	// First pass admits two tech and both bold refs; backfill then readmits
	// the highest-scoring leftover tech refs to reach the limit.
	perAxis := map[string]int{}
	for _, r := range refs[:4] {
		perAxis[r.StyleAxis]++
	}
	s.Equal(2, perAxis["tech"])
	s.Equal(2, perAxis["bold"])
	s.Equal("tech", refs[4].StyleAxis)
	s.Equal("tech", refs[5].StyleAxis)
}

// TestDefaultLimit tests the default result cap.
func (s *VideoServiceSuite) TestDefaultLimit() {
	for i := 0; i < 10; i++ {
		s.catalog.refs = append(s.catalog.refs, videoRef(fmt.Sprintf("v-%d", i), fmt.Sprintf("axis-%d", i)))
	}
	refs, err := s.service().ReferencesForChat(context.Background(), ChatContext{}, 0)
	s.Require().NoError(err)
	s.Len(refs, DefaultLimit)
}

// TestEmptyCatalog tests the empty-catalog result.
func (s *VideoServiceSuite) TestEmptyCatalog() {
	refs, err := s.service().ReferencesForChat(context.Background(), ChatContext{}, 0)
	s.NoError(err)
	s.NotNil(refs)
	s.Empty(refs)
}

// TestCatalogErrorPropagates tests that store failures surface.
func (s *VideoServiceSuite) TestCatalogErrorPropagates() {
	s.catalog.err = errors.New("db down")
	_, err := s.service().ReferencesForChat(context.Background(), ChatContext{}, 0)
	s.Error(err)
}

// TestExtractorFailureIsSoft tests that extraction failure only drops the
// style signal.
func (s *VideoServiceSuite) TestExtractorFailureIsSoft() {
	ref := videoRef("v-1", "tech")
	ref.Intents = models.JSONStringArray{"product launch"}
	s.catalog.refs = []*models.VideoReference{ref}

	svc := NewService(s.catalog, failingExtractor{}, nil)
	refs, err := svc.ReferencesForChat(context.Background(), ChatContext{Intent: "product launch", AIResponse: "tech look"}, 0)
	s.Require().NoError(err)
	s.Require().Len(refs, 1)
	s.Equal(35, refs[0].MatchScore)
	s.NotContains(refs[0].ScoreFactors, "style")
}
