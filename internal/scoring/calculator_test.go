// Package scoring computes brand match scores for catalog styles.
package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Maiuran1404/brandmatch/internal/brand"
	"github.com/Maiuran1404/brandmatch/internal/taxonomy"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// CalculatorSuite tests the brand match score calculator.
type CalculatorSuite struct {
	suite.Suite
	calc *Calculator
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorSuite))
}

func (s *CalculatorSuite) SetupTest() {
	s.calc = NewCalculator(nil, nil)
}

func coolProfile() models.ColorProfile {
	return models.ColorProfile{
		Dominant: models.BucketCool,
		Distribution: map[models.TemperatureBucket]float64{
			models.BucketCool:    1,
			models.BucketWarm:    0,
			models.BucketNeutral: 0,
		},
	}
}

func neutralProfile() models.ColorProfile {
	return models.ColorProfile{
		Dominant: models.BucketNeutral,
		Distribution: map[models.TemperatureBucket]float64{
			models.BucketNeutral: 1,
			models.BucketWarm:    0,
			models.BucketCool:    0,
		},
	}
}

// TestNewCalculator tests nil-argument defaulting.
func (s *CalculatorSuite) TestNewCalculator() {
	c := NewCalculator(nil, nil)
	s.NotNil(c.Config())
	s.NotNil(c.Table())
	s.Equal(100, c.Config().MaxScore)

	custom := &Config{MaxScore: 10}
	s.Equal(custom, NewCalculator(custom, nil).Config())
}

// TestScoreComponents tests the additive point budget.
func (s *CalculatorSuite) TestScoreComponents() {
	tests := []struct {
		name          string
		axis          string
		profile       models.ColorProfile
		industry      string
		wantColor     float64
		wantIndustry  float64
		wantDominant  bool
		wantIndMatch  bool
		wantFinal     int
	}{
		{
			// tech pairs with cool: 30 + 10*1.0 color, 30 industry, 20 base = 90
			name: "full_match", axis: "tech", profile: coolProfile(), industry: "software",
			wantColor: 40, wantIndustry: 30, wantDominant: true, wantIndMatch: true, wantFinal: 90,
		},
		{
			// bold is warm-only: cool brand misses, no neutral fallback
			name: "color_miss", axis: "bold", profile: coolProfile(), industry: "software",
			wantColor: 0, wantIndustry: 10, wantFinal: 30,
		},
		{
			// neutral brand missing the affinity list still gets the fallback
			name: "neutral_fallback", axis: "bold", profile: neutralProfile(), industry: "",
			wantColor: 20, wantIndustry: 15, wantFinal: 55,
		},
		{
			// no industry supplied gets the flat unspecified award
			name: "industry_unspecified", axis: "tech", profile: coolProfile(), industry: "",
			wantColor: 40, wantIndustry: 15, wantDominant: true, wantFinal: 75,
		},
		{
			// substring match works in both directions and ignores case
			name: "industry_substring", axis: "tech", profile: coolProfile(), industry: "Fintech Startup",
			wantColor: 40, wantIndustry: 30, wantDominant: true, wantIndMatch: true, wantFinal: 90,
		},
		{
			// unknown axis falls back to the neutral-only characteristic
			name: "unknown_axis", axis: "brutalist", profile: neutralProfile(), industry: "finance",
			wantColor: 40, wantIndustry: 10, wantDominant: true, wantFinal: 70,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			comp := s.calc.ScoreComponents(tt.axis, tt.profile, tt.industry)
			s.InDelta(tt.wantColor, comp.ColorPoints, 1e-9)
			s.InDelta(tt.wantIndustry, comp.IndustryPoints, 1e-9)
			s.InDelta(20, comp.BasePoints, 1e-9)
			s.Equal(tt.wantDominant, comp.DominantMatch)
			s.Equal(tt.wantIndMatch, comp.IndustryMatch)
			s.Equal(tt.wantFinal, comp.FinalScore)
		})
	}
}

// TestPartialAffinityWeight tests the proportional distribution bonus.
func (s *CalculatorSuite) TestPartialAffinityWeight() {
	// minimal pairs with neutral and cool. A 60/40 cool/warm brand sums an
	// affine weight of 0.6: 30 + 10*0.6 = 36 color points.
	profile := models.ColorProfile{
		Dominant: models.BucketCool,
		Distribution: map[models.TemperatureBucket]float64{
			models.BucketCool: 0.6,
			models.BucketWarm: 0.4,
		},
	}
	comp := s.calc.ScoreComponents("minimal", profile, "")
	s.True(comp.DominantMatch)
	s.InDelta(36, comp.ColorPoints, 1e-9)
}

// TestCoolBrandPrefersTech tests the headline ranking property: a cool tech
// brand scores tech at least as high as playful.
func (s *CalculatorSuite) TestCoolBrandPrefersTech() {
	profile := brand.Analyze(brand.Palette{PrimaryColor: "#1a73e8"})
	s.Equal(models.BucketCool, profile.Dominant)

	tech := s.calc.Score("tech", profile, "technology")
	playful := s.calc.Score("playful", profile, "technology")
	s.GreaterOrEqual(tech, playful)
	s.Greater(tech, 50)
}

// TestClamp tests score clamping to [0, MaxScore].
func (s *CalculatorSuite) TestClamp() {
	s.Equal(100, s.calc.Clamp(140))
	s.Equal(100, s.calc.Clamp(100))
	s.Equal(90, s.calc.Clamp(90.9))
	s.Equal(0, s.calc.Clamp(-5))
	s.Equal(0, s.calc.Clamp(0))
}

// TestScoreRange tests that every axis/profile/industry combination stays in
// range.
func (s *CalculatorSuite) TestScoreRange() {
	profiles := []models.ColorProfile{coolProfile(), neutralProfile()}
	industries := []string{"", "technology", "no such industry"}
	for _, axis := range taxonomy.Default().Axes() {
		for _, p := range profiles {
			for _, industry := range industries {
				score := s.calc.Score(axis, p, industry)
				s.GreaterOrEqual(score, 0)
				s.LessOrEqual(score, 100)
			}
		}
	}
}

// TestMatchIndustry tests the case-insensitive bidirectional substring match.
func (s *CalculatorSuite) TestMatchIndustry() {
	tests := []struct {
		name     string
		industry string
		keywords []string
		want     bool
		keyword  string
	}{
		{"exact", "finance", []string{"finance"}, true, "finance"},
		{"brand_contains_keyword", "consumer fintech", []string{"fintech"}, true, "fintech"},
		{"keyword_contains_brand", "tech", []string{"technology"}, true, "technology"},
		{"case_insensitive", "FINANCE", []string{"Finance"}, true, "Finance"},
		{"no_match", "agriculture", []string{"finance", "legal"}, false, ""},
		{"empty_industry", "", []string{"finance"}, false, ""},
		{"blank_keyword_skipped", "finance", []string{"", "finance"}, true, "finance"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, keyword := matchIndustry(tt.industry, tt.keywords)
			s.Equal(tt.want, got)
			s.Equal(tt.keyword, keyword)
		})
	}
}
