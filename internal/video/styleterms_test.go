package video

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Maiuran1404/brandmatch/internal/taxonomy"
)

// ExtractorSuite tests the keyword style-term extractor.
type ExtractorSuite struct {
	suite.Suite
	extractor *KeywordExtractor
}

func TestExtractorSuite(t *testing.T) {
	suite.Run(t, new(ExtractorSuite))
}

func (s *ExtractorSuite) SetupTest() {
	s.extractor = NewKeywordExtractor(nil)
}

// TestExtractStyleTerms tests vocabulary matching and canonicalization.
func (s *ExtractorSuite) TestExtractStyleTerms() {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"axis_name", "a minimal layout would suit you", []string{"minimal"}},
		{"synonym_canonicalized", "keep it clean and simple", []string{"minimal"}},
		{"multiple_terms", "a bold, energetic direction with premium touches", []string{"bold", "energetic", "premium"}},
		{"dedup_keeps_first_mention", "premium feel, elegant type, luxury accents", []string{"premium"}},
		{"case_insensitive", "Something BOLD", []string{"bold"}},
		{"hyphenated", "a high-end look", []string{"premium"}},
		{"no_partial_words", "boldness and technology", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			terms, err := s.extractor.ExtractStyleTerms(context.Background(), tt.text)
			s.NoError(err)
			s.Equal(tt.want, terms)
		})
	}
}

// TestCustomTable tests that extractor vocabulary follows the injected table.
func (s *ExtractorSuite) TestCustomTable() {
	table := taxonomy.Table{"brutalist": taxonomy.DefaultCharacteristic()}
	e := NewKeywordExtractor(table)

	terms, err := e.ExtractStyleTerms(context.Background(), "go brutalist here")
	s.NoError(err)
	s.Equal([]string{"brutalist"}, terms)
}
