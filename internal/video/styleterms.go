package video

import (
	"context"
	"strings"

	"github.com/Maiuran1404/brandmatch/internal/taxonomy"
)

// TermExtractor pulls style vocabulary out of free text. The production
// implementation mines the AI assistant's intake reply; it is an optional
// collaborator and the service neutralizes its failures.
type TermExtractor interface {
	ExtractStyleTerms(ctx context.Context, text string) ([]string, error)
}

// KeywordExtractor matches text against the taxonomy's axis names and a small
// style vocabulary. It never fails; the error return exists to satisfy the
// extractor contract shared with remote implementations.
type KeywordExtractor struct {
	vocabulary map[string]string // lowercased term -> canonical term
}

// styleSynonyms maps common brief language to canonical axis terms.
var styleSynonyms = map[string]string{
	"clean":         "minimal",
	"simple":        "minimal",
	"understated":   "minimal",
	"loud":          "bold",
	"punchy":        "bold",
	"striking":      "bold",
	"magazine":      "editorial",
	"professional":  "corporate",
	"fun":           "playful",
	"quirky":        "playful",
	"luxury":        "premium",
	"elegant":       "premium",
	"high-end":      "premium",
	"natural":       "organic",
	"earthy":        "organic",
	"futuristic":    "tech",
	"digital":       "tech",
	"cinematic":     "cinematic",
	"energetic":     "energetic",
	"calm":          "calm",
	"minimalistic":  "minimal",
	"sophisticated": "premium",
}

// NewKeywordExtractor builds an extractor over the taxonomy's axis names plus
// the synonym vocabulary. A nil table uses the compiled-in taxonomy.
func NewKeywordExtractor(table taxonomy.Table) *KeywordExtractor {
	if table == nil {
		table = taxonomy.Default()
	}

	vocab := make(map[string]string, len(table)+len(styleSynonyms))
	for _, axis := range table.Axes() {
		vocab[strings.ToLower(axis)] = axis
	}
	for synonym, canonical := range styleSynonyms {
		vocab[synonym] = canonical
	}
	return &KeywordExtractor{vocabulary: vocab}
}

// ExtractStyleTerms returns the canonical style terms mentioned in the text,
// deduplicated, in order of first mention.
func (e *KeywordExtractor) ExtractStyleTerms(_ context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	seen := make(map[string]bool)
	var terms []string
	for _, word := range strings.FieldsFunc(strings.ToLower(text), isWordBreak) {
		canonical, ok := e.vocabulary[word]
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		terms = append(terms, canonical)
	}
	return terms, nil
}

func isWordBreak(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
		return false
	}
	return true
}
