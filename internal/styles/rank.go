package styles

import (
	"sort"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// sortByScore stable-sorts styles by score descending. Equal scores keep
// their pre-sort order, which is the catalog's (featured_order, display_order)
// ordering, so ties respect curator intent.
func sortByScore(scored []models.ScoredStyle) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].BrandMatchScore > scored[j].BrandMatchScore
	})
}

// diversifyByAxis collapses a scored list to at most one entry per style
// axis. The list is score-sorted first so the kept entry for each axis is its
// highest-scoring occurrence; the reduced set comes back sorted.
func diversifyByAxis(scored []models.ScoredStyle) []models.ScoredStyle {
	sortByScore(scored)

	seen := make(map[string]bool, len(scored))
	kept := scored[:0]
	for _, s := range scored {
		if seen[s.StyleAxis] {
			continue
		}
		seen[s.StyleAxis] = true
		kept = append(kept, s)
	}

	sortByScore(kept)
	return kept
}
