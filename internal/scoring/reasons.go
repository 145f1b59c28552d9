package scoring

import (
	"fmt"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// Reason phrases surfaced to end users alongside scores.
const (
	ReasonNoProfile   = "No brand profile available"
	ReasonPreferences = "Based on your preferences"
	ReasonVersatile   = "Versatile style option"
	ReasonAlternative = "Alternative direction"
)

// ReasonInput carries everything the reason ladder needs.
type ReasonInput struct {
	Components   Components
	Profile      models.ColorProfile
	Industry     string
	HistoryBoost float64
	TotalScore   int
}

// Reason derives the single human-readable match reason, evaluated in
// priority order: preference boost, strong match phrasing, versatile,
// alternative. The no-company case is handled by the caller, which
// short-circuits before scoring.
func (c *Calculator) Reason(in ReasonInput) string {
	reasons := c.Reasons(in)
	if len(reasons) == 0 {
		return ReasonAlternative
	}
	if len(reasons) == 2 {
		// Brand phrase first, industry phrase lowercased as the continuation.
		return reasons[0] + " and " + lowerFirst(reasons[1])
	}
	return reasons[0]
}

// Reasons returns the ordered list of individual match reasons.
func (c *Calculator) Reasons(in ReasonInput) []string {
	if in.HistoryBoost >= c.config.PreferenceBoostThreshold {
		return []string{ReasonPreferences}
	}

	if in.TotalScore >= c.config.StrongMatchThreshold {
		var reasons []string
		if in.Components.DominantMatch {
			reasons = append(reasons, fmt.Sprintf("Matches your %s brand palette", in.Profile.Dominant))
		}
		if in.Components.IndustryMatch {
			reasons = append(reasons, fmt.Sprintf("Popular in %s", in.Industry))
		}
		if len(reasons) > 0 {
			return reasons
		}
	}

	if in.TotalScore >= c.config.VersatileThreshold {
		return []string{ReasonVersatile}
	}
	return []string{ReasonAlternative}
}

// lowerFirst lowercases the first rune of a phrase for mid-sentence joining.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'A' && s[0] <= 'Z' {
		return string(s[0]+'a'-'A') + s[1:]
	}
	return s
}
