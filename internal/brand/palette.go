// Package brand reduces a company's color palette into a warm/cool/neutral
// temperature profile. The profile is the primary brand signal consumed by
// the style scorer.
package brand

import (
	"sort"
	"strings"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// Vote weights per palette slot. The primary color carries the strongest
// signal; auxiliary brand colors contribute half votes.
const (
	primaryWeight   = 2.0
	secondaryWeight = 1.0
	accentWeight    = 1.0
	extraWeight     = 0.5
)

// warmthThreshold is the (R-B)/255 cutoff separating warm/cool from neutral.
const warmthThreshold = 0.2

// Palette is the raw brand color input. All fields are optional hex strings.
type Palette struct {
	PrimaryColor   string
	SecondaryColor string
	AccentColor    string
	BrandColors    []string
}

// PaletteFromCompany extracts the palette fields from a company record.
func PaletteFromCompany(c *models.Company) Palette {
	if c == nil {
		return Palette{}
	}
	return Palette{
		PrimaryColor:   c.PrimaryColor,
		SecondaryColor: c.SecondaryColor,
		AccentColor:    c.AccentColor,
		BrandColors:    c.BrandColors,
	}
}

// Analyze computes the temperature profile for a palette.
//
// Each parseable color casts a weighted vote into its bucket; the
// distribution is the normalized vote share and the dominant bucket is the
// highest vote count. A palette with no parseable colors is fully neutral.
//
// Dominant ties are broken alphabetically by bucket name ("cool" < "neutral"
// < "warm") so the result is deterministic regardless of map iteration order.
func Analyze(p Palette) models.ColorProfile {
	votes := map[models.TemperatureBucket]float64{
		models.BucketWarm:    0,
		models.BucketCool:    0,
		models.BucketNeutral: 0,
	}

	cast := func(hex string, weight float64) float64 {
		bucket, ok := Classify(hex)
		if !ok {
			return 0
		}
		votes[bucket] += weight
		return weight
	}

	total := cast(p.PrimaryColor, primaryWeight)
	total += cast(p.SecondaryColor, secondaryWeight)
	total += cast(p.AccentColor, accentWeight)
	for _, c := range p.BrandColors {
		total += cast(c, extraWeight)
	}

	if total == 0 {
		return models.ColorProfile{
			Dominant: models.BucketNeutral,
			Distribution: map[models.TemperatureBucket]float64{
				models.BucketWarm:    0,
				models.BucketCool:    0,
				models.BucketNeutral: 1,
			},
		}
	}

	distribution := make(map[models.TemperatureBucket]float64, 3)
	for bucket, v := range votes {
		distribution[bucket] = v / total
	}

	return models.ColorProfile{
		Dominant:     dominantBucket(votes),
		Distribution: distribution,
	}
}

// Classify assigns a single hex color to a temperature bucket using the
// red-minus-blue channel heuristic. Returns false for unparseable input.
func Classify(hex string) (models.TemperatureBucket, bool) {
	r, _, b, ok := parseHex(hex)
	if !ok {
		return "", false
	}

	warmth := (float64(r) - float64(b)) / 255.0
	switch {
	case warmth > warmthThreshold:
		return models.BucketWarm, true
	case warmth < -warmthThreshold:
		return models.BucketCool, true
	default:
		return models.BucketNeutral, true
	}
}

// dominantBucket picks the bucket with the highest raw vote count,
// alphabetical on ties.
func dominantBucket(votes map[models.TemperatureBucket]float64) models.TemperatureBucket {
	buckets := make([]models.TemperatureBucket, 0, len(votes))
	for b := range votes {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i] < buckets[j] })

	best := buckets[0]
	for _, b := range buckets[1:] {
		if votes[b] > votes[best] {
			best = b
		}
	}
	return best
}

// parseHex parses "#RRGGBB" or "#RGB" (leading '#' optional) into channels.
func parseHex(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "#"))

	switch len(s) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i] = s[i]
			expanded[2*i+1] = s[i]
		}
		s = string(expanded)
	case 6:
	default:
		return 0, 0, 0, false
	}

	channels := make([]uint8, 3)
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[2*i])
		lo, ok2 := hexDigit(s[2*i+1])
		if !ok1 || !ok2 {
			return 0, 0, 0, false
		}
		channels[i] = hi<<4 | lo
	}
	return channels[0], channels[1], channels[2], true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
