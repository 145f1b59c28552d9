// Package taxonomy holds the style characteristic table: the per-axis profile
// used to match catalog styles against a brand signal. The table is plain data
// passed to the scorer, so tests can run against alternate taxonomies.
package taxonomy

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// EnergyLevel describes the visual energy of a style axis.
type EnergyLevel string

// DensityLevel describes the visual density of a style axis.
type DensityLevel string

// Energy and density levels. Both are descriptive today: they are populated
// for every axis but not consulted by the scoring formula.
const (
	EnergyCalm      EnergyLevel = "calm"
	EnergyBalanced  EnergyLevel = "balanced"
	EnergyEnergetic EnergyLevel = "energetic"

	DensityMinimal  DensityLevel = "minimal"
	DensityBalanced DensityLevel = "balanced"
	DensityRich     DensityLevel = "rich"
)

// Characteristic is the fixed matching profile of one style axis.
type Characteristic struct {
	ColorAffinity    []models.TemperatureBucket `yaml:"color_affinity" json:"colorAffinity"`
	EnergyLevel      EnergyLevel                `yaml:"energy_level" json:"energyLevel"`
	DensityLevel     DensityLevel               `yaml:"density_level" json:"densityLevel"`
	IndustryAffinity []string                   `yaml:"industry_affinity" json:"industryAffinity"`
}

// HasAffinity reports whether the axis visually pairs with the bucket.
func (c Characteristic) HasAffinity(b models.TemperatureBucket) bool {
	for _, a := range c.ColorAffinity {
		if a == b {
			return true
		}
	}
	return false
}

// Table maps style axis names to their characteristics.
type Table map[string]Characteristic

// Default returns the compiled-in characteristic table for the eight curated
// style axes. Every axis used by the shipped catalog must appear here.
func Default() Table {
	return Table{
		"minimal": {
			ColorAffinity:    []models.TemperatureBucket{models.BucketNeutral, models.BucketCool},
			EnergyLevel:      EnergyCalm,
			DensityLevel:     DensityMinimal,
			IndustryAffinity: []string{"technology", "finance", "consulting", "architecture"},
		},
		"bold": {
			ColorAffinity:    []models.TemperatureBucket{models.BucketWarm},
			EnergyLevel:      EnergyEnergetic,
			DensityLevel:     DensityRich,
			IndustryAffinity: []string{"entertainment", "sports", "food", "retail"},
		},
		"editorial": {
			ColorAffinity:    []models.TemperatureBucket{models.BucketNeutral},
			EnergyLevel:      EnergyBalanced,
			DensityLevel:     DensityBalanced,
			IndustryAffinity: []string{"media", "publishing", "fashion", "education"},
		},
		"corporate": {
			ColorAffinity:    []models.TemperatureBucket{models.BucketCool, models.BucketNeutral},
			EnergyLevel:      EnergyCalm,
			DensityLevel:     DensityBalanced,
			IndustryAffinity: []string{"finance", "insurance", "legal", "consulting", "healthcare"},
		},
		"playful": {
			ColorAffinity:    []models.TemperatureBucket{models.BucketWarm},
			EnergyLevel:      EnergyEnergetic,
			DensityLevel:     DensityRich,
			IndustryAffinity: []string{"food", "entertainment", "education", "childcare", "gaming"},
		},
		"premium": {
			ColorAffinity:    []models.TemperatureBucket{models.BucketNeutral, models.BucketCool},
			EnergyLevel:      EnergyCalm,
			DensityLevel:     DensityMinimal,
			IndustryAffinity: []string{"luxury", "jewelry", "automotive", "hospitality", "real estate"},
		},
		"organic": {
			ColorAffinity:    []models.TemperatureBucket{models.BucketWarm, models.BucketNeutral},
			EnergyLevel:      EnergyBalanced,
			DensityLevel:     DensityBalanced,
			IndustryAffinity: []string{"wellness", "food", "sustainability", "beauty", "agriculture"},
		},
		"tech": {
			ColorAffinity:    []models.TemperatureBucket{models.BucketCool},
			EnergyLevel:      EnergyBalanced,
			DensityLevel:     DensityMinimal,
			IndustryAffinity: []string{"technology", "software", "saas", "fintech", "ai"},
		},
	}
}

// DefaultCharacteristic is the fallback profile for axes missing from the
// table. Medium weighting: pairs with neutral only, no industry affinity.
func DefaultCharacteristic() Characteristic {
	return Characteristic{
		ColorAffinity: []models.TemperatureBucket{models.BucketNeutral},
		EnergyLevel:   EnergyBalanced,
		DensityLevel:  DensityBalanced,
	}
}

// Lookup returns the characteristic for an axis, falling back to
// DefaultCharacteristic for unknown axes.
func (t Table) Lookup(axis string) Characteristic {
	if c, ok := t[axis]; ok {
		return c
	}
	return DefaultCharacteristic()
}

// Axes returns the axis names in the table, sorted.
func (t Table) Axes() []string {
	axes := make([]string, 0, len(t))
	for axis := range t {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	return axes
}

// LoadFile reads a YAML characteristic file and merges it over the defaults.
// Axes present in the file replace the default entry wholesale; axes absent
// from the file keep their default profile.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}

	var overrides Table
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse taxonomy file: %w", err)
	}

	table := Default()
	for axis, c := range overrides {
		table[axis] = c
	}
	return table, nil
}
