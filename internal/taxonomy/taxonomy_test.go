// Package taxonomy holds the style characteristic table.
package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// TaxonomySuite tests the characteristic table and its YAML loader.
type TaxonomySuite struct {
	suite.Suite
}

func TestTaxonomySuite(t *testing.T) {
	suite.Run(t, new(TaxonomySuite))
}

// TestDefaultTable tests the shipped table's shape.
func (s *TaxonomySuite) TestDefaultTable() {
	table := Default()
	s.Len(table, 8)

	for _, axis := range table.Axes() {
		c := table[axis]
		s.NotEmpty(c.ColorAffinity, "axis %s has no color affinity", axis)
		s.NotEmpty(c.EnergyLevel, "axis %s has no energy level", axis)
		s.NotEmpty(c.DensityLevel, "axis %s has no density level", axis)
		s.NotEmpty(c.IndustryAffinity, "axis %s has no industry affinity", axis)
	}

	s.True(table["tech"].HasAffinity(models.BucketCool))
	s.False(table["tech"].HasAffinity(models.BucketWarm))
	s.True(table["bold"].HasAffinity(models.BucketWarm))
}

// TestLookupFallback tests the unknown-axis fallback.
func (s *TaxonomySuite) TestLookupFallback() {
	table := Default()
	c := table.Lookup("brutalist")
	s.Equal(DefaultCharacteristic(), c)
	s.True(c.HasAffinity(models.BucketNeutral))
	s.Empty(c.IndustryAffinity)
}

// TestAxesSorted tests deterministic axis enumeration.
func (s *TaxonomySuite) TestAxesSorted() {
	axes := Default().Axes()
	s.Len(axes, 8)
	for i := 1; i < len(axes); i++ {
		s.Less(axes[i-1], axes[i])
	}
}

// TestLoadFile tests YAML overrides merging over the defaults.
func (s *TaxonomySuite) TestLoadFile() {
	doc := `
tech:
  color_affinity: [cool, neutral]
  energy_level: calm
  density_level: minimal
  industry_affinity: [robotics]
brutalist:
  color_affinity: [neutral]
  energy_level: energetic
  density_level: rich
  industry_affinity: [architecture]
`
	path := filepath.Join(s.T().TempDir(), "taxonomy.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(doc), 0600))

	table, err := LoadFile(path)
	s.Require().NoError(err)

	// Overridden axis replaces the default wholesale.
	s.Equal([]string{"robotics"}, table["tech"].IndustryAffinity)
	s.True(table["tech"].HasAffinity(models.BucketNeutral))

	// New axis is added; untouched defaults survive.
	s.Contains(table, "brutalist")
	s.Len(table, 9)
	s.Equal(Default()["bold"], table["bold"])
}

// TestLoadFileErrors tests missing and malformed files.
func (s *TaxonomySuite) TestLoadFileErrors() {
	_, err := LoadFile(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)

	path := filepath.Join(s.T().TempDir(), "broken.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(":\n  - not yaml"), 0600))
	_, err = LoadFile(path)
	s.Error(err)
}
