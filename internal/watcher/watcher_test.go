// Package watcher reloads the style taxonomy file when it changes on disk.
package watcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Maiuran1404/brandmatch/internal/taxonomy"
)

// WatcherSuite tests taxonomy reloading.
type WatcherSuite struct {
	suite.Suite
}

func TestWatcherSuite(t *testing.T) {
	suite.Run(t, new(WatcherSuite))
}

// TestReloadPushesTable tests that a parseable file reaches the callback.
func (s *WatcherSuite) TestReloadPushesTable() {
	path := filepath.Join(s.T().TempDir(), "taxonomy.yaml")
	doc := "brutalist:\n  color_affinity: [neutral]\n  energy_level: energetic\n  density_level: rich\n"
	s.Require().NoError(os.WriteFile(path, []byte(doc), 0600))

	var got taxonomy.Table
	w := NewTaxonomyWatcher(path, func(table taxonomy.Table) { got = table })
	w.reload()

	s.Require().NotNil(got)
	s.Contains(got, "brutalist")
	s.Contains(got, "minimal")
}

// TestReloadKeepsPreviousOnError tests that a broken file never reaches the
// callback.
func (s *WatcherSuite) TestReloadKeepsPreviousOnError() {
	path := filepath.Join(s.T().TempDir(), "taxonomy.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(":\n  - broken"), 0600))

	called := false
	w := NewTaxonomyWatcher(path, func(taxonomy.Table) { called = true })
	w.reload()

	s.False(called)
}
