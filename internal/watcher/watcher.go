// Package watcher reloads the style taxonomy file when it changes on disk.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/Maiuran1404/brandmatch/internal/taxonomy"
)

// ReloadFunc receives the freshly loaded taxonomy table after each change.
type ReloadFunc func(taxonomy.Table)

// TaxonomyWatcher watches a single taxonomy YAML file and pushes reloaded
// tables to the registered callback.
type TaxonomyWatcher struct {
	path     string
	onReload ReloadFunc
	debounce time.Duration
}

// NewTaxonomyWatcher returns a watcher for path. onReload is called from the
// watch goroutine, so callers are responsible for their own synchronization.
func NewTaxonomyWatcher(path string, onReload ReloadFunc) *TaxonomyWatcher {
	return &TaxonomyWatcher{
		path:     path,
		onReload: onReload,
		debounce: 250 * time.Millisecond,
	}
}

// Watch blocks until ctx is cancelled, reloading the taxonomy file on every
// write. Editors often produce bursts of events for one save, so reloads are
// debounced. A reload that fails to parse keeps the previous table.
func (w *TaxonomyWatcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.path); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	log.Info().Str("path", w.path).Msg("Watching taxonomy file")

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-fw.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		case err := <-fw.Errors:
			log.Warn().Err(err).Msg("Taxonomy watcher error")
		}
	}
}

func (w *TaxonomyWatcher) reload() {
	table, err := taxonomy.LoadFile(w.path)
	if err != nil {
		log.Warn().Err(err).Str("path", w.path).Msg("Failed to reload taxonomy, keeping previous table")
		return
	}
	log.Info().Int("axes", len(table)).Str("path", w.path).Msg("Reloaded taxonomy")
	w.onReload(table)
}
