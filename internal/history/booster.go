// Package history derives per-axis personalization bonuses from a user's past
// style selections. The booster is an optional signal: callers treat any
// failure as a zero boost.
package history

import (
	"context"
	"math"
	"time"

	"github.com/Maiuran1404/brandmatch/internal/db"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// Booster supplies per-style-axis bonus scores for a user.
//
// Implementations may fail; callers must substitute an empty map and never
// let the error reach the response path.
type Booster interface {
	BoostScores(ctx context.Context, userID string, deliverableType models.DeliverableType) (map[string]float64, error)
}

// Config contains the boost formula parameters.
type Config struct {
	// MaxBoost caps the per-axis bonus (default 30).
	MaxBoost float64 `json:"max_boost"`
	// PointsPerSelection is the raw bonus per recorded selection (default 8).
	PointsPerSelection float64 `json:"points_per_selection"`
	// RecencyHalfLifeDays halves a selection's contribution per interval
	// (default 30). Old selections fade rather than dominate.
	RecencyHalfLifeDays float64 `json:"recency_half_life_days"`
}

// DefaultConfig returns the default boost configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxBoost:            30,
		PointsPerSelection:  8,
		RecencyHalfLifeDays: 30,
	}
}

// StoreBooster computes boosts from recorded selections.
type StoreBooster struct {
	selections db.SelectionStore
	config     *Config
	now        func() time.Time
}

// NewStoreBooster creates a store-backed booster.
// A nil config uses the default configuration.
func NewStoreBooster(selections db.SelectionStore, config *Config) *StoreBooster {
	if config == nil {
		config = DefaultConfig()
	}
	return &StoreBooster{
		selections: selections,
		config:     config,
		now:        time.Now,
	}
}

// BoostScores returns the per-axis bonus map for a user.
//
// Each axis contributes points_per_selection per recorded selection, decayed
// by 0.5^(days_since_last_selection / half_life) and capped at MaxBoost.
// Users with no history get an empty map.
func (b *StoreBooster) BoostScores(ctx context.Context, userID string, deliverableType models.DeliverableType) (map[string]float64, error) {
	counts, err := b.selections.AxisSelectionCounts(ctx, userID, deliverableType)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return map[string]float64{}, nil
	}

	now := b.now()
	boosts := make(map[string]float64, len(counts))
	for _, c := range counts {
		ageDays := now.Sub(time.UnixMilli(c.LastSelectedAt)).Hours() / 24.0
		if ageDays < 0 {
			ageDays = 0
		}
		decay := math.Pow(0.5, ageDays/b.config.RecencyHalfLifeDays)

		boost := float64(c.Count) * b.config.PointsPerSelection * decay
		if boost > b.config.MaxBoost {
			boost = b.config.MaxBoost
		}
		if boost > 0 {
			boosts[c.StyleAxis] = boost
		}
	}
	return boosts, nil
}
