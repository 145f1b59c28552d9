package gorm

import (
	"context"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// RecordSelection persists one style selection event.
func (s *Store) RecordSelection(ctx context.Context, sel *models.StyleSelection) error {
	row := &StyleSelection{
		UserID:          sel.UserID,
		StyleID:         sel.StyleID,
		StyleAxis:       sel.StyleAxis,
		DeliverableType: string(sel.DeliverableType),
		SelectedAtEpoch: sel.SelectedAtEpoch,
	}
	if err := s.withCtx(ctx).Create(row).Error; err != nil {
		return err
	}
	sel.ID = row.ID
	return nil
}

// AxisSelectionCounts aggregates a user's selections per style axis for one
// deliverable type. Feeds the history booster.
func (s *Store) AxisSelectionCounts(ctx context.Context, userID string, deliverableType models.DeliverableType) ([]*models.AxisSelectionCount, error) {
	var counts []*models.AxisSelectionCount

	err := s.withCtx(ctx).
		Model(&StyleSelection{}).
		Select("style_axis, COUNT(*) AS count, MAX(selected_at_epoch) AS last_selected_at, MIN(selected_at_epoch) AS first_selected_at").
		Where("user_id = ? AND deliverable_type = ?", userID, string(deliverableType)).
		Group("style_axis").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
