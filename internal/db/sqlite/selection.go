package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// RecordSelection appends one selection event to the user's history.
func (s *Store) RecordSelection(ctx context.Context, sel *models.StyleSelection) error {
	if sel.SelectedAtEpoch == 0 {
		sel.SelectedAtEpoch = time.Now().UnixMilli()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO style_selections (user_id, style_id, style_axis, deliverable_type, selected_at_epoch)
		VALUES (?, ?, ?, ?, ?)`,
		sel.UserID, sel.StyleID, sel.StyleAxis, string(sel.DeliverableType), sel.SelectedAtEpoch)
	if err != nil {
		return fmt.Errorf("record selection: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		sel.ID = id
	}
	return nil
}

// AxisSelectionCounts aggregates the user's selection history per style axis.
func (s *Store) AxisSelectionCounts(ctx context.Context, userID string, deliverableType models.DeliverableType) ([]*models.AxisSelectionCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT style_axis, COUNT(*), MAX(selected_at_epoch), MIN(selected_at_epoch)
		FROM style_selections
		WHERE user_id = ? AND deliverable_type = ?
		GROUP BY style_axis`,
		userID, string(deliverableType))
	if err != nil {
		return nil, fmt.Errorf("axis selection counts: %w", err)
	}
	defer rows.Close()

	var counts []*models.AxisSelectionCount
	for rows.Next() {
		c := &models.AxisSelectionCount{}
		if err := rows.Scan(&c.StyleAxis, &c.Count, &c.LastSelectedAt, &c.FirstSelectedAt); err != nil {
			return nil, fmt.Errorf("scan selection count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
