package gorm

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/Maiuran1404/brandmatch/internal/db"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// ListStyleReferences returns active style rows matching the query, ordered
// by (featured_order, display_order) so curator ordering is the tie-break
// order downstream.
func (s *Store) ListStyleReferences(ctx context.Context, q db.CatalogQuery) ([]*models.StyleReference, error) {
	tx := s.withCtx(ctx).
		Model(&StyleReference{}).
		Where("is_active = ?", true).
		Order("featured_order ASC, display_order ASC")

	if q.DeliverableType != "" {
		tx = tx.Where("deliverable_type = ?", string(q.DeliverableType))
	}
	if q.StyleAxis != "" {
		tx = tx.Where("style_axis = ?", q.StyleAxis)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []*StyleReference
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	refs := make([]*models.StyleReference, len(rows))
	for i, row := range rows {
		refs[i] = row.toModel()
	}
	return refs, nil
}

// GetStyleReferenceByID returns one style row, active or not.
// Returns (nil, nil) when the row does not exist.
func (s *Store) GetStyleReferenceByID(ctx context.Context, id string) (*models.StyleReference, error) {
	var row StyleReference
	err := s.withCtx(ctx).Where("id = ?", id).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, nil
	}
	return row.toModel(), nil
}

// ListVideoReferences returns active video rows matching the query.
func (s *Store) ListVideoReferences(ctx context.Context, q db.CatalogQuery) ([]*models.VideoReference, error) {
	tx := s.withCtx(ctx).
		Model(&VideoReference{}).
		Where("is_active = ?", true).
		Order("featured_order ASC, display_order ASC")

	if q.StyleAxis != "" {
		tx = tx.Where("style_axis = ?", q.StyleAxis)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []*VideoReference
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	refs := make([]*models.VideoReference, len(rows))
	for i, row := range rows {
		refs[i] = row.toModel()
	}
	return refs, nil
}

// UpsertStyleReference inserts or replaces a style catalog entry.
func (s *Store) UpsertStyleReference(ctx context.Context, ref *models.StyleReference) error {
	row := styleRowFromModel(ref)
	row.UpdatedAtEpoch = time.Now().UnixMilli()

	err := s.withCtx(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(row).Error
	if err != nil {
		return err
	}
	ref.ID = row.ID
	return nil
}

// UpsertVideoReference inserts or replaces a video catalog entry.
func (s *Store) UpsertVideoReference(ctx context.Context, ref *models.VideoReference) error {
	row := videoRowFromModel(ref)
	row.UpdatedAtEpoch = time.Now().UnixMilli()

	err := s.withCtx(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(row).Error
	if err != nil {
		return err
	}
	ref.ID = row.ID
	return nil
}

// IncrementUsageCount bumps a style's selection counter.
func (s *Store) IncrementUsageCount(ctx context.Context, styleID string) error {
	return s.withCtx(ctx).
		Exec("UPDATE style_references SET usage_count = COALESCE(usage_count, 0) + 1, updated_at_epoch = ? WHERE id = ?",
			time.Now().UnixMilli(), styleID).Error
}
