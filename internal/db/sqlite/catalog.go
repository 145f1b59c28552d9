package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Maiuran1404/brandmatch/internal/db"
	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// Nullable text columns are coalesced so rows seeded outside UpsertStyleReference
// still scan into plain strings.
const styleColumns = `id, name, COALESCE(description, ''), COALESCE(image_url, ''),
	deliverable_type, style_axis, COALESCE(sub_style, ''),
	semantic_tags, industries, mood_keywords, usage_count, featured_order, display_order, is_active`

// ListStyleReferences returns active style rows matching the query, ordered
// by (featured_order, display_order).
func (s *Store) ListStyleReferences(ctx context.Context, q db.CatalogQuery) ([]*models.StyleReference, error) {
	query := "SELECT " + styleColumns + " FROM style_references WHERE is_active = 1"
	args := []interface{}{}

	if q.DeliverableType != "" {
		query += " AND deliverable_type = ?"
		args = append(args, string(q.DeliverableType))
	}
	if q.StyleAxis != "" {
		query += " AND style_axis = ?"
		args = append(args, q.StyleAxis)
	}
	query += " ORDER BY featured_order ASC, display_order ASC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	} else if q.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET.
		query += " LIMIT -1"
	}
	if q.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, q.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list style references: %w", err)
	}
	defer rows.Close()

	var refs []*models.StyleReference
	for rows.Next() {
		ref, err := scanStyleReference(rows)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// GetStyleReferenceByID returns one style row, active or not.
// Returns (nil, nil) when the row does not exist.
func (s *Store) GetStyleReferenceByID(ctx context.Context, id string) (*models.StyleReference, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+styleColumns+" FROM style_references WHERE id = ?", id)

	ref, err := scanStyleReference(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get style reference: %w", err)
	}
	return ref, nil
}

const videoColumns = `id, title, COALESCE(description, ''), COALESCE(video_url, ''),
	COALESCE(thumbnail_url, ''), style_axis, intents,
	platforms, topics, industries, mood_keywords, usage_count, featured_order, display_order, is_active`

// ListVideoReferences returns active video rows matching the query.
func (s *Store) ListVideoReferences(ctx context.Context, q db.CatalogQuery) ([]*models.VideoReference, error) {
	query := "SELECT " + videoColumns + " FROM video_references WHERE is_active = 1"
	args := []interface{}{}

	if q.StyleAxis != "" {
		query += " AND style_axis = ?"
		args = append(args, q.StyleAxis)
	}
	query += " ORDER BY featured_order ASC, display_order ASC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list video references: %w", err)
	}
	defer rows.Close()

	var refs []*models.VideoReference
	for rows.Next() {
		ref := &models.VideoReference{}
		err := rows.Scan(&ref.ID, &ref.Title, &ref.Description, &ref.VideoURL, &ref.ThumbnailURL,
			&ref.StyleAxis, &ref.Intents, &ref.Platforms, &ref.Topics, &ref.Industries,
			&ref.MoodKeywords, &ref.UsageCount, &ref.FeaturedOrder, &ref.DisplayOrder, &ref.IsActive)
		if err != nil {
			return nil, fmt.Errorf("scan video reference: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// UpsertStyleReference inserts or replaces a style catalog entry.
func (s *Store) UpsertStyleReference(ctx context.Context, ref *models.StyleReference) error {
	if ref.ID == "" {
		ref.ID = uuid.NewString()
	}
	now := time.Now().UnixMilli()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO style_references (id, name, description, image_url,
			deliverable_type, style_axis, sub_style,
			semantic_tags, industries, mood_keywords, usage_count, featured_order, display_order, is_active,
			created_at_epoch, updated_at_epoch)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			image_url = excluded.image_url,
			deliverable_type = excluded.deliverable_type,
			style_axis = excluded.style_axis,
			sub_style = excluded.sub_style,
			semantic_tags = excluded.semantic_tags,
			industries = excluded.industries,
			mood_keywords = excluded.mood_keywords,
			featured_order = excluded.featured_order,
			display_order = excluded.display_order,
			is_active = excluded.is_active,
			updated_at_epoch = excluded.updated_at_epoch`,
		ref.ID, ref.Name, ref.Description, ref.ImageURL, string(ref.DeliverableType),
		ref.StyleAxis, ref.SubStyle, ref.SemanticTags, ref.Industries, ref.MoodKeywords,
		ref.UsageCount, ref.FeaturedOrder, ref.DisplayOrder, ref.IsActive, now, now)
	if err != nil {
		return fmt.Errorf("upsert style reference: %w", err)
	}
	return nil
}

// UpsertVideoReference inserts or replaces a video catalog entry.
func (s *Store) UpsertVideoReference(ctx context.Context, ref *models.VideoReference) error {
	if ref.ID == "" {
		ref.ID = uuid.NewString()
	}
	now := time.Now().UnixMilli()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO video_references (id, title, description, video_url,
			thumbnail_url, style_axis, intents,
			platforms, topics, industries, mood_keywords, usage_count, featured_order, display_order, is_active,
			created_at_epoch, updated_at_epoch)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			video_url = excluded.video_url,
			thumbnail_url = excluded.thumbnail_url,
			style_axis = excluded.style_axis,
			intents = excluded.intents,
			platforms = excluded.platforms,
			topics = excluded.topics,
			industries = excluded.industries,
			mood_keywords = excluded.mood_keywords,
			featured_order = excluded.featured_order,
			display_order = excluded.display_order,
			is_active = excluded.is_active,
			updated_at_epoch = excluded.updated_at_epoch`,
		ref.ID, ref.Title, ref.Description, ref.VideoURL, ref.ThumbnailURL, ref.StyleAxis,
		ref.Intents, ref.Platforms, ref.Topics, ref.Industries, ref.MoodKeywords,
		ref.UsageCount, ref.FeaturedOrder, ref.DisplayOrder, ref.IsActive, now, now)
	if err != nil {
		return fmt.Errorf("upsert video reference: %w", err)
	}
	return nil
}

// IncrementUsageCount bumps a style's selection counter.
func (s *Store) IncrementUsageCount(ctx context.Context, styleID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE style_references SET usage_count = COALESCE(usage_count, 0) + 1, updated_at_epoch = ? WHERE id = ?",
		time.Now().UnixMilli(), styleID)
	return err
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan code.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStyleReference(row rowScanner) (*models.StyleReference, error) {
	ref := &models.StyleReference{}
	err := row.Scan(&ref.ID, &ref.Name, &ref.Description, &ref.ImageURL, &ref.DeliverableType,
		&ref.StyleAxis, &ref.SubStyle, &ref.SemanticTags, &ref.Industries, &ref.MoodKeywords,
		&ref.UsageCount, &ref.FeaturedOrder, &ref.DisplayOrder, &ref.IsActive)
	if err != nil {
		return nil, err
	}
	return ref, nil
}
