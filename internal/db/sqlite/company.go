package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// GetCompanyByUser returns the brand profile owned by userID, or (nil, nil)
// when the user has no company on record.
func (s *Store) GetCompanyByUser(ctx context.Context, userID string) (*models.Company, error) {
	// Color and industry columns are nullable; coalesce so externally seeded
	// rows scan into plain strings.
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(primary_color, ''), COALESCE(secondary_color, ''),
			COALESCE(accent_color, ''), brand_colors, COALESCE(industry, ''), owner_user_id
		FROM companies WHERE owner_user_id = ?`, userID)

	company := &models.Company{}
	err := row.Scan(&company.ID, &company.Name, &company.PrimaryColor, &company.SecondaryColor,
		&company.AccentColor, &company.BrandColors, &company.Industry, &company.OwnerUserID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company by user: %w", err)
	}
	return company, nil
}

// UpsertCompany inserts or replaces a company keyed by its owner.
func (s *Store) UpsertCompany(ctx context.Context, company *models.Company) error {
	if company.ID == "" {
		company.ID = uuid.NewString()
	}
	now := time.Now().UnixMilli()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, primary_color, secondary_color, accent_color,
			brand_colors, industry, owner_user_id, created_at_epoch, updated_at_epoch)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_user_id) DO UPDATE SET
			name = excluded.name,
			primary_color = excluded.primary_color,
			secondary_color = excluded.secondary_color,
			accent_color = excluded.accent_color,
			brand_colors = excluded.brand_colors,
			industry = excluded.industry,
			updated_at_epoch = excluded.updated_at_epoch`,
		company.ID, company.Name, company.PrimaryColor, company.SecondaryColor,
		company.AccentColor, company.BrandColors, company.Industry, company.OwnerUserID, now, now)
	if err != nil {
		return fmt.Errorf("upsert company: %w", err)
	}
	return nil
}
