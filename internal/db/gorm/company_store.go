package gorm

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// GetCompanyByUser returns the company owned by a user, or (nil, nil) when
// the user has no brand record. Absent brand data is a valid scoring input,
// not an error.
func (s *Store) GetCompanyByUser(ctx context.Context, userID string) (*models.Company, error) {
	var row Company
	err := s.withCtx(ctx).Where("owner_user_id = ?", userID).Limit(1).Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, nil
	}
	return row.toModel(), nil
}

// UpsertCompany inserts or updates a company brand record, keyed by owner.
func (s *Store) UpsertCompany(ctx context.Context, company *models.Company) error {
	row := &Company{
		ID:             company.ID,
		Name:           company.Name,
		OwnerUserID:    company.OwnerUserID,
		PrimaryColor:   company.PrimaryColor,
		SecondaryColor: company.SecondaryColor,
		AccentColor:    company.AccentColor,
		BrandColors:    company.BrandColors,
		Industry:       company.Industry,
		UpdatedAtEpoch: time.Now().UnixMilli(),
	}

	err := s.withCtx(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "primary_color", "secondary_color", "accent_color", "brand_colors", "industry", "updated_at_epoch"}),
		}).
		Create(row).Error
	if err != nil {
		return err
	}
	company.ID = row.ID
	return nil
}
