package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// GORM models. JSON array columns use models.JSONStringArray, which already
// implements sql.Scanner and driver.Valuer.

// StyleReference is the persisted style catalog row.
type StyleReference struct {
	ID              string                 `gorm:"primaryKey;type:text"`
	Name            string                 `gorm:"not null"`
	Description     string                 `gorm:"type:text"`
	ImageURL        string                 `gorm:"type:text"`
	DeliverableType string                 `gorm:"index:idx_styles_deliverable;index:idx_styles_deliverable_axis,priority:1;not null"`
	StyleAxis       string                 `gorm:"index:idx_styles_deliverable_axis,priority:2;not null"`
	SubStyle        string                 `gorm:"type:text"`
	SemanticTags    models.JSONStringArray `gorm:"type:text"`
	Industries      models.JSONStringArray `gorm:"type:text"`
	MoodKeywords    models.JSONStringArray `gorm:"type:text"`
	UsageCount      int                    `gorm:"default:0"`
	FeaturedOrder   int                    `gorm:"default:0;index:idx_styles_order,priority:1"`
	DisplayOrder    int                    `gorm:"default:0;index:idx_styles_order,priority:2"`
	IsActive        bool                   `gorm:"default:true;index:idx_styles_active"`
	CreatedAtEpoch  int64                  `gorm:"not null"`
	UpdatedAtEpoch  int64                  `gorm:"not null"`
}

func (StyleReference) TableName() string { return "style_references" }

// BeforeCreate hook to ensure ID and timestamps are set.
func (r *StyleReference) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now().UnixMilli()
	if r.CreatedAtEpoch == 0 {
		r.CreatedAtEpoch = now
	}
	if r.UpdatedAtEpoch == 0 {
		r.UpdatedAtEpoch = now
	}
	return nil
}

// VideoReference is the persisted video catalog row.
type VideoReference struct {
	ID             string                 `gorm:"primaryKey;type:text"`
	Title          string                 `gorm:"not null"`
	Description    string                 `gorm:"type:text"`
	VideoURL       string                 `gorm:"type:text"`
	ThumbnailURL   string                 `gorm:"type:text"`
	StyleAxis      string                 `gorm:"index:idx_videos_axis;not null"`
	Intents        models.JSONStringArray `gorm:"type:text"`
	Platforms      models.JSONStringArray `gorm:"type:text"`
	Topics         models.JSONStringArray `gorm:"type:text"`
	Industries     models.JSONStringArray `gorm:"type:text"`
	MoodKeywords   models.JSONStringArray `gorm:"type:text"`
	UsageCount     int                    `gorm:"default:0"`
	FeaturedOrder  int                    `gorm:"default:0;index:idx_videos_order,priority:1"`
	DisplayOrder   int                    `gorm:"default:0;index:idx_videos_order,priority:2"`
	IsActive       bool                   `gorm:"default:true;index:idx_videos_active"`
	CreatedAtEpoch int64                  `gorm:"not null"`
	UpdatedAtEpoch int64                  `gorm:"not null"`
}

func (VideoReference) TableName() string { return "video_references" }

// BeforeCreate hook to ensure ID and timestamps are set.
func (r *VideoReference) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now().UnixMilli()
	if r.CreatedAtEpoch == 0 {
		r.CreatedAtEpoch = now
	}
	if r.UpdatedAtEpoch == 0 {
		r.UpdatedAtEpoch = now
	}
	return nil
}

// Company is the persisted brand record.
type Company struct {
	ID             string                 `gorm:"primaryKey;type:text"`
	Name           string                 `gorm:"not null"`
	OwnerUserID    string                 `gorm:"uniqueIndex:idx_companies_owner;not null"`
	PrimaryColor   string                 `gorm:"type:text"`
	SecondaryColor string                 `gorm:"type:text"`
	AccentColor    string                 `gorm:"type:text"`
	BrandColors    models.JSONStringArray `gorm:"type:text"`
	Industry       string                 `gorm:"type:text"`
	CreatedAtEpoch int64                  `gorm:"not null"`
	UpdatedAtEpoch int64                  `gorm:"not null"`
}

func (Company) TableName() string { return "companies" }

// BeforeCreate hook to ensure ID and timestamps are set.
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UnixMilli()
	if c.CreatedAtEpoch == 0 {
		c.CreatedAtEpoch = now
	}
	if c.UpdatedAtEpoch == 0 {
		c.UpdatedAtEpoch = now
	}
	return nil
}

// StyleSelection is the persisted selection event feeding the history booster.
type StyleSelection struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	UserID          string `gorm:"index:idx_selections_user_type,priority:1;not null"`
	StyleID         string `gorm:"index;not null"`
	StyleAxis       string `gorm:"not null"`
	DeliverableType string `gorm:"index:idx_selections_user_type,priority:2;not null"`
	SelectedAtEpoch int64  `gorm:"index:idx_selections_time,sort:desc;not null"`
}

func (StyleSelection) TableName() string { return "style_selections" }

// BeforeCreate hook to ensure the timestamp is set.
func (s *StyleSelection) BeforeCreate(tx *gorm.DB) error {
	if s.SelectedAtEpoch == 0 {
		s.SelectedAtEpoch = time.Now().UnixMilli()
	}
	return nil
}

// Conversions between GORM rows and domain models.

func (r *StyleReference) toModel() *models.StyleReference {
	return &models.StyleReference{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		DeliverableType: models.DeliverableType(r.DeliverableType),
		StyleAxis:       r.StyleAxis,
		SubStyle:        r.SubStyle,
		SemanticTags:    r.SemanticTags,
		Industries:      r.Industries,
		MoodKeywords:    r.MoodKeywords,
		UsageCount:      r.UsageCount,
		FeaturedOrder:   r.FeaturedOrder,
		DisplayOrder:    r.DisplayOrder,
		IsActive:        r.IsActive,
	}
}

func styleRowFromModel(m *models.StyleReference) *StyleReference {
	return &StyleReference{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		ImageURL:        m.ImageURL,
		DeliverableType: string(m.DeliverableType),
		StyleAxis:       m.StyleAxis,
		SubStyle:        m.SubStyle,
		SemanticTags:    m.SemanticTags,
		Industries:      m.Industries,
		MoodKeywords:    m.MoodKeywords,
		UsageCount:      m.UsageCount,
		FeaturedOrder:   m.FeaturedOrder,
		DisplayOrder:    m.DisplayOrder,
		IsActive:        m.IsActive,
	}
}

func (r *VideoReference) toModel() *models.VideoReference {
	return &models.VideoReference{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		VideoURL:      r.VideoURL,
		ThumbnailURL:  r.ThumbnailURL,
		StyleAxis:     r.StyleAxis,
		Intents:       r.Intents,
		Platforms:     r.Platforms,
		Topics:        r.Topics,
		Industries:    r.Industries,
		MoodKeywords:  r.MoodKeywords,
		UsageCount:    r.UsageCount,
		FeaturedOrder: r.FeaturedOrder,
		DisplayOrder:  r.DisplayOrder,
		IsActive:      r.IsActive,
	}
}

func videoRowFromModel(m *models.VideoReference) *VideoReference {
	return &VideoReference{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		VideoURL:      m.VideoURL,
		ThumbnailURL:  m.ThumbnailURL,
		StyleAxis:     m.StyleAxis,
		Intents:       m.Intents,
		Platforms:     m.Platforms,
		Topics:        m.Topics,
		Industries:    m.Industries,
		MoodKeywords:  m.MoodKeywords,
		UsageCount:    m.UsageCount,
		FeaturedOrder: m.FeaturedOrder,
		DisplayOrder:  m.DisplayOrder,
		IsActive:      m.IsActive,
	}
}

func (c *Company) toModel() *models.Company {
	return &models.Company{
		ID:             c.ID,
		Name:           c.Name,
		OwnerUserID:    c.OwnerUserID,
		PrimaryColor:   c.PrimaryColor,
		SecondaryColor: c.SecondaryColor,
		AccentColor:    c.AccentColor,
		BrandColors:    c.BrandColors,
		Industry:       c.Industry,
	}
}
