// Package db defines storage interfaces for the brandmatch stores.
package db

import (
	"context"

	"github.com/Maiuran1404/brandmatch/pkg/models"
)

// CatalogQuery filters a style catalog listing. Zero values mean "no filter";
// Limit <= 0 means no limit.
type CatalogQuery struct {
	DeliverableType models.DeliverableType
	StyleAxis       string
	Offset          int
	Limit           int
}

// CatalogReader defines read operations for the style and video catalogs.
// Listings return active entries ordered by (featured_order, display_order)
// so curator intent survives score ties downstream.
type CatalogReader interface {
	ListStyleReferences(ctx context.Context, q CatalogQuery) ([]*models.StyleReference, error)
	GetStyleReferenceByID(ctx context.Context, id string) (*models.StyleReference, error)
	ListVideoReferences(ctx context.Context, q CatalogQuery) ([]*models.VideoReference, error)
}

// CatalogWriter defines write operations for the catalogs, used by admin
// endpoints and the seed tool.
type CatalogWriter interface {
	UpsertStyleReference(ctx context.Context, ref *models.StyleReference) error
	UpsertVideoReference(ctx context.Context, ref *models.VideoReference) error
	IncrementUsageCount(ctx context.Context, styleID string) error
}

// CatalogStore combines catalog read and write operations.
type CatalogStore interface {
	CatalogReader
	CatalogWriter
}

// CompanyReader defines read operations for company brand records.
// GetCompanyByUser returns (nil, nil) when the user has no company.
type CompanyReader interface {
	GetCompanyByUser(ctx context.Context, userID string) (*models.Company, error)
}

// CompanyWriter defines write operations for company brand records.
type CompanyWriter interface {
	UpsertCompany(ctx context.Context, company *models.Company) error
}

// CompanyStore combines company read and write operations.
type CompanyStore interface {
	CompanyReader
	CompanyWriter
}

// SelectionStore records user style selections and aggregates them per axis
// for the history booster.
type SelectionStore interface {
	RecordSelection(ctx context.Context, sel *models.StyleSelection) error
	AxisSelectionCounts(ctx context.Context, userID string, deliverableType models.DeliverableType) ([]*models.AxisSelectionCount, error)
}

// Store is the full storage surface the worker wires up.
type Store interface {
	CatalogStore
	CompanyStore
	SelectionStore

	Ping() error
	Close() error
}
