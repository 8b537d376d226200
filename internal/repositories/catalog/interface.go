package catalog

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/partyroll/internal/repositories/catalog Repository

import (
	"context"
)

// Repository defines the interface for named challenge catalog persistence
type Repository interface {
	// SaveCatalog stores a catalog under a name, replacing any previous version
	SaveCatalog(ctx context.Context, input *SaveCatalogInput) error

	// GetCatalog retrieves a catalog by name
	GetCatalog(ctx context.Context, input *GetCatalogInput) (*GetCatalogOutput, error)

	// ListCatalogs returns the names of all stored catalogs
	ListCatalogs(ctx context.Context, input *ListCatalogsInput) (*ListCatalogsOutput, error)

	// DeleteCatalog removes a catalog
	DeleteCatalog(ctx context.Context, input *DeleteCatalogInput) error
}
