package catalog

import (
	"time"

	"github.com/KirkDiggler/partyroll/internal/models"
)

type SaveCatalogInput struct {
	Name       string
	Challenges []*models.Challenge
	UpdatedAt  time.Time
}

type GetCatalogInput struct {
	Name string
}

type GetCatalogOutput struct {
	Name       string
	Challenges []*models.Challenge
	UpdatedAt  time.Time
}

type ListCatalogsInput struct {
}

type ListCatalogsOutput struct {
	// Names is sorted alphabetically
	Names []string
}

type DeleteCatalogInput struct {
	Name string
}
