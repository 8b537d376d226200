package settings

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/partyroll/internal/repositories/settings Repository

import (
	"context"

	"github.com/KirkDiggler/partyroll/internal/models"
)

// Repository defines the interface for named settings presets
type Repository interface {
	// SaveSettings stores a preset under a name
	SaveSettings(ctx context.Context, input *SaveSettingsInput) error

	// GetSettings retrieves a preset by name
	GetSettings(ctx context.Context, input *GetSettingsInput) (*models.Settings, error)

	// ListSettings returns the names of all stored presets
	ListSettings(ctx context.Context, input *ListSettingsInput) (*ListSettingsOutput, error)
}
