package settings

import "github.com/KirkDiggler/partyroll/internal/models"

type SaveSettingsInput struct {
	Name     string
	Settings *models.Settings
}

type GetSettingsInput struct {
	Name string
}

type ListSettingsInput struct {
}

type ListSettingsOutput struct {
	Names []string
}
