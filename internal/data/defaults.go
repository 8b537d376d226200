package data

import (
	_ "embed"
	"fmt"

	"github.com/KirkDiggler/partyroll/internal/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var defaultChallenges []*models.Challenge

func init() {
	challenges, err := DecodeCatalogBytes(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	defaultChallenges = challenges
}

// DefaultChallenges returns a fresh copy of the built-in catalog
func DefaultChallenges() []*models.Challenge {
	out := make([]*models.Challenge, 0, len(defaultChallenges))
	for _, c := range defaultChallenges {
		out = append(out, c.Clone())
	}
	return out
}

// DefaultPlayers returns a fresh copy of the built-in player palette
func DefaultPlayers() []*models.Player {
	return []*models.Player{
		{ID: "julot", Name: "Julot", Color: "#ff8a8a", Accent: "#ffd1d1", Sprite: "Julot.png", Enabled: true},
		{ID: "flo", Name: "Flo", Color: "#6dd5ff", Accent: "#c9f1ff", Sprite: "Flo.png", Enabled: true},
		{ID: "tess", Name: "Tess", Color: "#ffbe3d", Accent: "#ffe3a8", Sprite: "Tess.png", Enabled: true},
		{ID: "bas", Name: "Bas", Color: "#c98bff", Accent: "#f1d9ff", Sprite: "Bas.png", Enabled: true},
	}
}

// DefaultSettings returns the rules a new session starts with
func DefaultSettings() models.Settings {
	return models.Settings{
		KeepScore:             true,
		TimerSeconds:          75,
		ParticipantsMode:      models.ParticipantsModeAuto,
		RecentChallengeWindow: 4,
		AvoidRepeats:          true,
		MaxAutoPlayers:        4,
	}
}
