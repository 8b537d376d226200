package game

import (
	"context"

	"github.com/KirkDiggler/partyroll/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/partyroll/internal/services/game Notifier

// Service defines the operations of a party game session
type Service interface {
	// RollChallenge draws a new challenge and participant group
	RollChallenge(ctx context.Context, input *RollChallengeInput) (*RollChallengeOutput, error)

	// StartOrResumeChallenge starts the countdown, drawing a challenge first if needed
	StartOrResumeChallenge(ctx context.Context, input *StartOrResumeChallengeInput) (*StartOrResumeChallengeOutput, error)

	// Reroll draws a replacement challenge once the cooldown has passed
	Reroll(ctx context.Context, input *RerollInput) (*RerollOutput, error)

	// Tick advances the countdown to the current time
	Tick(ctx context.Context, input *TickInput) (*TickOutput, error)

	// MarkWinners records the winners of the active challenge
	MarkWinners(ctx context.Context, input *MarkWinnersInput) (*MarkWinnersOutput, error)

	// ResetGame clears the active challenge without touching scores or history
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)

	// ResetScores sets every score to zero
	ResetScores(ctx context.Context, input *ResetScoresInput) (*ResetScoresOutput, error)

	// TogglePlayer flips whether a player is available for future rolls
	TogglePlayer(ctx context.Context, input *TogglePlayerInput) (*TogglePlayerOutput, error)

	// UpdatePlayer merges fields into a player
	UpdatePlayer(ctx context.Context, input *UpdatePlayerInput) (*UpdatePlayerOutput, error)

	// ClearHistory empties the challenge history
	ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error)

	SetTimerSeconds(ctx context.Context, input *SetTimerSecondsInput) (*SetTimerSecondsOutput, error)
	SetParticipantsMode(ctx context.Context, input *SetParticipantsModeInput) (*SetParticipantsModeOutput, error)
	SetMaxAutoPlayers(ctx context.Context, input *SetMaxAutoPlayersInput) (*SetMaxAutoPlayersOutput, error)
	SetKeepScore(ctx context.Context, input *SetKeepScoreInput) (*SetKeepScoreOutput, error)
	SetRecentWindow(ctx context.Context, input *SetRecentWindowInput) (*SetRecentWindowOutput, error)
	SetAvoidRepeats(ctx context.Context, input *SetAvoidRepeatsInput) (*SetAvoidRepeatsOutput, error)

	// UpsertChallenge adds a challenge or replaces the one with the same ID
	UpsertChallenge(ctx context.Context, input *UpsertChallengeInput) (*UpsertChallengeOutput, error)

	// DeleteChallenge removes a challenge from the catalog
	DeleteChallenge(ctx context.Context, input *DeleteChallengeInput) (*DeleteChallengeOutput, error)

	// ImportChallenges replaces the whole catalog and resets the session selection
	ImportChallenges(ctx context.Context, input *ImportChallengesInput) (*ImportChallengesOutput, error)

	// ExportChallenges returns a copy of the catalog
	ExportChallenges(ctx context.Context, input *ExportChallengesInput) (*ExportChallengesOutput, error)

	// SetSeed reseeds the random source
	SetSeed(ctx context.Context, input *SetSeedInput) (*SetSeedOutput, error)

	// RandomizeSeed reseeds the random source with a fresh seed
	RandomizeSeed(ctx context.Context, input *RandomizeSeedInput) (*RandomizeSeedOutput, error)

	// GetState returns a snapshot of the session
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)

	// GetScoreboard returns players ordered by score
	GetScoreboard(ctx context.Context, input *GetScoreboardInput) (*GetScoreboardOutput, error)

	// SaveCatalog stores the current catalog under a name
	SaveCatalog(ctx context.Context, input *SaveCatalogInput) (*SaveCatalogOutput, error)

	// LoadCatalog imports a stored catalog
	LoadCatalog(ctx context.Context, input *LoadCatalogInput) (*LoadCatalogOutput, error)

	// ListCatalogs returns the names of stored catalogs
	ListCatalogs(ctx context.Context, input *ListCatalogsInput) (*ListCatalogsOutput, error)

	// SaveSettings stores the current settings under a name
	SaveSettings(ctx context.Context, input *SaveSettingsInput) (*SaveSettingsOutput, error)

	// LoadSettings applies a stored settings preset
	LoadSettings(ctx context.Context, input *LoadSettingsInput) (*LoadSettingsOutput, error)
}

// Notifier receives session events after the mutation that produced them
type Notifier interface {
	Notify(ctx context.Context, event *models.Event)
}
