package game

import (
	"time"

	"github.com/KirkDiggler/partyroll/internal/common/clock"
	"github.com/KirkDiggler/partyroll/internal/common/uuid"
	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/random"
	catalogRepo "github.com/KirkDiggler/partyroll/internal/repositories/catalog"
	settingsRepo "github.com/KirkDiggler/partyroll/internal/repositories/settings"
)

// minTimerSeconds is the floor applied by SetTimerSeconds
const minTimerSeconds = 10

// Config holds configuration for the game service
type Config struct {
	// Players defaults to the built-in palette
	Players []*models.Player

	// Challenges defaults to the built-in catalog
	Challenges []*models.Challenge

	// Settings defaults to the built-in rules
	Settings *models.Settings

	// RerollCooldown is the minimum time between rerolls, zero disables it
	RerollCooldown time.Duration

	// Seed for the random source. Zero derives one from the clock.
	Seed int64

	// Repository dependencies, optional
	CatalogRepo  catalogRepo.Repository
	SettingsRepo settingsRepo.Repository

	// Service dependencies, defaults are used when nil
	Random        random.Source
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Notifier      Notifier
}

// RollChallengeInput contains parameters for drawing a challenge
type RollChallengeInput struct {
}

// RollChallengeOutput contains the drawn challenge
type RollChallengeOutput struct {
	// Selected is false when no challenge could be drawn
	Selected bool

	Challenge *models.Challenge

	// PlayerIDs are the chosen participants in draw order
	PlayerIDs []string
}

// StartOrResumeChallengeInput contains parameters for starting the countdown
type StartOrResumeChallengeInput struct {
}

// StartOrResumeChallengeOutput contains the result of starting the countdown
type StartOrResumeChallengeOutput struct {
	// Success is false when no challenge was available
	Success bool

	// Rolled indicates a fresh challenge was drawn first
	Rolled bool

	Challenge *models.Challenge
	PlayerIDs []string
	Timer     models.Timer
}

// RerollInput contains parameters for rerolling
type RerollInput struct {
}

// RerollOutput contains the result of a reroll
type RerollOutput struct {
	// Permitted is false while the cooldown is active
	Permitted bool

	// Selected is false when the reroll found no challenge
	Selected bool

	Challenge         *models.Challenge
	PlayerIDs         []string
	RerollAvailableAt time.Time
}

// TickInput contains parameters for advancing the timer
type TickInput struct {
}

// TickOutput contains the timer after the tick
type TickOutput struct {
	Timer models.Timer
	Phase models.GamePhase

	// TimeUp is set only on the tick that ran the timer out
	TimeUp bool
}

// MarkWinnersInput contains the reported winners
type MarkWinnersInput struct {
	WinnerIDs []string
}

// MarkWinnersOutput contains the result of recording winners
type MarkWinnersOutput struct {
	// Recorded is false when there was nothing to record
	Recorded bool

	// Record is the appended history entry
	Record *models.ChallengeRecord

	// Celebrations is the celebration counter after the call
	Celebrations int
}

type ResetGameInput struct {
}

type ResetGameOutput struct {
	Success bool
}

type ResetScoresInput struct {
}

type ResetScoresOutput struct {
	Success bool
}

// TogglePlayerInput contains parameters for toggling a player
type TogglePlayerInput struct {
	PlayerID string
}

// TogglePlayerOutput contains the player after the toggle
type TogglePlayerOutput struct {
	Player *models.Player
}

// UpdatePlayerInput contains parameters for updating a player
type UpdatePlayerInput struct {
	PlayerID string
	Update   *models.PlayerUpdate
}

// UpdatePlayerOutput contains the player after the update
type UpdatePlayerOutput struct {
	Player *models.Player
}

type ClearHistoryInput struct {
}

type ClearHistoryOutput struct {
	// Cleared is the number of records removed
	Cleared int
}

type SetTimerSecondsInput struct {
	Seconds int
}

type SetTimerSecondsOutput struct {
	// TimerSeconds is the value after the floor was applied
	TimerSeconds int
}

type SetParticipantsModeInput struct {
	Mode models.ParticipantsMode
}

type SetParticipantsModeOutput struct {
	Mode models.ParticipantsMode
}

type SetMaxAutoPlayersInput struct {
	MaxAutoPlayers int
}

type SetMaxAutoPlayersOutput struct {
	// MaxAutoPlayers is the value after clamping
	MaxAutoPlayers int
}

type SetKeepScoreInput struct {
	KeepScore bool
}

type SetKeepScoreOutput struct {
	KeepScore bool
}

type SetRecentWindowInput struct {
	Window int
}

type SetRecentWindowOutput struct {
	Window             int
	RecentChallengeIDs []string
}

type SetAvoidRepeatsInput struct {
	AvoidRepeats bool
}

type SetAvoidRepeatsOutput struct {
	AvoidRepeats bool
}

// UpsertChallengeInput contains the challenge to add or replace
type UpsertChallengeInput struct {
	// Challenge gets a generated ID when its ID is empty
	Challenge *models.Challenge
}

// UpsertChallengeOutput contains the stored challenge
type UpsertChallengeOutput struct {
	Challenge *models.Challenge

	// Created is false when an existing challenge was replaced
	Created bool
}

type DeleteChallengeInput struct {
	ChallengeID string
}

type DeleteChallengeOutput struct {
	// Deleted is false when no challenge had the ID
	Deleted bool

	// WasActive indicates the active selection was cleared
	WasActive bool
}

type ImportChallengesInput struct {
	Challenges []*models.Challenge
}

type ImportChallengesOutput struct {
	Count int
}

type ExportChallengesInput struct {
}

type ExportChallengesOutput struct {
	Challenges []*models.Challenge
}

type SetSeedInput struct {
	Seed int64
}

type SetSeedOutput struct {
	Seed int64
}

type RandomizeSeedInput struct {
}

type RandomizeSeedOutput struct {
	Seed int64
}

type GetStateInput struct {
}

// GetStateOutput is a snapshot of the session. It shares no memory with the service.
type GetStateOutput struct {
	Players        []*models.Player
	EnabledPlayers []*models.Player
	Scoreboard     []*models.Player

	Challenges []*models.Challenge
	Settings   models.Settings

	ActiveChallenge *models.Challenge
	ActivePlayerIDs []string

	Phase models.GamePhase
	Timer models.Timer

	// CurrentTimerLimit is the override of the active challenge or the default length
	CurrentTimerLimit int

	RerollAvailableAt time.Time
	RerollReady       bool

	RecentChallengeIDs []string
	History            []*models.ChallengeRecord

	Celebrations int
	Seed         int64
}

type GetScoreboardInput struct {
}

type GetScoreboardOutput struct {
	// Players sorted by score descending, then name
	Players []*models.Player
}

type SaveCatalogInput struct {
	Name string
}

type SaveCatalogOutput struct {
	Name  string
	Count int
}

type LoadCatalogInput struct {
	Name string
}

type LoadCatalogOutput struct {
	Name  string
	Count int
}

type ListCatalogsInput struct {
}

type ListCatalogsOutput struct {
	Names []string
}

type SaveSettingsInput struct {
	Name string
}

type SaveSettingsOutput struct {
	Name string
}

type LoadSettingsInput struct {
	Name string
}

type LoadSettingsOutput struct {
	Settings models.Settings
}
