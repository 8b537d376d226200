package messaging

import (
	"time"

	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/random"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// Error types understood by GetErrorMessage
const (
	ErrorTypeNoPlayers      = "no_players"
	ErrorTypeNoChallenge    = "no_challenge"
	ErrorTypeNotParticipant = "not_participant"
	ErrorTypeNoSession      = "no_session"
	ErrorTypePlayerNotFound = "player_not_found"
)

// GetPhaseMessageInput contains parameters for announcing a phase
type GetPhaseMessageInput struct {
	Phase models.GamePhase

	// ChallengeTitle is empty when no challenge is active
	ChallengeTitle string

	// PlayerNames are the participants in draw order
	PlayerNames []string

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetPhaseMessageOutput contains the phase announcement
type GetPhaseMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetCelebrationMessageInput contains parameters for a celebration message
type GetCelebrationMessageInput struct {
	WinnerNames    []string
	ChallengeTitle string

	// Celebrations is the session's celebration counter
	Celebrations int
}

// GetCelebrationMessageOutput contains the celebration message
type GetCelebrationMessageOutput struct {
	Title   string
	Message string
}

// GetScoreboardMessageInput is the input for GetScoreboardMessage
type GetScoreboardMessageInput struct {
	PlayerName   string
	Score        int
	Rank         int
	TotalPlayers int
}

// GetScoreboardMessageOutput is the output for GetScoreboardMessage
type GetScoreboardMessageOutput struct {
	Message string
}

// GetRerollWaitMessageInput contains parameters for the cooldown message
type GetRerollWaitMessageInput struct {
	Remaining time.Duration
}

// GetRerollWaitMessageOutput contains the cooldown message
type GetRerollWaitMessageOutput struct {
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorType is one of the ErrorType constants
	ErrorType string

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}

// Config contains configuration for the messaging service
type Config struct {
	// Random picks between phrasings. Defaults to a randomly seeded mulberry32.
	Random random.Source
}
