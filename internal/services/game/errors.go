package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig               GameError = "config cannot be nil"
	ErrNilInput                GameError = "input cannot be nil"
	ErrNilSettingsRepo         GameError = "settings repository cannot be nil"
	ErrNilCatalogRepo          GameError = "catalog repository cannot be nil"
	ErrPlayerNotFound          GameError = "player not found"
	ErrDuplicatePlayerID       GameError = "duplicate player id"
	ErrInvalidPlayer           GameError = "invalid player"
	ErrInvalidScore            GameError = "score cannot be negative"
	ErrChallengeNotFound       GameError = "challenge not found"
	ErrInvalidChallenge        GameError = "invalid challenge"
	ErrDuplicateChallengeID    GameError = "duplicate challenge id"
	ErrInvalidSettings         GameError = "invalid settings"
	ErrInvalidTimerSeconds     GameError = "timer seconds must be positive"
	ErrInvalidParticipantsMode GameError = "unknown participants mode"
	ErrInvalidRecentWindow     GameError = "recent challenge window cannot be negative"
	ErrInvalidMaxAutoPlayers   GameError = "max auto players must be positive"
	ErrInvalidName             GameError = "name cannot be empty"
)
