package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetPhaseMessage returns an announcement for a session phase
	GetPhaseMessage(ctx context.Context, input *GetPhaseMessageInput) (*GetPhaseMessageOutput, error)

	// GetCelebrationMessage returns a message for the winners of a challenge
	GetCelebrationMessage(ctx context.Context, input *GetCelebrationMessageInput) (*GetCelebrationMessageOutput, error)

	// GetScoreboardMessage returns a comment for a player's place on the scoreboard
	GetScoreboardMessage(ctx context.Context, input *GetScoreboardMessageInput) (*GetScoreboardMessageOutput, error)

	// GetRerollWaitMessage returns a message while the reroll cooldown is active
	GetRerollWaitMessage(ctx context.Context, input *GetRerollWaitMessageInput) (*GetRerollWaitMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
