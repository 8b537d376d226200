package models

import "time"

// EventType identifies what happened in a session
type EventType string

const (
	// EventTypePhaseChanged is emitted whenever the game phase changes
	EventTypePhaseChanged EventType = "phase_changed"

	// EventTypeCelebration is emitted every time winners are recorded
	EventTypeCelebration EventType = "celebration"
)

// Event is a change notification for presentation collaborators
type Event struct {
	Type EventType

	// PreviousPhase is only set for phase changes
	PreviousPhase GamePhase
	Phase         GamePhase

	// ChallengeID is the active challenge when the event fired, if any
	ChallengeID string
	PlayerIDs   []string
	WinnerIDs   []string

	// Celebrations is the celebration counter after the event
	Celebrations int

	Timestamp time.Time
}
