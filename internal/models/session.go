package models

import (
	"time"
)

// GamePhase represents where the session is in a challenge's lifecycle
type GamePhase string

const (
	// GamePhaseIdle indicates no challenge has been drawn
	GamePhaseIdle GamePhase = "idle"

	// GamePhaseReady indicates a challenge is drawn and waiting to start
	GamePhaseReady GamePhase = "ready"

	// GamePhaseRunning indicates the countdown is active
	GamePhaseRunning GamePhase = "running"

	// GamePhaseTimeUp indicates the countdown reached zero
	GamePhaseTimeUp GamePhase = "timeup"

	// GamePhaseComplete indicates winners were recorded
	GamePhaseComplete GamePhase = "complete"
)

// IsFinished reports whether a fresh challenge must be drawn before starting again
func (p GamePhase) IsFinished() bool {
	return p == GamePhaseComplete || p == GamePhaseTimeUp
}

// Timer is the countdown state of the active challenge
type Timer struct {
	Running bool

	// RemainingSeconds never drops below zero
	RemainingSeconds float64

	// EndsAt is zero while the timer is not running
	EndsAt time.Time
}
