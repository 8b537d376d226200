package models

// ParticipantsMode decides how many players take part in a challenge
type ParticipantsMode string

const (
	// ParticipantsModeAuto draws a random group size up to MaxAutoPlayers
	ParticipantsModeAuto ParticipantsMode = "auto"

	// ParticipantsModeSolo always picks one player
	ParticipantsModeSolo ParticipantsMode = "solo"

	// ParticipantsModeDuo picks up to two players
	ParticipantsModeDuo ParticipantsMode = "duo"

	// ParticipantsModeTrio picks up to three players
	ParticipantsModeTrio ParticipantsMode = "trio"

	// ParticipantsModeAll picks every enabled player
	ParticipantsModeAll ParticipantsMode = "all"
)

// IsValid reports whether the mode is known
func (m ParticipantsMode) IsValid() bool {
	switch m {
	case ParticipantsModeAuto, ParticipantsModeSolo, ParticipantsModeDuo, ParticipantsModeTrio, ParticipantsModeAll:
		return true
	}
	return false
}

// Settings holds the tunable rules of a session
type Settings struct {
	// KeepScore awards a point to each winner when set
	KeepScore bool `json:"keepScore" yaml:"keepScore"`

	// TimerSeconds is the default challenge length
	TimerSeconds int `json:"timerSeconds" yaml:"timerSeconds"`

	ParticipantsMode ParticipantsMode `json:"participantsMode" yaml:"participantsMode"`

	// RecentChallengeWindow bounds the anti-repeat queue
	RecentChallengeWindow int `json:"recentChallengeWindow" yaml:"recentChallengeWindow"`

	// AvoidRepeats excludes recently drawn challenges from selection
	AvoidRepeats bool `json:"avoidRepeats" yaml:"avoidRepeats"`

	// MaxAutoPlayers caps the group size drawn in auto mode
	MaxAutoPlayers int `json:"maxAutoPlayers" yaml:"maxAutoPlayers"`
}
