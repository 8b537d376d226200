package models

// ChallengeType describes how a challenge is played
type ChallengeType string

const (
	// ChallengeTypeIndividual is played by each participant on their own
	ChallengeTypeIndividual ChallengeType = "individual"

	// ChallengeTypeVersus pits the participants against each other
	ChallengeTypeVersus ChallengeType = "versus"
)

// IsValid reports whether the type is a known challenge type
func (t ChallengeType) IsValid() bool {
	return t == ChallengeTypeIndividual || t == ChallengeTypeVersus
}

// Challenge is an entry in the challenge catalog
type Challenge struct {
	// ID is the unique identifier for the challenge
	ID string `json:"id" yaml:"id"`

	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Type        ChallengeType `json:"type" yaml:"type"`

	// MinPlayers is the smallest group that can play the challenge
	MinPlayers int `json:"minPlayers" yaml:"minPlayers"`

	// MaxPlayers is the largest group that can play the challenge
	MaxPlayers int `json:"maxPlayers" yaml:"maxPlayers"`

	// TimerOverrideSeconds replaces the default timer length when set
	TimerOverrideSeconds *int `json:"timerOverrideSeconds,omitempty" yaml:"timerOverrideSeconds,omitempty"`
}

// Clone returns a deep copy of the challenge
func (c *Challenge) Clone() *Challenge {
	if c == nil {
		return nil
	}
	out := *c
	if c.TimerOverrideSeconds != nil {
		v := *c.TimerOverrideSeconds
		out.TimerOverrideSeconds = &v
	}
	return &out
}
