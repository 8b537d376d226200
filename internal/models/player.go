package models

// Player is a member of the party. Players are never removed, only toggled.
type Player struct {
	// ID is the stable identifier for the player
	ID string `json:"id" yaml:"id"`

	// Name is the display name of the player
	Name string `json:"name" yaml:"name"`

	// Color is the primary display colour
	Color string `json:"color" yaml:"color"`

	// Accent is the secondary display colour
	Accent string `json:"accent" yaml:"accent"`

	// Sprite references the player's avatar asset
	Sprite string `json:"sprite" yaml:"sprite"`

	// Enabled marks the player as available for future rolls
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Score is the number of challenges won while score keeping was on
	Score int `json:"score" yaml:"score"`
}

// PlayerUpdate carries the fields to merge into a player. Nil fields are left alone.
type PlayerUpdate struct {
	Name    *string
	Color   *string
	Accent  *string
	Sprite  *string
	Enabled *bool
	Score   *int
}

// Apply merges the update into the player
func (u *PlayerUpdate) Apply(p *Player) {
	if u == nil || p == nil {
		return
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Color != nil {
		p.Color = *u.Color
	}
	if u.Accent != nil {
		p.Accent = *u.Accent
	}
	if u.Sprite != nil {
		p.Sprite = *u.Sprite
	}
	if u.Enabled != nil {
		p.Enabled = *u.Enabled
	}
	if u.Score != nil {
		p.Score = *u.Score
	}
}
