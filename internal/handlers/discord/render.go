package discord

import (
	"fmt"
	"math"
	"strings"

	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/services/game"
	"github.com/bwmarrin/discordgo"
)

// Button IDs
const (
	ButtonRoll   = "party_roll"
	ButtonStart  = "party_start"
	ButtonReroll = "party_reroll"

	// ButtonWinPrefix is followed by the winning player's ID
	ButtonWinPrefix = "party_win:"
)

// renderState builds the board message for the session's current state
func renderState(state *game.GetStateOutput, title, description string) *reply {
	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Phase",
			Value:  phaseLabel(state.Phase),
			Inline: true,
		},
		{
			Name:   "Timer",
			Value:  formatTimer(state),
			Inline: true,
		},
	}

	if c := state.ActiveChallenge; c != nil {
		challenge := fmt.Sprintf("**%s** (%s, %d-%d players)", c.Title, c.Type, c.MinPlayers, c.MaxPlayers)
		if c.Description != "" {
			challenge += "\n" + c.Description
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Challenge",
			Value: challenge,
		})

		players := ""
		for _, name := range playerNames(state, state.ActivePlayerIDs) {
			players += fmt.Sprintf("**%s**\n", name)
		}
		if players != "" {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:  "Players",
				Value: players,
			})
		}
	}

	if len(state.History) > 0 {
		last := state.History[len(state.History)-1]
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Last Winners",
			Value: strings.Join(playerNames(state, last.WinnerIDs), ", "),
		})
	}

	return &reply{
		Title:       title,
		Description: description,
		Color:       phaseColor(state.Phase),
		Fields:      fields,
		Buttons:     phaseButtons(state),
	}
}

// phaseButtons offers the actions that make sense in the current phase
func phaseButtons(state *game.GetStateOutput) []discordgo.Button {
	rollButton := discordgo.Button{
		Label:    "Roll Challenge",
		Style:    discordgo.PrimaryButton,
		CustomID: ButtonRoll,
		Emoji: &discordgo.ComponentEmoji{
			Name: "🎲",
		},
	}
	rerollButton := discordgo.Button{
		Label:    "Reroll",
		Style:    discordgo.SecondaryButton,
		CustomID: ButtonReroll,
		Disabled: !state.RerollReady,
	}

	switch state.Phase {
	case models.GamePhaseReady:
		return []discordgo.Button{
			{
				Label:    "Start",
				Style:    discordgo.SuccessButton,
				CustomID: ButtonStart,
				Emoji: &discordgo.ComponentEmoji{
					Name: "⏱️",
				},
			},
			rerollButton,
		}
	case models.GamePhaseRunning, models.GamePhaseTimeUp:
		buttons := []discordgo.Button{}
		for _, p := range findPlayers(state, state.ActivePlayerIDs) {
			buttons = append(buttons, discordgo.Button{
				Label:    p.Name + " wins",
				Style:    discordgo.SuccessButton,
				CustomID: ButtonWinPrefix + p.ID,
			})
		}
		return append(buttons, rerollButton)
	}

	return []discordgo.Button{rollButton}
}

// renderScoreboard lists players by score with a comment for each
func renderScoreboard(board []*models.Player, comments []string) *reply {
	lines := ""
	for i, p := range board {
		status := ""
		if !p.Enabled {
			status = " (sitting out)"
		}
		lines += fmt.Sprintf("%d. **%s**: %d%s\n", i+1, p.Name, p.Score, status)
		if i < len(comments) && comments[i] != "" {
			lines += fmt.Sprintf("   _%s_\n", comments[i])
		}
	}
	if lines == "" {
		lines = "No players yet."
	}

	return &reply{
		Title:       "Scoreboard",
		Description: lines,
		Color:       colorSuccess,
	}
}

func phaseLabel(phase models.GamePhase) string {
	switch phase {
	case models.GamePhaseReady:
		return "Ready"
	case models.GamePhaseRunning:
		return "Running"
	case models.GamePhaseTimeUp:
		return "Time's up"
	case models.GamePhaseComplete:
		return "Complete"
	}
	return "Idle"
}

func phaseColor(phase models.GamePhase) int {
	switch phase {
	case models.GamePhaseRunning:
		return colorSuccess
	case models.GamePhaseTimeUp:
		return colorWarning
	}
	return colorInfo
}

// formatTimer shows the remaining time as m:ss, with the end time while running
func formatTimer(state *game.GetStateOutput) string {
	seconds := int(math.Ceil(state.Timer.RemainingSeconds))
	text := fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	if state.Timer.Running {
		text += fmt.Sprintf(" (ends <t:%d:R>)", state.Timer.EndsAt.Unix())
	}
	return text
}

// playerNames maps ids to display names, keeping unknown ids as they are
func playerNames(state *game.GetStateOutput, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name := id
		if state != nil {
			for _, p := range state.Players {
				if p.ID == id {
					name = p.Name
					break
				}
			}
		}
		names = append(names, name)
	}
	return names
}

func findPlayers(state *game.GetStateOutput, ids []string) []*models.Player {
	players := make([]*models.Player, 0, len(ids))
	for _, id := range ids {
		for _, p := range state.Players {
			if p.ID == id {
				players = append(players, p)
				break
			}
		}
	}
	return players
}

// findPlayer resolves a player by id or case-insensitive name
func findPlayer(state *game.GetStateOutput, ref string) *models.Player {
	ref = strings.TrimSpace(ref)
	for _, p := range state.Players {
		if p.ID == ref {
			return p
		}
	}
	for _, p := range state.Players {
		if strings.EqualFold(p.Name, ref) {
			return p
		}
	}
	return nil
}

func challengeTitle(state *game.GetStateOutput, id string) string {
	if state == nil || id == "" {
		return ""
	}
	for _, c := range state.Challenges {
		if c.ID == id {
			return c.Title
		}
	}
	return ""
}
