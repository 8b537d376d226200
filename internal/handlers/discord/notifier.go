package discord

//go:generate mockgen -package=mocks -destination=mocks/mock_message_sender.go github.com/KirkDiggler/partyroll/internal/handlers/discord MessageSender

import (
	"context"
	"errors"
	"log"

	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/services/game"
	"github.com/KirkDiggler/partyroll/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// MessageSender posts embeds to a channel. *discordgo.Session satisfies it.
type MessageSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// NotifierConfig holds the dependencies of a channel notifier
type NotifierConfig struct {
	ChannelID string
	Sessions  *Sessions
	Sender    MessageSender
	Messaging messaging.Service
}

// Notifier announces time-ups and celebrations in the session's channel
type Notifier struct {
	channelID string
	sessions  *Sessions
	sender    MessageSender
	messaging messaging.Service
}

var _ game.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier bound to one channel
func NewNotifier(cfg *NotifierConfig) (*Notifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.ChannelID == "" {
		return nil, errors.New("channel id cannot be empty")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("sessions cannot be nil")
	}
	if cfg.Sender == nil {
		return nil, errors.New("sender cannot be nil")
	}
	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	return &Notifier{
		channelID: cfg.ChannelID,
		sessions:  cfg.Sessions,
		sender:    cfg.Sender,
		messaging: cfg.Messaging,
	}, nil
}

// Notify posts an announcement for the events players should not miss
func (n *Notifier) Notify(ctx context.Context, event *models.Event) {
	if event == nil {
		return
	}

	var embed *discordgo.MessageEmbed
	switch {
	case event.Type == models.EventTypePhaseChanged && event.Phase == models.GamePhaseTimeUp:
		embed = n.timeUpEmbed(ctx, event)
	case event.Type == models.EventTypeCelebration:
		embed = n.celebrationEmbed(ctx, event)
	default:
		return
	}
	if embed == nil {
		return
	}

	if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed); err != nil {
		log.Printf("Error posting %s announcement to channel %s: %v", event.Type, n.channelID, err)
	}
}

func (n *Notifier) timeUpEmbed(ctx context.Context, event *models.Event) *discordgo.MessageEmbed {
	state := n.state(ctx)

	output, err := n.messaging.GetPhaseMessage(ctx, &messaging.GetPhaseMessageInput{
		Phase:          event.Phase,
		ChallengeTitle: challengeTitle(state, event.ChallengeID),
		PlayerNames:    playerNames(state, event.PlayerIDs),
	})
	if err != nil {
		log.Printf("Error getting time up message: %v", err)
		return nil
	}

	return &discordgo.MessageEmbed{
		Title:       output.Title,
		Description: output.Message,
		Color:       colorWarning,
	}
}

func (n *Notifier) celebrationEmbed(ctx context.Context, event *models.Event) *discordgo.MessageEmbed {
	state := n.state(ctx)

	output, err := n.messaging.GetCelebrationMessage(ctx, &messaging.GetCelebrationMessageInput{
		WinnerNames:    playerNames(state, event.WinnerIDs),
		ChallengeTitle: challengeTitle(state, event.ChallengeID),
		Celebrations:   event.Celebrations,
	})
	if err != nil {
		log.Printf("Error getting celebration message: %v", err)
		return nil
	}

	return &discordgo.MessageEmbed{
		Title:       output.Title,
		Description: output.Message,
		Color:       colorSuccess,
	}
}

// state looks up the channel's session for display names. Nil when it is gone.
func (n *Notifier) state(ctx context.Context) *game.GetStateOutput {
	svc, ok := n.sessions.Get(n.channelID)
	if !ok {
		return nil
	}

	state, err := svc.GetState(ctx, &game.GetStateInput{})
	if err != nil {
		log.Printf("Error getting state for channel %s: %v", n.channelID, err)
		return nil
	}
	return state
}
