package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/partyroll/internal/common/clock"
	"github.com/KirkDiggler/partyroll/internal/services/game"
	"github.com/KirkDiggler/partyroll/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

const defaultTickInterval = 500 * time.Millisecond

// GameFactory builds a game session that reports its events to notifier
type GameFactory func(channelID string, notifier game.Notifier) (game.Service, error)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	party      *PartyCommand
	sessions   *Sessions
	messaging  messaging.Service
	config     *Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// How often running timers are advanced, defaults to 500ms
	TickInterval time.Duration

	// Builds the game session for each channel
	GameFactory GameFactory

	Messaging messaging.Service
	Clock     clock.Clock
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.GameFactory == nil {
		return nil, errors.New("game factory cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		messaging:  cfg.Messaging,
		config:     cfg,
	}

	bot.sessions, err = NewSessions(bot.newSession)
	if err != nil {
		return nil, err
	}
	bot.party = NewPartyCommand(bot.sessions, cfg.Messaging, cfg.Clock)

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// newSession builds a channel's game with a notifier posting back to that channel
func (b *Bot) newSession(channelID string) (game.Service, error) {
	notifier, err := NewNotifier(&NotifierConfig{
		ChannelID: channelID,
		Sessions:  b.sessions,
		Sender:    b.session,
		Messaging: b.messaging,
	})
	if err != nil {
		return nil, err
	}

	return b.config.GameFactory(channelID, notifier)
}

// Start initializes the Discord connection, registers commands and starts the timer loop
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.RegisterCommand(b.party); err != nil {
		return fmt.Errorf("failed to register party command: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.wg.Add(1)
	go b.tickLoop(ctx)

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// tickLoop advances every channel's timer until ctx is cancelled
func (b *Bot) tickLoop(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, channelID := range b.sessions.TickAll(ctx) {
				log.Printf("Time is up in channel %s", channelID)
			}
		}
	}
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	if b.cancel != nil {
		b.cancel()
		b.wg.Wait()
	}

	// Remove all commands
	appID := b.appID()
	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		} else {
			log.Printf("Successfully deleted command %s (ID: %s)", cmdName, cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := b.config.GuildID
	if guildID != "" {
		log.Printf("Registering command %s for guild %s", cmd.GetName(), guildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	// Fall back to session user ID if application ID is not provided
	return b.session.State.User.ID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		// Every button on the board belongs to the party command
		if err := b.party.HandleComponent(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}
