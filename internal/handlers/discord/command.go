package discord

import (
	"github.com/bwmarrin/discordgo"
)

// Embed colours
const (
	colorInfo    = 0x3498db
	colorSuccess = 0x00ff00
	colorWarning = 0xffbe3d
	colorError   = 0xff0000
)

// maxButtonsPerRow is Discord's limit for components in one action row
const maxButtonsPerRow = 5

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// reply is the response to an interaction before it is sent to Discord
type reply struct {
	Title       string
	Description string
	Color       int
	Fields      []*discordgo.MessageEmbedField
	Buttons     []discordgo.Button

	// Ephemeral replies are only visible to the user who interacted
	Ephemeral bool
}

func (r *reply) embed() *discordgo.MessageEmbed {
	color := r.Color
	if color == 0 {
		color = colorInfo
	}
	return &discordgo.MessageEmbed{
		Title:       r.Title,
		Description: r.Description,
		Color:       color,
		Fields:      r.Fields,
	}
}

// components splits the buttons into action rows
func (r *reply) components() []discordgo.MessageComponent {
	rows := []discordgo.MessageComponent{}
	for start := 0; start < len(r.Buttons); start += maxButtonsPerRow {
		end := min(start+maxButtonsPerRow, len(r.Buttons))
		row := discordgo.ActionsRow{}
		for _, button := range r.Buttons[start:end] {
			row.Components = append(row.Components, button)
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *reply) data() *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{r.embed()},
		Components: r.components(),
	}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}

// RespondWithReply sends a new message in response to an interaction
func RespondWithReply(s *discordgo.Session, i *discordgo.InteractionCreate, r *reply) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: r.data(),
	})
}

// UpdateWithReply replaces the message a component belongs to
func UpdateWithReply(s *discordgo.Session, i *discordgo.InteractionCreate, r *reply) error {
	if r.Ephemeral {
		// Ephemeral notes go out as a separate message so the board stays put
		return RespondWithReply(s, i, r)
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: r.data(),
	})
}

// RespondWithError sends an error response to an interaction
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, errorMessage string) error {
	return RespondWithReply(s, i, &reply{
		Title:       "Error",
		Description: errorMessage,
		Color:       colorError,
		Ephemeral:   true,
	})
}

// RespondWithEphemeralMessage sends an ephemeral message response to an interaction
func RespondWithEphemeralMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
