package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/partyroll/internal/common/clock"
	"github.com/KirkDiggler/partyroll/internal/models"
	catalogRepo "github.com/KirkDiggler/partyroll/internal/repositories/catalog"
	"github.com/KirkDiggler/partyroll/internal/services/game"
	"github.com/KirkDiggler/partyroll/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// PartyCommand handles the /party command and the board buttons
type PartyCommand struct {
	BaseCommand
	sessions  *Sessions
	messaging messaging.Service
	clock     clock.Clock
}

// NewPartyCommand creates a new party command handler
func NewPartyCommand(sessions *Sessions, messagingService messaging.Service, clk clock.Clock) *PartyCommand {
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	playerOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "player",
		Description: "Player name or id",
		Required:    true,
	}
	nameOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "name",
		Description: "Catalog name",
		Required:    true,
	}

	modeChoices := []*discordgo.ApplicationCommandOptionChoice{}
	for _, mode := range []models.ParticipantsMode{
		models.ParticipantsModeAuto,
		models.ParticipantsModeSolo,
		models.ParticipantsModeDuo,
		models.ParticipantsModeTrio,
		models.ParticipantsModeAll,
	} {
		modeChoices = append(modeChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(mode),
			Value: string(mode),
		})
	}

	return &PartyCommand{
		BaseCommand: BaseCommand{
			Name:        "party",
			Description: "Party challenge game commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roll",
					Description: "Draw a challenge and its players",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start the countdown",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reroll",
					Description: "Swap the current challenge for another",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "win",
					Description: "Record a winner of the current challenge",
					Options:     []*discordgo.ApplicationCommandOption{playerOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Clear the current challenge",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "scores",
					Description: "Show the scoreboard",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "toggle",
					Description: "Sit a player out or bring them back",
					Options:     []*discordgo.ApplicationCommandOption{playerOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "timer",
					Description: "Set the default challenge length",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "seconds",
							Description: "Length in seconds",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "mode",
					Description: "Choose how many players take part",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mode",
							Description: "Participants mode",
							Required:    true,
							Choices:     modeChoices,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "seed",
					Description: "Reseed the challenge draws",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "value",
							Description: "Seed value, leave empty for a random one",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "save",
					Description: "Save the challenge catalog",
					Options:     []*discordgo.ApplicationCommandOption{nameOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "load",
					Description: "Load a saved challenge catalog",
					Options:     []*discordgo.ApplicationCommandOption{nameOption},
				},
			},
		},
		sessions:  sessions,
		messaging: messagingService,
		clock:     clk,
	}
}

// Handle processes a Discord interaction for the party command
func (c *PartyCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx := context.Background()
	channelID := i.ChannelID
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	var r *reply
	var err error
	switch sub.Name {
	case "roll":
		r, err = c.roll(ctx, channelID)
	case "start":
		r, err = c.start(ctx, channelID)
	case "reroll":
		r, err = c.reroll(ctx, channelID)
	case "win":
		r, err = c.win(ctx, channelID, opts["player"].StringValue())
	case "reset":
		r, err = c.reset(ctx, channelID)
	case "scores":
		r, err = c.scores(ctx, channelID)
	case "toggle":
		r, err = c.toggle(ctx, channelID, opts["player"].StringValue())
	case "timer":
		r, err = c.setTimer(ctx, channelID, int(opts["seconds"].IntValue()))
	case "mode":
		r, err = c.setMode(ctx, channelID, models.ParticipantsMode(opts["mode"].StringValue()))
	case "seed":
		if opt, ok := opts["value"]; ok {
			r, err = c.setSeed(ctx, channelID, opt.IntValue())
		} else {
			r, err = c.randomizeSeed(ctx, channelID)
		}
	case "save":
		r, err = c.saveCatalog(ctx, channelID, opts["name"].StringValue())
	case "load":
		r, err = c.loadCatalog(ctx, channelID, opts["name"].StringValue())
	default:
		err = errors.New("unknown subcommand")
	}

	if err != nil {
		log.Printf("Error handling /party %s in channel %s: %v", sub.Name, channelID, err)
		return RespondWithError(s, i, "Something went wrong with that command.")
	}
	return RespondWithReply(s, i, r)
}

// HandleComponent processes the board buttons
func (c *PartyCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	channelID := i.ChannelID
	customID := i.MessageComponentData().CustomID

	var r *reply
	var err error
	switch {
	case customID == ButtonRoll:
		r, err = c.roll(ctx, channelID)
	case customID == ButtonStart:
		r, err = c.start(ctx, channelID)
	case customID == ButtonReroll:
		r, err = c.reroll(ctx, channelID)
	case strings.HasPrefix(customID, ButtonWinPrefix):
		r, err = c.win(ctx, channelID, strings.TrimPrefix(customID, ButtonWinPrefix))
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}

	if err != nil {
		log.Printf("Error handling button %s in channel %s: %v", customID, channelID, err)
		return RespondWithError(s, i, "Something went wrong with that button.")
	}
	return UpdateWithReply(s, i, r)
}

func (c *PartyCommand) roll(ctx context.Context, channelID string) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	output, err := svc.RollChallenge(ctx, &game.RollChallengeInput{})
	if err != nil {
		return nil, err
	}
	if !output.Selected {
		return c.noChallengeReply(ctx, svc)
	}

	return c.board(ctx, svc)
}

func (c *PartyCommand) start(ctx context.Context, channelID string) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	output, err := svc.StartOrResumeChallenge(ctx, &game.StartOrResumeChallengeInput{})
	if err != nil {
		return nil, err
	}
	if !output.Success {
		return c.noChallengeReply(ctx, svc)
	}

	return c.board(ctx, svc)
}

func (c *PartyCommand) reroll(ctx context.Context, channelID string) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	output, err := svc.Reroll(ctx, &game.RerollInput{})
	if err != nil {
		return nil, err
	}
	if !output.Permitted {
		wait, err := c.messaging.GetRerollWaitMessage(ctx, &messaging.GetRerollWaitMessageInput{
			Remaining: output.RerollAvailableAt.Sub(c.clock.Now()),
		})
		if err != nil {
			return nil, err
		}
		return &reply{
			Title:       "Reroll Cooling Down",
			Description: wait.Message,
			Color:       colorWarning,
			Ephemeral:   true,
		}, nil
	}
	if !output.Selected {
		return c.noChallengeReply(ctx, svc)
	}

	return c.board(ctx, svc)
}

func (c *PartyCommand) win(ctx context.Context, channelID, playerRef string) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	state, err := svc.GetState(ctx, &game.GetStateInput{})
	if err != nil {
		return nil, err
	}
	player := findPlayer(state, playerRef)
	if player == nil {
		return c.errorReply(ctx, messaging.ErrorTypePlayerNotFound), nil
	}

	output, err := svc.MarkWinners(ctx, &game.MarkWinnersInput{
		WinnerIDs: []string{player.ID},
	})
	if err != nil {
		return nil, err
	}
	if !output.Recorded {
		return c.errorReply(ctx, messaging.ErrorTypeNotParticipant), nil
	}

	return c.board(ctx, svc)
}

func (c *PartyCommand) reset(ctx context.Context, channelID string) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	if _, err := svc.ResetGame(ctx, &game.ResetGameInput{}); err != nil {
		return nil, err
	}

	return c.board(ctx, svc)
}

func (c *PartyCommand) scores(ctx context.Context, channelID string) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	output, err := svc.GetScoreboard(ctx, &game.GetScoreboardInput{})
	if err != nil {
		return nil, err
	}

	comments := make([]string, 0, len(output.Players))
	for rank, p := range output.Players {
		comment, err := c.messaging.GetScoreboardMessage(ctx, &messaging.GetScoreboardMessageInput{
			PlayerName:   p.Name,
			Score:        p.Score,
			Rank:         rank,
			TotalPlayers: len(output.Players),
		})
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment.Message)
	}

	return renderScoreboard(output.Players, comments), nil
}

func (c *PartyCommand) toggle(ctx context.Context, channelID, playerRef string) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	state, err := svc.GetState(ctx, &game.GetStateInput{})
	if err != nil {
		return nil, err
	}
	player := findPlayer(state, playerRef)
	if player == nil {
		return c.errorReply(ctx, messaging.ErrorTypePlayerNotFound), nil
	}

	output, err := svc.TogglePlayer(ctx, &game.TogglePlayerInput{PlayerID: player.ID})
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("**%s** is sitting out the next rolls.", output.Player.Name)
	if output.Player.Enabled {
		description = fmt.Sprintf("**%s** is back in the game!", output.Player.Name)
	}
	return &reply{
		Title:       "Players Updated",
		Description: description,
	}, nil
}

func (c *PartyCommand) setTimer(ctx context.Context, channelID string, seconds int) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	output, err := svc.SetTimerSeconds(ctx, &game.SetTimerSecondsInput{Seconds: seconds})
	if errors.Is(err, game.ErrInvalidTimerSeconds) {
		return &reply{
			Title:       "Invalid Timer",
			Description: "The timer needs a positive number of seconds.",
			Color:       colorError,
			Ephemeral:   true,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &reply{
		Title:       "Timer Updated",
		Description: fmt.Sprintf("Challenges now last %d seconds.", output.TimerSeconds),
	}, nil
}

func (c *PartyCommand) setMode(ctx context.Context, channelID string, mode models.ParticipantsMode) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	output, err := svc.SetParticipantsMode(ctx, &game.SetParticipantsModeInput{Mode: mode})
	if errors.Is(err, game.ErrInvalidParticipantsMode) {
		return &reply{
			Title:       "Invalid Mode",
			Description: fmt.Sprintf("%q is not a participants mode.", mode),
			Color:       colorError,
			Ephemeral:   true,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return &reply{
		Title:       "Mode Updated",
		Description: fmt.Sprintf("Participants mode is now **%s**.", output.Mode),
	}, nil
}

func (c *PartyCommand) setSeed(ctx context.Context, channelID string, seed int64) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	output, err := svc.SetSeed(ctx, &game.SetSeedInput{Seed: seed})
	if err != nil {
		return nil, err
	}

	return seedReply(output.Seed), nil
}

func (c *PartyCommand) randomizeSeed(ctx context.Context, channelID string) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	output, err := svc.RandomizeSeed(ctx, &game.RandomizeSeedInput{})
	if err != nil {
		return nil, err
	}

	return seedReply(output.Seed), nil
}

func seedReply(seed int64) *reply {
	return &reply{
		Title:       "Seed Updated",
		Description: fmt.Sprintf("Draws now follow seed `%d`.", seed),
		Ephemeral:   true,
	}
}

func (c *PartyCommand) saveCatalog(ctx context.Context, channelID, name string) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	output, err := svc.SaveCatalog(ctx, &game.SaveCatalogInput{Name: name})
	if r := catalogErrorReply(name, err); r != nil {
		return r, nil
	}
	if err != nil {
		return nil, err
	}

	return &reply{
		Title:       "Catalog Saved",
		Description: fmt.Sprintf("Saved %d challenges as **%s**.", output.Count, output.Name),
	}, nil
}

func (c *PartyCommand) loadCatalog(ctx context.Context, channelID, name string) (*reply, error) {
	svc, err := c.sessions.GetOrCreate(channelID)
	if err != nil {
		return nil, err
	}

	output, err := svc.LoadCatalog(ctx, &game.LoadCatalogInput{Name: name})
	if r := catalogErrorReply(name, err); r != nil {
		return r, nil
	}
	if err != nil {
		return nil, err
	}

	state, err := svc.GetState(ctx, &game.GetStateInput{})
	if err != nil {
		return nil, err
	}
	return renderState(state, "Catalog Loaded", fmt.Sprintf("Loaded %d challenges from **%s**.", output.Count, output.Name)), nil
}

// catalogErrorReply turns expected catalog failures into a reply
func catalogErrorReply(name string, err error) *reply {
	var description string
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalogRepo.ErrCatalogNotFound):
		description = fmt.Sprintf("There is no catalog named **%s**.", name)
	case errors.Is(err, game.ErrNilCatalogRepo):
		description = "Catalog storage is not configured."
	case errors.Is(err, game.ErrInvalidName):
		description = "The catalog needs a name."
	case errors.Is(err, game.ErrInvalidChallenge), errors.Is(err, game.ErrDuplicateChallengeID):
		description = fmt.Sprintf("The stored catalog is broken: %v", err)
	default:
		return nil
	}

	return &reply{
		Title:       "Catalog",
		Description: description,
		Color:       colorError,
		Ephemeral:   true,
	}
}

// board renders the session state with an announcement for the phase
func (c *PartyCommand) board(ctx context.Context, svc game.Service) (*reply, error) {
	state, err := svc.GetState(ctx, &game.GetStateInput{})
	if err != nil {
		return nil, err
	}

	title := ""
	if state.ActiveChallenge != nil {
		title = state.ActiveChallenge.Title
	}
	announcement, err := c.messaging.GetPhaseMessage(ctx, &messaging.GetPhaseMessageInput{
		Phase:          state.Phase,
		ChallengeTitle: title,
		PlayerNames:    playerNames(state, state.ActivePlayerIDs),
	})
	if err != nil {
		return nil, err
	}

	return renderState(state, announcement.Title, announcement.Message), nil
}

func (c *PartyCommand) noChallengeReply(ctx context.Context, svc game.Service) (*reply, error) {
	state, err := svc.GetState(ctx, &game.GetStateInput{})
	if err != nil {
		return nil, err
	}

	if len(state.EnabledPlayers) == 0 {
		return c.errorReply(ctx, messaging.ErrorTypeNoPlayers), nil
	}
	return c.errorReply(ctx, messaging.ErrorTypeNoChallenge), nil
}

func (c *PartyCommand) errorReply(ctx context.Context, errorType string) *reply {
	message := "Something went wrong! Try again."
	output, err := c.messaging.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if err != nil {
		log.Printf("Error getting error message: %v", err)
	} else {
		message = output.Message
	}

	return &reply{
		Title:       "Hold On",
		Description: message,
		Color:       colorError,
		Ephemeral:   true,
	}
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}
