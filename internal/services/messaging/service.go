package messaging

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/random"
)

// service implements the Service interface
type service struct {
	mu sync.Mutex

	// Random source for selecting random messages
	random random.Source
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	src := cfg.Random
	if src == nil {
		src = random.NewMulberry32(&random.Config{Seed: random.RandomSeed()})
	}

	return &service{
		random: src,
	}, nil
}

// pick selects one of the messages
func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return messages[random.Index(s.random, len(messages))]
}

// GetPhaseMessage returns an announcement for a session phase
func (s *service) GetPhaseMessage(ctx context.Context, input *GetPhaseMessageInput) (*GetPhaseMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	players := joinNames(input.PlayerNames)
	challenge := input.ChallengeTitle
	if challenge == "" {
		challenge = "the next challenge"
	}

	var title string
	var messages []string

	switch input.Phase {
	case models.GamePhaseReady:
		title = "Challenge Ready"
		messages = []string{
			fmt.Sprintf("%s, you're up for %s! Hit start when you're ready.", players, challenge),
			fmt.Sprintf("The wheel has spoken: %s takes on %s.", players, challenge),
			fmt.Sprintf("Stretch those legs, %s. %s is waiting.", players, challenge),
			fmt.Sprintf("Next up: %s. Good luck, %s!", challenge, players),
		}
	case models.GamePhaseRunning:
		title = "Go Go Go!"
		messages = []string{
			fmt.Sprintf("The clock is ticking on %s! Go, %s!", challenge, players),
			fmt.Sprintf("%s has started. No pressure, %s. Okay, a little pressure.", challenge, players),
			fmt.Sprintf("Timer's running! Show us what you've got, %s.", players),
		}
	case models.GamePhaseTimeUp:
		title = "Time's Up!"
		tone = ToneNeutral
		messages = []string{
			fmt.Sprintf("Time's up for %s! Who takes it?", challenge),
			fmt.Sprintf("Hands off! %s is over. Pick the winners.", challenge),
			fmt.Sprintf("That's the bell, %s. Let the crowd decide.", players),
		}
	case models.GamePhaseComplete:
		title = "Challenge Complete"
		tone = ToneCelebration
		messages = []string{
			fmt.Sprintf("%s is done and dusted. Roll again?", challenge),
			"Another one in the books! Ready for the next roll?",
		}
	default:
		title = "Waiting for a Roll"
		tone = ToneNeutral
		messages = []string{
			"Roll a challenge to get the party going.",
			"Nothing on the board yet. Who's feeling brave?",
			"The challenge wheel is gathering dust. Give it a spin!",
		}
	}

	return &GetPhaseMessageOutput{
		Title:   title,
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetCelebrationMessage returns a message for the winners of a challenge
func (s *service) GetCelebrationMessage(ctx context.Context, input *GetCelebrationMessageInput) (*GetCelebrationMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	winners := joinNames(input.WinnerNames)
	challenge := input.ChallengeTitle
	if challenge == "" {
		challenge = "that one"
	}

	titles := []string{
		"We Have a Winner!",
		"Victory!",
		"Champions!",
	}
	if len(input.WinnerNames) > 1 {
		titles = []string{
			"We Have Winners!",
			"Shared Glory!",
			"Team Victory!",
		}
	}

	messages := []string{
		fmt.Sprintf("%s crushed %s! 🎉", winners, challenge),
		fmt.Sprintf("All hail %s, conquerors of %s!", winners, challenge),
		fmt.Sprintf("%s takes %s. The crowd goes wild!", winners, challenge),
		fmt.Sprintf("Nobody saw that coming. %s wins %s!", winners, challenge),
	}

	message := s.pick(messages)
	if input.Celebrations > 0 && input.Celebrations%10 == 0 {
		message = fmt.Sprintf("%s That's celebration number %d tonight!", message, input.Celebrations)
	}

	return &GetCelebrationMessageOutput{
		Title:   s.pick(titles),
		Message: message,
	}, nil
}

// GetScoreboardMessage returns a comment for a player's place on the scoreboard
func (s *service) GetScoreboardMessage(ctx context.Context, input *GetScoreboardMessageInput) (*GetScoreboardMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string

	// Different messages based on rank
	if input.Score == 0 {
		messages = []string{
			fmt.Sprintf("%s is still warming up.", input.PlayerName),
			fmt.Sprintf("%s: zero points, infinite potential.", input.PlayerName),
			fmt.Sprintf("%s is saving their energy for the finale.", input.PlayerName),
		}
	} else if input.Rank == 0 { // First place
		messages = []string{
			fmt.Sprintf("%s leads the pack with %s!", input.PlayerName, points(input.Score)),
			fmt.Sprintf("All hail %s, sitting pretty on %s.", input.PlayerName, points(input.Score)),
			fmt.Sprintf("%s wears the crown with %s. For now.", input.PlayerName, points(input.Score)),
		}
	} else if input.Rank == input.TotalPlayers-1 { // Last place
		messages = []string{
			fmt.Sprintf("%s brings up the rear with %s. Comeback time?", input.PlayerName, points(input.Score)),
			fmt.Sprintf("%s has %s and a lot to prove.", input.PlayerName, points(input.Score)),
		}
	} else { // Middle of the pack
		messages = []string{
			fmt.Sprintf("%s is hanging in there with %s.", input.PlayerName, points(input.Score)),
			fmt.Sprintf("%s: %s and climbing.", input.PlayerName, points(input.Score)),
			fmt.Sprintf("Keep an eye on %s, lurking with %s.", input.PlayerName, points(input.Score)),
		}
	}

	return &GetScoreboardMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetRerollWaitMessage returns a message while the reroll cooldown is active
func (s *service) GetRerollWaitMessage(ctx context.Context, input *GetRerollWaitMessageInput) (*GetRerollWaitMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	seconds := int(math.Ceil(input.Remaining.Seconds()))
	if seconds < 1 {
		seconds = 1
	}

	messages := []string{
		fmt.Sprintf("Easy there! You can reroll in %ds.", seconds),
		fmt.Sprintf("The dice need a breather. Try again in %ds.", seconds),
		fmt.Sprintf("Not so fast! Reroll unlocks in %ds.", seconds),
	}

	return &GetRerollWaitMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFunny
	}

	var messages []string

	// Select messages based on error type
	switch input.ErrorType {
	case ErrorTypeNoPlayers:
		messages = []string{
			"Nobody's playing! Enable some players first.",
			"An empty party is just a room. Turn some players on.",
		}
	case ErrorTypeNoChallenge:
		messages = []string{
			"No challenge fits this crowd. Add more challenges or enable more players.",
			"The catalog came up empty for this group.",
		}
	case ErrorTypeNotParticipant:
		messages = []string{
			"Only the players in this challenge can win it.",
			"Nice try! That player wasn't in this round.",
		}
	case ErrorTypeNoSession:
		messages = []string{
			"There's no party in this channel yet. Roll to start one!",
		}
	case ErrorTypePlayerNotFound:
		messages = []string{
			"Never heard of them. Check the player list.",
			"That player isn't on the roster.",
		}
	default:
		messages = []string{
			"Something went wrong! Try again.",
			"Oops! The party gremlins struck. Try again.",
		}
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// joinNames formats names as "A", "A and B" or "A, B and C"
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "everyone"
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

func points(score int) string {
	if score == 1 {
		return "1 point"
	}
	return fmt.Sprintf("%d points", score)
}
