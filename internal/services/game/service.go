package game

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/KirkDiggler/partyroll/internal/common/clock"
	"github.com/KirkDiggler/partyroll/internal/common/uuid"
	"github.com/KirkDiggler/partyroll/internal/data"
	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/random"
	catalogRepo "github.com/KirkDiggler/partyroll/internal/repositories/catalog"
	settingsRepo "github.com/KirkDiggler/partyroll/internal/repositories/settings"
)

var _ Service = (*service)(nil)

// service implements the Service interface. All session state is owned here and
// only mutated while mu is held.
type service struct {
	mu sync.Mutex

	clock          clock.Clock
	uuidGenerator  uuid.UUID
	random         random.Source
	notifier       Notifier
	catalogRepo    catalogRepo.Repository
	settingsRepo   settingsRepo.Repository
	rerollCooldown time.Duration

	players    []*models.Player
	challenges []*models.Challenge
	history    []*models.ChallengeRecord
	settings   models.Settings
	seed       int64

	activeChallengeID  string
	activePlayerIDs    []string
	phase              models.GamePhase
	timer              models.Timer
	rerollAvailableAt  time.Time
	recentChallengeIDs []string
	celebrations       int

	// pending events are dispatched once the lock is released
	pending []*models.Event
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	s := &service{
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		random:         cfg.Random,
		notifier:       cfg.Notifier,
		catalogRepo:    cfg.CatalogRepo,
		settingsRepo:   cfg.SettingsRepo,
		rerollCooldown: cfg.RerollCooldown,
		phase:          models.GamePhaseIdle,
	}

	if s.clock == nil {
		s.clock = &clock.DefaultClock{}
	}
	if s.uuidGenerator == nil {
		s.uuidGenerator = uuid.New()
	}
	if s.random == nil {
		s.random = random.NewMulberry32(nil)
	}
	if s.rerollCooldown < 0 {
		return nil, fmt.Errorf("%w: reroll cooldown cannot be negative", ErrInvalidSettings)
	}

	players := cfg.Players
	if players == nil {
		players = data.DefaultPlayers()
	}
	if err := validatePlayers(players); err != nil {
		return nil, err
	}
	s.players = clonePlayers(players)

	challenges := cfg.Challenges
	if challenges == nil {
		challenges = data.DefaultChallenges()
	}
	if err := validateCatalog(challenges); err != nil {
		return nil, err
	}
	s.challenges = cloneChallenges(challenges)

	settings := data.DefaultSettings()
	if cfg.Settings != nil {
		settings = *cfg.Settings
	}
	if err := validateSettings(&settings); err != nil {
		return nil, err
	}
	s.settings = settings
	s.applyMaxAutoPlayers(settings.MaxAutoPlayers)
	s.timer.RemainingSeconds = float64(s.settings.TimerSeconds)

	seed := cfg.Seed
	if seed == 0 {
		seed = s.clock.Now().UnixMilli() % 100_000
	}
	s.reseed(seed)

	return s, nil
}

// lock acquires the session lock. Pair with a deferred unlock.
func (s *service) lock() {
	s.mu.Lock()
}

// unlock releases the session lock and then delivers pending events
func (s *service) unlock(ctx context.Context) {
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	if s.notifier == nil {
		return
	}
	for _, event := range events {
		s.notifier.Notify(ctx, event)
	}
}

// setPhase moves to a new phase and queues a change event when it differs
func (s *service) setPhase(phase models.GamePhase) {
	if s.phase == phase {
		return
	}

	s.pending = append(s.pending, &models.Event{
		Type:          models.EventTypePhaseChanged,
		PreviousPhase: s.phase,
		Phase:         phase,
		ChallengeID:   s.activeChallengeID,
		PlayerIDs:     cloneIDs(s.activePlayerIDs),
		Celebrations:  s.celebrations,
		Timestamp:     s.clock.Now(),
	})
	s.phase = phase
}

func (s *service) reseed(seed int64) {
	s.seed = seed
	s.random.Seed(seed)
}

// SetSeed reseeds the random source
func (s *service) SetSeed(ctx context.Context, input *SetSeedInput) (*SetSeedOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.lock()
	defer s.unlock(ctx)

	s.reseed(input.Seed)
	log.Printf("Session seed set to %d", input.Seed)

	return &SetSeedOutput{
		Seed: s.seed,
	}, nil
}

// RandomizeSeed reseeds the random source with a fresh seed
func (s *service) RandomizeSeed(ctx context.Context, input *RandomizeSeedInput) (*RandomizeSeedOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	s.reseed(random.RandomSeed())
	log.Printf("Session seed randomized to %d", s.seed)

	return &RandomizeSeedOutput{
		Seed: s.seed,
	}, nil
}

// GetState returns a snapshot of the session
func (s *service) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	history := make([]*models.ChallengeRecord, 0, len(s.history))
	for _, record := range s.history {
		history = append(history, record.Clone())
	}

	return &GetStateOutput{
		Players:            clonePlayers(s.players),
		EnabledPlayers:     clonePlayers(s.enabledPlayers()),
		Scoreboard:         s.scoreboard(),
		Challenges:         cloneChallenges(s.challenges),
		Settings:           s.settings,
		ActiveChallenge:    s.activeChallenge().Clone(),
		ActivePlayerIDs:    cloneIDs(s.activePlayerIDs),
		Phase:              s.phase,
		Timer:              s.timer,
		CurrentTimerLimit:  s.activeDuration(),
		RerollAvailableAt:  s.rerollAvailableAt,
		RerollReady:        s.rerollReady(),
		RecentChallengeIDs: cloneIDs(s.recentChallengeIDs),
		History:            history,
		Celebrations:       s.celebrations,
		Seed:               s.seed,
	}, nil
}

// GetScoreboard returns players ordered by score
func (s *service) GetScoreboard(ctx context.Context, input *GetScoreboardInput) (*GetScoreboardOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	return &GetScoreboardOutput{
		Players: s.scoreboard(),
	}, nil
}

func (s *service) scoreboard() []*models.Player {
	board := clonePlayers(s.players)
	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Score != board[j].Score {
			return board[i].Score > board[j].Score
		}
		return board[i].Name < board[j].Name
	})
	return board
}

func (s *service) enabledPlayers() []*models.Player {
	enabled := make([]*models.Player, 0, len(s.players))
	for _, p := range s.players {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

func (s *service) findPlayer(id string) *models.Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *service) findChallenge(id string) (*models.Challenge, int) {
	if id == "" {
		return nil, -1
	}
	for i, c := range s.challenges {
		if c.ID == id {
			return c, i
		}
	}
	return nil, -1
}

func (s *service) activeChallenge() *models.Challenge {
	c, _ := s.findChallenge(s.activeChallengeID)
	return c
}

// durationOf is the timer length for a challenge in seconds
func (s *service) durationOf(c *models.Challenge) int {
	if c != nil && c.TimerOverrideSeconds != nil {
		return *c.TimerOverrideSeconds
	}
	return s.settings.TimerSeconds
}

func (s *service) activeDuration() int {
	return s.durationOf(s.activeChallenge())
}

func (s *service) rerollReady() bool {
	return !s.clock.Now().Before(s.rerollAvailableAt)
}

func clonePlayers(players []*models.Player) []*models.Player {
	out := make([]*models.Player, 0, len(players))
	for _, p := range players {
		cp := *p
		out = append(out, &cp)
	}
	return out
}

func cloneChallenges(challenges []*models.Challenge) []*models.Challenge {
	out := make([]*models.Challenge, 0, len(challenges))
	for _, c := range challenges {
		out = append(out, c.Clone())
	}
	return out
}

func cloneIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
