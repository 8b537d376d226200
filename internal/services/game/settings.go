package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/partyroll/internal/models"
	settingsRepo "github.com/KirkDiggler/partyroll/internal/repositories/settings"
)

// SetTimerSeconds changes the default challenge length. Values below the floor are raised to it.
func (s *service) SetTimerSeconds(ctx context.Context, input *SetTimerSecondsInput) (*SetTimerSecondsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Seconds <= 0 {
		return nil, ErrInvalidTimerSeconds
	}

	s.lock()
	defer s.unlock(ctx)

	s.applyTimerSeconds(input.Seconds)

	return &SetTimerSecondsOutput{
		TimerSeconds: s.settings.TimerSeconds,
	}, nil
}

func (s *service) applyTimerSeconds(seconds int) {
	s.settings.TimerSeconds = max(minTimerSeconds, seconds)

	active := s.activeChallenge()
	if (active == nil || active.TimerOverrideSeconds == nil) && !s.timer.Running {
		s.timer.RemainingSeconds = float64(s.settings.TimerSeconds)
	}
}

// SetParticipantsMode changes how group sizes are chosen
func (s *service) SetParticipantsMode(ctx context.Context, input *SetParticipantsModeInput) (*SetParticipantsModeOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if !input.Mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidParticipantsMode, input.Mode)
	}

	s.lock()
	defer s.unlock(ctx)

	s.settings.ParticipantsMode = input.Mode

	return &SetParticipantsModeOutput{
		Mode: s.settings.ParticipantsMode,
	}, nil
}

// SetMaxAutoPlayers changes the auto mode cap, clamped to the number of players
func (s *service) SetMaxAutoPlayers(ctx context.Context, input *SetMaxAutoPlayersInput) (*SetMaxAutoPlayersOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.lock()
	defer s.unlock(ctx)

	s.applyMaxAutoPlayers(input.MaxAutoPlayers)

	return &SetMaxAutoPlayersOutput{
		MaxAutoPlayers: s.settings.MaxAutoPlayers,
	}, nil
}

func (s *service) applyMaxAutoPlayers(value int) {
	s.settings.MaxAutoPlayers = max(1, min(value, max(1, len(s.players))))
}

func (s *service) SetKeepScore(ctx context.Context, input *SetKeepScoreInput) (*SetKeepScoreOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.lock()
	defer s.unlock(ctx)

	s.settings.KeepScore = input.KeepScore

	return &SetKeepScoreOutput{
		KeepScore: s.settings.KeepScore,
	}, nil
}

// SetRecentWindow resizes the anti-repeat queue, keeping its newest entries
func (s *service) SetRecentWindow(ctx context.Context, input *SetRecentWindowInput) (*SetRecentWindowOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Window < 0 {
		return nil, ErrInvalidRecentWindow
	}

	s.lock()
	defer s.unlock(ctx)

	s.applyRecentWindow(input.Window)

	return &SetRecentWindowOutput{
		Window:             s.settings.RecentChallengeWindow,
		RecentChallengeIDs: cloneIDs(s.recentChallengeIDs),
	}, nil
}

func (s *service) applyRecentWindow(window int) {
	s.settings.RecentChallengeWindow = window
	if over := len(s.recentChallengeIDs) - window; over > 0 {
		s.recentChallengeIDs = cloneIDs(s.recentChallengeIDs[over:])
	}
}

func (s *service) SetAvoidRepeats(ctx context.Context, input *SetAvoidRepeatsInput) (*SetAvoidRepeatsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.lock()
	defer s.unlock(ctx)

	s.settings.AvoidRepeats = input.AvoidRepeats

	return &SetAvoidRepeatsOutput{
		AvoidRepeats: s.settings.AvoidRepeats,
	}, nil
}

// SaveSettings stores the current settings under a name
func (s *service) SaveSettings(ctx context.Context, input *SaveSettingsInput) (*SaveSettingsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Name == "" {
		return nil, ErrInvalidName
	}
	if s.settingsRepo == nil {
		return nil, ErrNilSettingsRepo
	}

	s.lock()
	current := s.settings
	s.unlock(ctx)

	if err := s.settingsRepo.SaveSettings(ctx, &settingsRepo.SaveSettingsInput{
		Name:     input.Name,
		Settings: &current,
	}); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return &SaveSettingsOutput{
		Name: input.Name,
	}, nil
}

// LoadSettings validates a stored preset and applies it through the same rules as the setters
func (s *service) LoadSettings(ctx context.Context, input *LoadSettingsInput) (*LoadSettingsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Name == "" {
		return nil, ErrInvalidName
	}
	if s.settingsRepo == nil {
		return nil, ErrNilSettingsRepo
	}

	preset, err := s.settingsRepo.GetSettings(ctx, &settingsRepo.GetSettingsInput{
		Name: input.Name,
	})
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := validateSettings(preset); err != nil {
		return nil, err
	}

	s.lock()
	defer s.unlock(ctx)

	s.settings.KeepScore = preset.KeepScore
	s.settings.ParticipantsMode = preset.ParticipantsMode
	s.settings.AvoidRepeats = preset.AvoidRepeats
	s.applyTimerSeconds(preset.TimerSeconds)
	s.applyMaxAutoPlayers(preset.MaxAutoPlayers)
	s.applyRecentWindow(preset.RecentChallengeWindow)

	log.Printf("Loaded settings preset %s", input.Name)

	return &LoadSettingsOutput{
		Settings: s.settings,
	}, nil
}

func validateSettings(settings *models.Settings) error {
	if settings.TimerSeconds <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, ErrInvalidTimerSeconds)
	}
	if !settings.ParticipantsMode.IsValid() {
		return fmt.Errorf("%w: %w %q", ErrInvalidSettings, ErrInvalidParticipantsMode, settings.ParticipantsMode)
	}
	if settings.RecentChallengeWindow < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, ErrInvalidRecentWindow)
	}
	if settings.MaxAutoPlayers < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, ErrInvalidMaxAutoPlayers)
	}
	return nil
}
