package game

import (
	"context"
	"log"
	"slices"
	"time"

	"github.com/KirkDiggler/partyroll/internal/models"
)

// StartOrResumeChallenge starts the countdown. A finished or missing challenge is
// replaced by a fresh roll first; a ready challenge is resumed as drawn.
func (s *service) StartOrResumeChallenge(ctx context.Context, input *StartOrResumeChallengeInput) (*StartOrResumeChallengeOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	rolled := false
	if s.activeChallenge() == nil || s.phase.IsFinished() {
		s.rollChallenge()
		rolled = true
	}

	active := s.activeChallenge()
	if active == nil {
		return &StartOrResumeChallengeOutput{
			Success:   false,
			Rolled:    rolled,
			PlayerIDs: []string{},
			Timer:     s.timer,
		}, nil
	}

	duration := s.durationOf(active)
	s.timer = models.Timer{
		Running:          true,
		RemainingSeconds: float64(duration),
		EndsAt:           s.clock.Now().Add(time.Duration(duration) * time.Second),
	}
	s.setPhase(models.GamePhaseRunning)

	return &StartOrResumeChallengeOutput{
		Success:   true,
		Rolled:    rolled,
		Challenge: active.Clone(),
		PlayerIDs: cloneIDs(s.activePlayerIDs),
		Timer:     s.timer,
	}, nil
}

// Reroll draws a replacement challenge once the cooldown has passed
func (s *service) Reroll(ctx context.Context, input *RerollInput) (*RerollOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	if !s.rerollReady() {
		return &RerollOutput{
			Permitted:         false,
			PlayerIDs:         cloneIDs(s.activePlayerIDs),
			RerollAvailableAt: s.rerollAvailableAt,
		}, nil
	}

	chosen := s.rollChallenge()
	s.rerollAvailableAt = s.clock.Now().Add(s.rerollCooldown)
	s.setPhase(models.GamePhaseReady)

	return &RerollOutput{
		Permitted:         true,
		Selected:          chosen != nil,
		Challenge:         chosen.Clone(),
		PlayerIDs:         cloneIDs(s.activePlayerIDs),
		RerollAvailableAt: s.rerollAvailableAt,
	}, nil
}

// Tick recomputes the remaining time. It is a no-op while the timer is stopped and
// safe to call at any cadence.
func (s *service) Tick(ctx context.Context, input *TickInput) (*TickOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	if !s.timer.Running {
		return &TickOutput{
			Timer: s.timer,
			Phase: s.phase,
		}, nil
	}

	remaining := s.timer.EndsAt.Sub(s.clock.Now()).Seconds()
	s.timer.RemainingSeconds = max(0, remaining)

	timeUp := false
	if s.timer.RemainingSeconds <= 0 {
		s.timer.Running = false
		s.timer.RemainingSeconds = 0
		s.setPhase(models.GamePhaseTimeUp)
		timeUp = true
		log.Printf("Time is up for challenge %s", s.activeChallengeID)
	}

	return &TickOutput{
		Timer:  s.timer,
		Phase:  s.phase,
		TimeUp: timeUp,
	}, nil
}

// MarkWinners records the winners of the active challenge. Unknown or
// non-participating ids are ignored.
func (s *service) MarkWinners(ctx context.Context, input *MarkWinnersInput) (*MarkWinnersOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.lock()
	defer s.unlock(ctx)

	active := s.activeChallenge()
	if len(input.WinnerIDs) == 0 || active == nil {
		return &MarkWinnersOutput{Recorded: false, Celebrations: s.celebrations}, nil
	}

	winners := make([]string, 0, len(input.WinnerIDs))
	for _, id := range input.WinnerIDs {
		if slices.Contains(s.activePlayerIDs, id) && !slices.Contains(winners, id) {
			winners = append(winners, id)
		}
	}
	if len(winners) == 0 {
		return &MarkWinnersOutput{Recorded: false, Celebrations: s.celebrations}, nil
	}

	if s.settings.KeepScore {
		for _, id := range winners {
			if p := s.findPlayer(id); p != nil {
				p.Score++
			}
		}
	}

	now := s.clock.Now()
	record := &models.ChallengeRecord{
		ChallengeID: active.ID,
		PlayerIDs:   cloneIDs(s.activePlayerIDs),
		WinnerIDs:   winners,
		Timestamp:   now,
	}
	s.history = append(s.history, record)

	s.timer = models.Timer{}
	s.setPhase(models.GamePhaseComplete)
	s.celebrations++

	s.pending = append(s.pending, &models.Event{
		Type:         models.EventTypeCelebration,
		Phase:        s.phase,
		ChallengeID:  active.ID,
		PlayerIDs:    cloneIDs(s.activePlayerIDs),
		WinnerIDs:    cloneIDs(winners),
		Celebrations: s.celebrations,
		Timestamp:    now,
	})

	log.Printf("Challenge %s won by %v", active.ID, winners)

	return &MarkWinnersOutput{
		Recorded:     true,
		Record:       record.Clone(),
		Celebrations: s.celebrations,
	}, nil
}

// ResetGame clears the active challenge and stops the timer. Scores and history are kept.
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	s.clearSelection()
	s.timer = models.Timer{
		RemainingSeconds: float64(s.settings.TimerSeconds),
	}
	s.setPhase(models.GamePhaseIdle)

	return &ResetGameOutput{
		Success: true,
	}, nil
}
