package game

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/partyroll/internal/models"
)

// ResetScores sets every score to zero
func (s *service) ResetScores(ctx context.Context, input *ResetScoresInput) (*ResetScoresOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	for _, p := range s.players {
		p.Score = 0
	}

	return &ResetScoresOutput{
		Success: true,
	}, nil
}

// TogglePlayer flips a player's enabled flag. The current selection is left as is.
func (s *service) TogglePlayer(ctx context.Context, input *TogglePlayerInput) (*TogglePlayerOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.lock()
	defer s.unlock(ctx)

	p := s.findPlayer(input.PlayerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	p.Enabled = !p.Enabled

	cp := *p
	return &TogglePlayerOutput{
		Player: &cp,
	}, nil
}

// UpdatePlayer merges the non-nil fields of the update into a player
func (s *service) UpdatePlayer(ctx context.Context, input *UpdatePlayerInput) (*UpdatePlayerOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.lock()
	defer s.unlock(ctx)

	p := s.findPlayer(input.PlayerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	if u := input.Update; u != nil {
		if u.Score != nil && *u.Score < 0 {
			return nil, ErrInvalidScore
		}
		if u.Name != nil && *u.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidPlayer)
		}
	}
	input.Update.Apply(p)

	cp := *p
	return &UpdatePlayerOutput{
		Player: &cp,
	}, nil
}

// ClearHistory empties the challenge history
func (s *service) ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	cleared := len(s.history)
	s.history = []*models.ChallengeRecord{}

	return &ClearHistoryOutput{
		Cleared: cleared,
	}, nil
}

func validatePlayers(players []*models.Player) error {
	seen := make(map[string]bool, len(players))
	for i, p := range players {
		if p == nil {
			return fmt.Errorf("%w: player %d is nil", ErrInvalidPlayer, i)
		}
		if p.ID == "" {
			return fmt.Errorf("%w: player %d has no id", ErrInvalidPlayer, i)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerID, p.ID)
		}
		seen[p.ID] = true
		if p.Score < 0 {
			return fmt.Errorf("%w: player %s", ErrInvalidScore, p.ID)
		}
	}
	return nil
}
