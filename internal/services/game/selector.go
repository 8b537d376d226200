package game

import (
	"context"
	"log"
	"slices"

	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/random"
)

// RollChallenge draws a new challenge and participant group
func (s *service) RollChallenge(ctx context.Context, input *RollChallengeInput) (*RollChallengeOutput, error) {
	s.lock()
	defer s.unlock(ctx)

	chosen := s.rollChallenge()
	if chosen == nil {
		return &RollChallengeOutput{
			Selected:  false,
			PlayerIDs: []string{},
		}, nil
	}

	return &RollChallengeOutput{
		Selected:  true,
		Challenge: chosen.Clone(),
		PlayerIDs: cloneIDs(s.activePlayerIDs),
	}, nil
}

// eligibleChallenges filters the catalog for the number of available players.
// The repeat filter is dropped when it would leave nothing to draw.
func (s *service) eligibleChallenges(availableCount int) []*models.Challenge {
	byCount := make([]*models.Challenge, 0, len(s.challenges))
	for _, c := range s.challenges {
		if c.MinPlayers <= availableCount {
			byCount = append(byCount, c)
		}
	}

	if !s.settings.AvoidRepeats || s.settings.RecentChallengeWindow <= 0 {
		return byCount
	}

	fresh := make([]*models.Challenge, 0, len(byCount))
	for _, c := range byCount {
		if !slices.Contains(s.recentChallengeIDs, c.ID) {
			fresh = append(fresh, c)
		}
	}
	if len(fresh) == 0 {
		return byCount
	}
	return fresh
}

// pushRecent appends to the anti-repeat queue, dropping the oldest entries past the window
func (s *service) pushRecent(challengeID string) {
	if !s.settings.AvoidRepeats || s.settings.RecentChallengeWindow <= 0 {
		return
	}

	s.recentChallengeIDs = append(s.recentChallengeIDs, challengeID)
	if over := len(s.recentChallengeIDs) - s.settings.RecentChallengeWindow; over > 0 {
		s.recentChallengeIDs = slices.Clone(s.recentChallengeIDs[over:])
	}
}

// removeRecent drops the first occurrence of a challenge from the anti-repeat queue
func (s *service) removeRecent(challengeID string) {
	if challengeID == "" {
		return
	}
	if idx := slices.Index(s.recentChallengeIDs, challengeID); idx != -1 {
		s.recentChallengeIDs = slices.Delete(s.recentChallengeIDs, idx, idx+1)
	}
}

func (s *service) clearSelection() {
	s.activeChallengeID = ""
	s.activePlayerIDs = []string{}
}

// rollChallenge draws a challenge and participants. It returns nil and clears the
// selection when nothing can be drawn.
//
// Draw order from the random source: group size (auto mode only), challenge, participant shuffle.
func (s *service) rollChallenge() *models.Challenge {
	enabled := s.enabledPlayers()
	if len(enabled) == 0 {
		s.clearSelection()
		log.Printf("Roll skipped: no enabled players")
		return nil
	}

	desired := s.determineGroupSize(s.settings.ParticipantsMode, len(enabled))

	pool := s.eligibleChallenges(len(enabled))
	if len(pool) == 0 {
		s.clearSelection()
		log.Printf("Roll skipped: no challenge fits %d players", len(enabled))
		return nil
	}

	chosen := pool[random.Index(s.random, len(pool))]

	count, ok := resolveParticipantCount(chosen, desired, len(enabled))
	if !ok {
		s.clearSelection()
		log.Printf("Roll failed: challenge %s cannot be played by %d players", chosen.ID, len(enabled))
		return nil
	}

	selection := s.pickPlayers(enabled, count)

	// The previous challenge gives its repeat slot back before the new one takes one
	s.removeRecent(s.activeChallengeID)
	s.activeChallengeID = chosen.ID
	s.pushRecent(chosen.ID)
	s.activePlayerIDs = selection

	s.timer = models.Timer{
		Running:          false,
		RemainingSeconds: float64(s.durationOf(chosen)),
	}
	s.setPhase(models.GamePhaseReady)

	log.Printf("Rolled challenge %s for players %v", chosen.ID, selection)
	return chosen
}
