package game

import (
	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/random"
)

// determineGroupSize returns how many players the next challenge should have.
// Only auto mode draws from the random source.
func (s *service) determineGroupSize(mode models.ParticipantsMode, poolSize int) int {
	if poolSize == 0 {
		return 0
	}

	switch mode {
	case models.ParticipantsModeSolo:
		return 1
	case models.ParticipantsModeDuo:
		return min(2, poolSize)
	case models.ParticipantsModeTrio:
		return min(3, poolSize)
	case models.ParticipantsModeAll:
		return poolSize
	}

	if poolSize == 1 {
		return 1
	}
	maxAuto := min(s.settings.MaxAutoPlayers, poolSize)
	count := random.Index(s.random, maxAuto) + 1
	return min(max(count, 1), poolSize)
}

// resolveParticipantCount fits the desired group size to the challenge.
// ok is false when the challenge cannot be played with the enabled players.
func resolveParticipantCount(c *models.Challenge, desired, enabledCount int) (count int, ok bool) {
	maxAllowed := min(c.MaxPlayers, enabledCount)
	if maxAllowed < c.MinPlayers {
		return 0, false
	}

	count = desired
	if count <= 0 {
		count = c.MinPlayers
	}
	count = min(count, maxAllowed)
	count = max(count, c.MinPlayers)
	return count, true
}

// pickPlayers chooses count participants from the enabled pool
func (s *service) pickPlayers(pool []*models.Player, count int) []string {
	if count == 0 {
		return []string{}
	}

	chosen := pool
	if len(pool) > count {
		chosen = random.Shuffle(s.random, pool)[:count]
	}

	ids := make([]string, 0, len(chosen))
	for _, p := range chosen {
		ids = append(ids, p.ID)
	}
	return ids
}
