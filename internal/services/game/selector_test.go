package game

import (
	"slices"

	"github.com/KirkDiggler/partyroll/internal/models"
)

func (s *GameServiceTestSuite) TestRollChallenge_DuoScenario() {
	// Act
	output := s.roll()

	// Assert
	s.Require().True(output.Selected)
	s.Equal("a", output.Challenge.ID)
	s.Len(output.PlayerIDs, 2)

	state := s.state()
	s.Equal(models.GamePhaseReady, state.Phase)
	s.Equal(float64(60), state.Timer.RemainingSeconds)
	s.False(state.Timer.Running)
	s.Equal(output.PlayerIDs, state.ActivePlayerIDs)
}

func (s *GameServiceTestSuite) TestRollChallenge_SeededDraw() {
	s.challenges = []*models.Challenge{
		testChallenge("a", 1, 4),
		testChallenge("b", 1, 4),
		testChallenge("c", 1, 4),
	}
	s.gameService = s.newService()

	output := s.roll()

	// Seed 42 draws index 1, then the shuffle swaps the last player to second place
	s.Require().True(output.Selected)
	s.Equal("b", output.Challenge.ID)
	s.Equal([]string{"p1", "p4"}, output.PlayerIDs)
}

func (s *GameServiceTestSuite) TestRollChallenge_AutoModeDrawsGroupSize() {
	s.challenges = []*models.Challenge{testChallenge("a", 1, 4)}
	s.settings.ParticipantsMode = models.ParticipantsModeAuto
	s.gameService = s.newService()

	output := s.roll()

	// The first draw for seed 42 picks a group of three out of four
	s.Require().True(output.Selected)
	s.Len(output.PlayerIDs, 3)
}

func (s *GameServiceTestSuite) TestRollChallenge_AutoModeSinglePlayer() {
	s.challenges = []*models.Challenge{testChallenge("a", 1, 4)}
	s.settings.ParticipantsMode = models.ParticipantsModeAuto
	s.players = []*models.Player{
		{ID: "p1", Name: "Ann", Enabled: true},
		{ID: "p2", Name: "Ben", Enabled: false},
	}
	s.gameService = s.newService()

	output := s.roll()

	s.Require().True(output.Selected)
	s.Equal([]string{"p1"}, output.PlayerIDs)
}

func (s *GameServiceTestSuite) TestRollChallenge_ModesFitChallengeBounds() {
	testCases := []struct {
		name       string
		mode       models.ParticipantsMode
		challenge  *models.Challenge
		wantLength int
	}{
		{
			name:       "solo raised to challenge minimum",
			mode:       models.ParticipantsModeSolo,
			challenge:  testChallenge("a", 2, 4),
			wantLength: 2,
		},
		{
			name:       "all capped at challenge maximum",
			mode:       models.ParticipantsModeAll,
			challenge:  testChallenge("a", 1, 2),
			wantLength: 2,
		},
		{
			name:       "trio",
			mode:       models.ParticipantsModeTrio,
			challenge:  testChallenge("a", 1, 4),
			wantLength: 3,
		},
		{
			name:       "all players",
			mode:       models.ParticipantsModeAll,
			challenge:  testChallenge("a", 1, 8),
			wantLength: 4,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.settings.ParticipantsMode = tc.mode
			s.challenges = []*models.Challenge{tc.challenge}
			s.gameService = s.newService()

			output := s.roll()

			s.Require().True(output.Selected)
			s.Len(output.PlayerIDs, tc.wantLength)
		})
	}
}

func (s *GameServiceTestSuite) TestRollChallenge_AllModeKeepsPlayerOrder() {
	s.settings.ParticipantsMode = models.ParticipantsModeAll
	s.gameService = s.newService()

	output := s.roll()

	// No shuffle happens when everyone takes part
	s.Equal([]string{"p1", "p2", "p3", "p4"}, output.PlayerIDs)
}

func (s *GameServiceTestSuite) TestRollChallenge_AlternatesWithWindowOne() {
	s.challenges = []*models.Challenge{
		testChallenge("a", 1, 4),
		testChallenge("b", 1, 4),
	}
	s.gameService = s.newService()

	previous := s.roll().Challenge.ID
	for n := 0; n < 10; n++ {
		output := s.roll()
		s.Require().True(output.Selected)
		s.NotEqual(previous, output.Challenge.ID)
		previous = output.Challenge.ID
	}
}

func (s *GameServiceTestSuite) TestRollChallenge_FallsBackWhenEverythingIsRecent() {
	s.challenges = []*models.Challenge{
		testChallenge("a", 1, 1),
		testChallenge("b", 3, 4),
	}
	s.players = []*models.Player{
		{ID: "p1", Name: "Ann", Enabled: true},
		{ID: "p2", Name: "Ben", Enabled: false},
	}
	s.gameService = s.newService()

	first := s.roll()
	second := s.roll()

	// b never fits a single player, so a is drawn again despite being recent
	s.Require().True(first.Selected)
	s.Require().True(second.Selected)
	s.Equal("a", first.Challenge.ID)
	s.Equal("a", second.Challenge.ID)
	s.Equal([]string{"a"}, s.state().RecentChallengeIDs)
}

func (s *GameServiceTestSuite) TestRollChallenge_NoEnabledPlayers() {
	s.roll()
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		_, err := s.gameService.TogglePlayer(s.ctx, &TogglePlayerInput{PlayerID: id})
		s.Require().NoError(err)
	}

	output := s.roll()

	s.False(output.Selected)
	s.Nil(output.Challenge)
	s.Empty(output.PlayerIDs)

	state := s.state()
	s.Nil(state.ActiveChallenge)
	s.Empty(state.ActivePlayerIDs)
	// A failed roll leaves the phase where it was
	s.Equal(models.GamePhaseReady, state.Phase)
}

func (s *GameServiceTestSuite) TestRollChallenge_NothingFits() {
	s.challenges = []*models.Challenge{testChallenge("big", 5, 8)}
	s.gameService = s.newService()

	output := s.roll()

	s.False(output.Selected)
	s.Equal(models.GamePhaseIdle, s.state().Phase)
}

func (s *GameServiceTestSuite) TestRollChallenge_EmptyCatalog() {
	s.challenges = []*models.Challenge{}
	s.gameService = s.newService()

	output := s.roll()

	s.False(output.Selected)
	s.Empty(s.events)
}

func (s *GameServiceTestSuite) TestRollChallenge_EligibilityHolds() {
	s.gameService = s.newService(func(cfg *Config) {
		cfg.Challenges = nil
		cfg.Seed = 99
	})
	modes := []models.ParticipantsMode{
		models.ParticipantsModeAuto,
		models.ParticipantsModeSolo,
		models.ParticipantsModeDuo,
		models.ParticipantsModeTrio,
		models.ParticipantsModeAll,
	}

	for i := 0; i < 200; i++ {
		if i%7 == 0 {
			_, err := s.gameService.TogglePlayer(s.ctx, &TogglePlayerInput{PlayerID: s.players[i%4].ID})
			s.Require().NoError(err)
		}
		_, err := s.gameService.SetParticipantsMode(s.ctx, &SetParticipantsModeInput{Mode: modes[i%len(modes)]})
		s.Require().NoError(err)

		before := s.state()
		output := s.roll()
		if len(before.EnabledPlayers) == 0 {
			s.False(output.Selected)
			continue
		}
		s.Require().True(output.Selected)

		enabled := make([]string, 0, len(before.EnabledPlayers))
		for _, p := range before.EnabledPlayers {
			enabled = append(enabled, p.ID)
		}

		c := output.Challenge
		s.GreaterOrEqual(len(output.PlayerIDs), c.MinPlayers)
		s.LessOrEqual(len(output.PlayerIDs), min(c.MaxPlayers, len(enabled)))
		for j, id := range output.PlayerIDs {
			s.Contains(enabled, id)
			s.NotContains(output.PlayerIDs[j+1:], id)
		}
	}
}

func (s *GameServiceTestSuite) TestRollChallenge_SkipsRecentWhenPossible() {
	s.gameService = s.newService(func(cfg *Config) {
		cfg.Challenges = nil
		cfg.Seed = 7
	})

	for n := 0; n < 100; n++ {
		before := s.state()
		output := s.roll()
		s.Require().True(output.Selected)
		s.NotContains(before.RecentChallengeIDs, output.Challenge.ID)

		recent := s.state().RecentChallengeIDs
		s.LessOrEqual(len(recent), before.Settings.RecentChallengeWindow)
		s.Equal(output.Challenge.ID, recent[len(recent)-1])
	}
}

func (s *GameServiceTestSuite) TestRollChallenge_RecentQueueAcrossResets() {
	s.challenges = []*models.Challenge{
		testChallenge("a", 1, 4),
		testChallenge("b", 1, 4),
		testChallenge("c", 1, 4),
	}
	s.settings.RecentChallengeWindow = 2
	s.gameService = s.newService()

	drawn := []string{}
	for n := 0; n < 3; n++ {
		drawn = append(drawn, s.roll().Challenge.ID)
		_, err := s.gameService.ResetGame(s.ctx, &ResetGameInput{})
		s.Require().NoError(err)
	}

	// Without an active challenge nothing is handed back, so the window keeps the last two
	s.Equal(drawn[1:], s.state().RecentChallengeIDs)
	s.Len(slicesCompact(drawn), 3)
}

func (s *GameServiceTestSuite) TestRollChallenge_AvoidRepeatsOff() {
	s.settings.AvoidRepeats = false
	s.gameService = s.newService()

	s.roll()
	s.roll()

	s.Empty(s.state().RecentChallengeIDs)
}

func (s *GameServiceTestSuite) TestResolveParticipantCount() {
	testCases := []struct {
		name      string
		challenge *models.Challenge
		desired   int
		enabled   int
		wantCount int
		wantOK    bool
	}{
		{name: "fits", challenge: testChallenge("a", 1, 4), desired: 2, enabled: 4, wantCount: 2, wantOK: true},
		{name: "raised to min", challenge: testChallenge("a", 2, 4), desired: 1, enabled: 4, wantCount: 2, wantOK: true},
		{name: "capped at max", challenge: testChallenge("a", 1, 2), desired: 4, enabled: 4, wantCount: 2, wantOK: true},
		{name: "capped at enabled", challenge: testChallenge("a", 1, 8), desired: 6, enabled: 3, wantCount: 3, wantOK: true},
		{name: "zero desired uses min", challenge: testChallenge("a", 2, 4), desired: 0, enabled: 4, wantCount: 2, wantOK: true},
		{name: "too few players", challenge: testChallenge("a", 3, 4), desired: 2, enabled: 2, wantOK: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			count, ok := resolveParticipantCount(tc.challenge, tc.desired, tc.enabled)

			s.Equal(tc.wantOK, ok)
			s.Equal(tc.wantCount, count)
		})
	}
}

func (s *GameServiceTestSuite) TestDetermineGroupSize() {
	testCases := []struct {
		mode     models.ParticipantsMode
		poolSize int
		want     int
	}{
		{mode: models.ParticipantsModeSolo, poolSize: 4, want: 1},
		{mode: models.ParticipantsModeDuo, poolSize: 4, want: 2},
		{mode: models.ParticipantsModeDuo, poolSize: 1, want: 1},
		{mode: models.ParticipantsModeTrio, poolSize: 2, want: 2},
		{mode: models.ParticipantsModeAll, poolSize: 3, want: 3},
		{mode: models.ParticipantsModeAuto, poolSize: 1, want: 1},
		{mode: models.ParticipantsModeAuto, poolSize: 0, want: 0},
	}

	for _, tc := range testCases {
		s.Run(string(tc.mode), func() {
			s.Equal(tc.want, s.gameService.determineGroupSize(tc.mode, tc.poolSize))
		})
	}
}

func (s *GameServiceTestSuite) TestDetermineGroupSize_AutoWithinCap() {
	_, err := s.gameService.SetMaxAutoPlayers(s.ctx, &SetMaxAutoPlayersInput{MaxAutoPlayers: 3})
	s.Require().NoError(err)

	for n := 0; n < 100; n++ {
		size := s.gameService.determineGroupSize(models.ParticipantsModeAuto, 4)
		s.GreaterOrEqual(size, 1)
		s.LessOrEqual(size, 3)
	}
}

func slicesCompact(ids []string) []string {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
