package game

import (
	"sync"
	"time"

	"github.com/KirkDiggler/partyroll/internal/models"
)

func (s *GameServiceTestSuite) start() *StartOrResumeChallengeOutput {
	output, err := s.gameService.StartOrResumeChallenge(s.ctx, &StartOrResumeChallengeInput{})
	s.Require().NoError(err)
	return output
}

func (s *GameServiceTestSuite) tick() *TickOutput {
	output, err := s.gameService.Tick(s.ctx, &TickInput{})
	s.Require().NoError(err)
	return output
}

func (s *GameServiceTestSuite) TestStartOrResume_RollsWhenIdle() {
	// Act
	output := s.start()

	// Assert
	s.Require().True(output.Success)
	s.True(output.Rolled)
	s.Equal("a", output.Challenge.ID)
	s.Len(output.PlayerIDs, 2)
	s.True(output.Timer.Running)
	s.Equal(float64(60), output.Timer.RemainingSeconds)
	s.Equal(s.now.Add(60*time.Second), output.Timer.EndsAt)
	s.Equal(models.GamePhaseRunning, s.state().Phase)
}

func (s *GameServiceTestSuite) TestStartOrResume_KeepsReadyChallenge() {
	rolled := s.roll()

	output := s.start()

	s.Require().True(output.Success)
	s.False(output.Rolled)
	s.Equal(rolled.Challenge.ID, output.Challenge.ID)
	s.Equal(rolled.PlayerIDs, output.PlayerIDs)
}

func (s *GameServiceTestSuite) TestStartOrResume_RollsAfterComplete() {
	s.challenges = []*models.Challenge{
		testChallenge("a", 1, 4),
		testChallenge("b", 1, 4),
	}
	s.gameService = s.newService()

	first := s.start()
	_, err := s.gameService.MarkWinners(s.ctx, &MarkWinnersInput{WinnerIDs: first.PlayerIDs[:1]})
	s.Require().NoError(err)

	second := s.start()

	s.Require().True(second.Success)
	s.True(second.Rolled)
	s.NotEqual(first.Challenge.ID, second.Challenge.ID)
}

func (s *GameServiceTestSuite) TestStartOrResume_RollsAfterTimeUp() {
	s.start()
	s.now = s.now.Add(61 * time.Second)
	s.Require().True(s.tick().TimeUp)

	output := s.start()

	s.Require().True(output.Success)
	s.True(output.Rolled)
	s.True(output.Timer.Running)
	s.Equal(models.GamePhaseRunning, s.state().Phase)
}

func (s *GameServiceTestSuite) TestStartOrResume_NothingAvailable() {
	s.challenges = []*models.Challenge{}
	s.gameService = s.newService()

	output := s.start()

	s.False(output.Success)
	s.True(output.Rolled)
	s.Nil(output.Challenge)
	s.False(output.Timer.Running)
	s.Equal(models.GamePhaseIdle, s.state().Phase)
}

func (s *GameServiceTestSuite) TestStartOrResume_UsesTimerOverride() {
	s.challenges = []*models.Challenge{{
		ID: "rap", Title: "Rap", Type: models.ChallengeTypeIndividual,
		MinPlayers: 1, MaxPlayers: 1, TimerOverrideSeconds: intPtr(45),
	}}
	s.gameService = s.newService()

	output := s.start()

	s.Equal(float64(45), output.Timer.RemainingSeconds)
	s.Equal(s.now.Add(45*time.Second), output.Timer.EndsAt)
}

func (s *GameServiceTestSuite) TestTick_NotRunning() {
	s.roll()

	output := s.tick()

	s.False(output.TimeUp)
	s.False(output.Timer.Running)
	s.Equal(float64(60), output.Timer.RemainingSeconds)
	s.Equal(models.GamePhaseReady, output.Phase)
	s.Empty(s.events[1:])
}

func (s *GameServiceTestSuite) TestTick_CountsDown() {
	s.start()

	s.now = s.now.Add(10 * time.Second)
	first := s.tick()
	second := s.tick()

	// Ticking twice at the same instant gives the same answer
	s.Equal(float64(50), first.Timer.RemainingSeconds)
	s.Equal(first.Timer, second.Timer)
	s.True(first.Timer.Running)
	s.Equal(models.GamePhaseRunning, first.Phase)

	s.now = s.now.Add(500 * time.Millisecond)
	s.InDelta(49.5, s.tick().Timer.RemainingSeconds, 1e-9)
}

func (s *GameServiceTestSuite) TestTick_TimeUp() {
	s.start()
	s.events = nil

	// Act
	s.now = s.now.Add(75 * time.Second)
	output := s.tick()

	// Assert
	s.True(output.TimeUp)
	s.False(output.Timer.Running)
	s.Equal(float64(0), output.Timer.RemainingSeconds)
	s.Equal(models.GamePhaseTimeUp, output.Phase)

	s.Require().Len(s.events, 1)
	s.Equal(models.GamePhaseRunning, s.events[0].PreviousPhase)
	s.Equal(models.GamePhaseTimeUp, s.events[0].Phase)

	// Later ticks leave the finished timer alone
	s.now = s.now.Add(time.Second)
	again := s.tick()
	s.False(again.TimeUp)
	s.Equal(models.GamePhaseTimeUp, again.Phase)
	s.Equal(float64(0), again.Timer.RemainingSeconds)
	s.Len(s.events, 1)
}

func (s *GameServiceTestSuite) TestTick_ExactDeadline() {
	s.start()

	s.now = s.now.Add(60 * time.Second)
	output := s.tick()

	s.True(output.TimeUp)
	s.Equal(models.GamePhaseTimeUp, output.Phase)
}

func (s *GameServiceTestSuite) TestReroll_Cooldown() {
	s.challenges = []*models.Challenge{
		testChallenge("a", 1, 4),
		testChallenge("b", 1, 4),
	}
	s.gameService = s.newService()
	s.roll()

	// Act
	first, err := s.gameService.Reroll(s.ctx, &RerollInput{})
	s.Require().NoError(err)
	blocked, err := s.gameService.Reroll(s.ctx, &RerollInput{})
	s.Require().NoError(err)

	// Assert
	s.True(first.Permitted)
	s.True(first.Selected)
	s.Equal(s.now.Add(5*time.Second), first.RerollAvailableAt)

	s.False(blocked.Permitted)
	s.Nil(blocked.Challenge)
	s.Equal(first.RerollAvailableAt, blocked.RerollAvailableAt)
	s.Equal(first.Challenge.ID, s.state().ActiveChallenge.ID)
	s.False(s.state().RerollReady)

	s.now = s.now.Add(5 * time.Second)
	s.True(s.state().RerollReady)
	after, err := s.gameService.Reroll(s.ctx, &RerollInput{})
	s.Require().NoError(err)
	s.True(after.Permitted)
	s.NotEqual(first.Challenge.ID, after.Challenge.ID)
}

func (s *GameServiceTestSuite) TestReroll_StopsRunningTimer() {
	s.start()
	s.now = s.now.Add(20 * time.Second)

	output, err := s.gameService.Reroll(s.ctx, &RerollInput{})

	s.Require().NoError(err)
	s.True(output.Permitted)
	state := s.state()
	s.Equal(models.GamePhaseReady, state.Phase)
	s.False(state.Timer.Running)
	s.Equal(float64(60), state.Timer.RemainingSeconds)
}

func (s *GameServiceTestSuite) TestReroll_NothingAvailable() {
	s.challenges = []*models.Challenge{}
	s.gameService = s.newService()

	output, err := s.gameService.Reroll(s.ctx, &RerollInput{})

	s.Require().NoError(err)
	s.True(output.Permitted)
	s.False(output.Selected)
	s.Nil(output.Challenge)
	s.Equal(models.GamePhaseReady, s.state().Phase)
}

func (s *GameServiceTestSuite) TestMarkWinners_Scenario() {
	rolled := s.roll()
	s.start()
	winner := rolled.PlayerIDs[0]

	// Act
	output, err := s.gameService.MarkWinners(s.ctx, &MarkWinnersInput{WinnerIDs: []string{winner}})

	// Assert
	s.Require().NoError(err)
	s.True(output.Recorded)
	s.Equal(1, output.Celebrations)
	s.Equal(&models.ChallengeRecord{
		ChallengeID: "a",
		PlayerIDs:   rolled.PlayerIDs,
		WinnerIDs:   []string{winner},
		Timestamp:   s.now,
	}, output.Record)

	state := s.state()
	s.Equal(models.GamePhaseComplete, state.Phase)
	s.Equal(models.Timer{}, state.Timer)
	s.Len(state.History, 1)
	s.Equal(1, state.Celebrations)
	for _, p := range state.Players {
		if p.ID == winner {
			s.Equal(1, p.Score)
		} else {
			s.Equal(0, p.Score)
		}
	}
}

func (s *GameServiceTestSuite) TestMarkWinners_IgnoresOutsiders() {
	s.settings.ParticipantsMode = models.ParticipantsModeSolo
	s.challenges = []*models.Challenge{testChallenge("a", 1, 1)}
	s.gameService = s.newService()
	rolled := s.roll()

	outsider := "p1"
	if rolled.PlayerIDs[0] == outsider {
		outsider = "p2"
	}

	// Act
	output, err := s.gameService.MarkWinners(s.ctx, &MarkWinnersInput{
		WinnerIDs: []string{outsider, "ghost", rolled.PlayerIDs[0], rolled.PlayerIDs[0]},
	})

	// Assert
	s.Require().NoError(err)
	s.True(output.Recorded)
	s.Equal([]string{rolled.PlayerIDs[0]}, output.Record.WinnerIDs)

	board, err := s.gameService.GetScoreboard(s.ctx, &GetScoreboardInput{})
	s.Require().NoError(err)
	s.Equal(rolled.PlayerIDs[0], board.Players[0].ID)
	s.Equal(1, board.Players[0].Score)
	s.Equal(0, board.Players[1].Score)
}

func (s *GameServiceTestSuite) TestMarkWinners_NothingToRecord() {
	testCases := []struct {
		name      string
		roll      bool
		winnerIDs []string
	}{
		{name: "no active challenge", roll: false, winnerIDs: []string{"p1"}},
		{name: "empty winners", roll: true, winnerIDs: []string{}},
		{name: "only unknown winners", roll: true, winnerIDs: []string{"ghost"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.gameService = s.newService()
			if tc.roll {
				s.roll()
			}
			before := s.state()

			output, err := s.gameService.MarkWinners(s.ctx, &MarkWinnersInput{WinnerIDs: tc.winnerIDs})

			s.Require().NoError(err)
			s.False(output.Recorded)
			s.Nil(output.Record)
			after := s.state()
			s.Equal(before.Phase, after.Phase)
			s.Empty(after.History)
			s.Equal(0, after.Celebrations)
		})
	}
}

func (s *GameServiceTestSuite) TestMarkWinners_NilInput() {
	output, err := s.gameService.MarkWinners(s.ctx, nil)

	s.Require().ErrorIs(err, ErrNilInput)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestMarkWinners_KeepScoreOff() {
	s.settings.KeepScore = false
	s.gameService = s.newService()

	for n := 0; n < 3; n++ {
		rolled := s.start()
		_, err := s.gameService.MarkWinners(s.ctx, &MarkWinnersInput{WinnerIDs: rolled.PlayerIDs})
		s.Require().NoError(err)
	}

	state := s.state()
	s.Len(state.History, 3)
	s.Equal(3, state.Celebrations)
	for _, p := range state.Players {
		s.Equal(0, p.Score)
	}
}

func (s *GameServiceTestSuite) TestMarkWinners_HistoryIsAppendOnly() {
	records := []*models.ChallengeRecord{}
	for n := 0; n < 4; n++ {
		rolled := s.start()
		s.now = s.now.Add(time.Minute)
		output, err := s.gameService.MarkWinners(s.ctx, &MarkWinnersInput{WinnerIDs: rolled.PlayerIDs[1:]})
		s.Require().NoError(err)
		records = append(records, output.Record)

		history := s.state().History
		s.Require().Len(history, len(records))
		s.Equal(records, history)
	}
}

func (s *GameServiceTestSuite) TestMarkWinners_ScoresNeverDecrease() {
	s.gameService = s.newService(func(cfg *Config) {
		cfg.Challenges = nil
		cfg.Seed = 5
	})
	scores := map[string]int{}

	for i := 0; i < 30; i++ {
		rolled := s.start()
		winners := rolled.PlayerIDs[:1+i%len(rolled.PlayerIDs)]
		_, err := s.gameService.MarkWinners(s.ctx, &MarkWinnersInput{WinnerIDs: winners})
		s.Require().NoError(err)

		for _, p := range s.state().Players {
			s.GreaterOrEqual(p.Score, scores[p.ID])
			scores[p.ID] = p.Score
		}
	}
}

func (s *GameServiceTestSuite) TestResetGame() {
	rolled := s.start()
	_, err := s.gameService.MarkWinners(s.ctx, &MarkWinnersInput{WinnerIDs: rolled.PlayerIDs})
	s.Require().NoError(err)
	s.start()

	// Act
	output, err := s.gameService.ResetGame(s.ctx, &ResetGameInput{})

	// Assert
	s.Require().NoError(err)
	s.True(output.Success)

	state := s.state()
	s.Equal(models.GamePhaseIdle, state.Phase)
	s.Nil(state.ActiveChallenge)
	s.Empty(state.ActivePlayerIDs)
	s.False(state.Timer.Running)
	s.Equal(float64(60), state.Timer.RemainingSeconds)
	s.Len(state.History, 1)
	s.Equal(1, state.Celebrations)
	s.Equal(1, state.Scoreboard[0].Score)
}

func (s *GameServiceTestSuite) TestResetGame_TickAfterReset() {
	s.start()
	_, err := s.gameService.ResetGame(s.ctx, &ResetGameInput{})
	s.Require().NoError(err)

	s.now = s.now.Add(2 * time.Minute)
	output := s.tick()

	s.False(output.TimeUp)
	s.Equal(models.GamePhaseIdle, output.Phase)
}

func (s *GameServiceTestSuite) TestConcurrentCalls() {
	svc := s.newService(func(cfg *Config) {
		cfg.Challenges = nil
		cfg.Notifier = nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				switch i % 4 {
				case 0:
					_, _ = svc.RollChallenge(s.ctx, &RollChallengeInput{})
				case 1:
					_, _ = svc.Tick(s.ctx, &TickInput{})
				case 2:
					_, _ = svc.StartOrResumeChallenge(s.ctx, &StartOrResumeChallengeInput{})
				default:
					_, _ = svc.GetState(s.ctx, &GetStateInput{})
				}
			}
		}()
	}
	wg.Wait()

	output, err := svc.GetState(s.ctx, &GetStateInput{})
	s.Require().NoError(err)
	s.NotNil(output.ActiveChallenge)
}
