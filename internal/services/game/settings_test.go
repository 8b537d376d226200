package game

import (
	"errors"
	"time"

	"github.com/KirkDiggler/partyroll/internal/models"
	settingsRepo "github.com/KirkDiggler/partyroll/internal/repositories/settings"
	"go.uber.org/mock/gomock"
)

func (s *GameServiceTestSuite) TestSetTimerSeconds() {
	testCases := []struct {
		name    string
		seconds int
		want    int
	}{
		{name: "kept", seconds: 90, want: 90},
		{name: "raised to floor", seconds: 5, want: 10},
		{name: "floor", seconds: 10, want: 10},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			output, err := s.gameService.SetTimerSeconds(s.ctx, &SetTimerSecondsInput{Seconds: tc.seconds})

			s.Require().NoError(err)
			s.Equal(tc.want, output.TimerSeconds)
			state := s.state()
			s.Equal(tc.want, state.Settings.TimerSeconds)
			s.Equal(float64(tc.want), state.Timer.RemainingSeconds)
		})
	}
}

func (s *GameServiceTestSuite) TestSetTimerSeconds_Invalid() {
	for _, seconds := range []int{0, -30} {
		output, err := s.gameService.SetTimerSeconds(s.ctx, &SetTimerSecondsInput{Seconds: seconds})

		s.Require().ErrorIs(err, ErrInvalidTimerSeconds)
		s.Nil(output)
	}
	s.Equal(60, s.state().Settings.TimerSeconds)
}

func (s *GameServiceTestSuite) TestSetTimerSeconds_RunningTimerUntouched() {
	s.start()
	s.now = s.now.Add(15 * time.Second)
	s.tick()

	_, err := s.gameService.SetTimerSeconds(s.ctx, &SetTimerSecondsInput{Seconds: 120})
	s.Require().NoError(err)

	state := s.state()
	s.Equal(120, state.Settings.TimerSeconds)
	s.Equal(float64(45), state.Timer.RemainingSeconds)
	s.True(state.Timer.Running)
}

func (s *GameServiceTestSuite) TestSetTimerSeconds_OverrideUntouched() {
	s.challenges = []*models.Challenge{{
		ID: "rap", Title: "Rap", Type: models.ChallengeTypeIndividual,
		MinPlayers: 1, MaxPlayers: 1, TimerOverrideSeconds: intPtr(45),
	}}
	s.gameService = s.newService()
	s.roll()

	_, err := s.gameService.SetTimerSeconds(s.ctx, &SetTimerSecondsInput{Seconds: 120})
	s.Require().NoError(err)

	state := s.state()
	s.Equal(float64(45), state.Timer.RemainingSeconds)
	s.Equal(45, state.CurrentTimerLimit)
}

func (s *GameServiceTestSuite) TestSetParticipantsMode() {
	output, err := s.gameService.SetParticipantsMode(s.ctx, &SetParticipantsModeInput{Mode: models.ParticipantsModeAll})

	s.Require().NoError(err)
	s.Equal(models.ParticipantsModeAll, output.Mode)
	s.Len(s.roll().PlayerIDs, 4)

	output, err = s.gameService.SetParticipantsMode(s.ctx, &SetParticipantsModeInput{Mode: "everyone"})
	s.Require().ErrorIs(err, ErrInvalidParticipantsMode)
	s.Nil(output)
	s.Equal(models.ParticipantsModeAll, s.state().Settings.ParticipantsMode)
}

func (s *GameServiceTestSuite) TestSetMaxAutoPlayers_Clamps() {
	testCases := []struct {
		value int
		want  int
	}{
		{value: 3, want: 3},
		{value: 10, want: 4},
		{value: 0, want: 1},
		{value: -2, want: 1},
	}

	for _, tc := range testCases {
		output, err := s.gameService.SetMaxAutoPlayers(s.ctx, &SetMaxAutoPlayersInput{MaxAutoPlayers: tc.value})

		s.Require().NoError(err)
		s.Equal(tc.want, output.MaxAutoPlayers)
	}
}

func (s *GameServiceTestSuite) TestSetKeepScore() {
	output, err := s.gameService.SetKeepScore(s.ctx, &SetKeepScoreInput{KeepScore: false})
	s.Require().NoError(err)
	s.False(output.KeepScore)

	rolled := s.start()
	_, err = s.gameService.MarkWinners(s.ctx, &MarkWinnersInput{WinnerIDs: rolled.PlayerIDs})
	s.Require().NoError(err)

	s.Equal(0, s.state().Scoreboard[0].Score)
}

func (s *GameServiceTestSuite) TestSetRecentWindow_Trims() {
	s.challenges = []*models.Challenge{
		testChallenge("a", 1, 4),
		testChallenge("b", 1, 4),
		testChallenge("c", 1, 4),
	}
	s.settings.RecentChallengeWindow = 3
	s.gameService = s.newService()

	drawn := []string{}
	for n := 0; n < 3; n++ {
		drawn = append(drawn, s.roll().Challenge.ID)
		_, err := s.gameService.ResetGame(s.ctx, &ResetGameInput{})
		s.Require().NoError(err)
	}
	s.Require().Equal(drawn, s.state().RecentChallengeIDs)

	// Act
	output, err := s.gameService.SetRecentWindow(s.ctx, &SetRecentWindowInput{Window: 1})

	// Assert
	s.Require().NoError(err)
	s.Equal(1, output.Window)
	s.Equal(drawn[2:], output.RecentChallengeIDs)

	output, err = s.gameService.SetRecentWindow(s.ctx, &SetRecentWindowInput{Window: 0})
	s.Require().NoError(err)
	s.Empty(output.RecentChallengeIDs)

	// A zero window stops tracking entirely
	s.roll()
	s.Empty(s.state().RecentChallengeIDs)
}

func (s *GameServiceTestSuite) TestSetRecentWindow_Negative() {
	output, err := s.gameService.SetRecentWindow(s.ctx, &SetRecentWindowInput{Window: -1})

	s.Require().ErrorIs(err, ErrInvalidRecentWindow)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestSetAvoidRepeats() {
	output, err := s.gameService.SetAvoidRepeats(s.ctx, &SetAvoidRepeatsInput{AvoidRepeats: false})

	s.Require().NoError(err)
	s.False(output.AvoidRepeats)
	s.False(s.state().Settings.AvoidRepeats)
}

func (s *GameServiceTestSuite) TestSetters_NilInput() {
	_, err := s.gameService.SetTimerSeconds(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
	_, err = s.gameService.SetParticipantsMode(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
	_, err = s.gameService.SetMaxAutoPlayers(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
	_, err = s.gameService.SetKeepScore(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
	_, err = s.gameService.SetRecentWindow(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
	_, err = s.gameService.SetAvoidRepeats(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
}

func (s *GameServiceTestSuite) TestSaveSettings() {
	s.mockSettingsRepo.EXPECT().
		SaveSettings(gomock.Any(), &settingsRepo.SaveSettingsInput{
			Name:     "quick",
			Settings: s.settings,
		}).
		Return(nil)

	output, err := s.gameService.SaveSettings(s.ctx, &SaveSettingsInput{Name: "quick"})

	s.Require().NoError(err)
	s.Equal("quick", output.Name)
}

func (s *GameServiceTestSuite) TestSaveSettings_RepoError() {
	expectedError := errors.New("redis down")
	s.mockSettingsRepo.EXPECT().
		SaveSettings(gomock.Any(), gomock.Any()).
		Return(expectedError)

	output, err := s.gameService.SaveSettings(s.ctx, &SaveSettingsInput{Name: "quick"})

	s.Require().ErrorIs(err, expectedError)
	s.Nil(output)
}

func (s *GameServiceTestSuite) TestSaveSettings_Validation() {
	_, err := s.gameService.SaveSettings(s.ctx, &SaveSettingsInput{Name: ""})
	s.ErrorIs(err, ErrInvalidName)

	svc := s.newService(func(cfg *Config) {
		cfg.SettingsRepo = nil
	})
	_, err = svc.SaveSettings(s.ctx, &SaveSettingsInput{Name: "quick"})
	s.ErrorIs(err, ErrNilSettingsRepo)
	_, err = svc.LoadSettings(s.ctx, &LoadSettingsInput{Name: "quick"})
	s.ErrorIs(err, ErrNilSettingsRepo)
}

func (s *GameServiceTestSuite) TestLoadSettings() {
	s.mockSettingsRepo.EXPECT().
		GetSettings(gomock.Any(), &settingsRepo.GetSettingsInput{Name: "party"}).
		Return(&models.Settings{
			KeepScore:             false,
			TimerSeconds:          5,
			ParticipantsMode:      models.ParticipantsModeTrio,
			RecentChallengeWindow: 2,
			AvoidRepeats:          false,
			MaxAutoPlayers:        9,
		}, nil)

	// Act
	output, err := s.gameService.LoadSettings(s.ctx, &LoadSettingsInput{Name: "party"})

	// Assert
	s.Require().NoError(err)
	s.Equal(models.Settings{
		KeepScore:             false,
		TimerSeconds:          10,
		ParticipantsMode:      models.ParticipantsModeTrio,
		RecentChallengeWindow: 2,
		AvoidRepeats:          false,
		MaxAutoPlayers:        4,
	}, output.Settings)
	s.Equal(output.Settings, s.state().Settings)
	s.Equal(float64(10), s.state().Timer.RemainingSeconds)
}

func (s *GameServiceTestSuite) TestLoadSettings_Errors() {
	s.Run("not found", func() {
		s.mockSettingsRepo.EXPECT().
			GetSettings(gomock.Any(), gomock.Any()).
			Return(nil, settingsRepo.ErrSettingsNotFound)

		output, err := s.gameService.LoadSettings(s.ctx, &LoadSettingsInput{Name: "missing"})

		s.Require().ErrorIs(err, settingsRepo.ErrSettingsNotFound)
		s.Nil(output)
	})

	s.Run("invalid preset", func() {
		s.mockSettingsRepo.EXPECT().
			GetSettings(gomock.Any(), gomock.Any()).
			Return(&models.Settings{TimerSeconds: 60, ParticipantsMode: "crowd", MaxAutoPlayers: 2}, nil)

		output, err := s.gameService.LoadSettings(s.ctx, &LoadSettingsInput{Name: "broken"})

		s.Require().ErrorIs(err, ErrInvalidSettings)
		s.Nil(output)
		s.Equal(models.ParticipantsModeDuo, s.state().Settings.ParticipantsMode)
	})

	s.Run("empty name", func() {
		output, err := s.gameService.LoadSettings(s.ctx, &LoadSettingsInput{})

		s.Require().ErrorIs(err, ErrInvalidName)
		s.Nil(output)
	})
}
