package main

import (
	"context"
	"fmt"
	"io"

	"github.com/KirkDiggler/partyroll/internal/data"
	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/repositories/settings"
	"github.com/KirkDiggler/partyroll/internal/services/game"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newSettingsCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage settings presets stored in Redis",
	}

	defaults := data.DefaultSettings()

	saveCmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Store a settings preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettingsRepo(cmd.Context(), cfg, func(repo settings.Repository) error {
				return saveSettings(cmd.Context(), cfg, repo, args[0], cmd.OutOrStdout())
			})
		},
	}
	fs := saveCmd.Flags()
	fs.IntVar(&cfg.timerSeconds, "timer", defaults.TimerSeconds, "default challenge length in seconds (env: PARTYCTL_TIMER)")
	fs.StringVar(&cfg.presetMode, "mode", string(defaults.ParticipantsMode), "participants mode: auto, solo, duo, trio or all (env: PARTYCTL_MODE)")
	fs.BoolVar(&cfg.keepScore, "keep-score", defaults.KeepScore, "award points to winners (env: PARTYCTL_KEEP_SCORE)")
	fs.IntVar(&cfg.recentWindow, "recent-window", defaults.RecentChallengeWindow, "how many recent challenges to avoid (env: PARTYCTL_RECENT_WINDOW)")
	fs.BoolVar(&cfg.avoidRepeats, "avoid-repeats", defaults.AvoidRepeats, "skip recently played challenges when possible (env: PARTYCTL_AVOID_REPEATS)")
	fs.IntVar(&cfg.maxAutoPlayers, "max-auto-players", defaults.MaxAutoPlayers, "largest group auto mode draws (env: PARTYCTL_MAX_AUTO_PLAYERS)")
	bindFlags(v, fs)

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored settings preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettingsRepo(cmd.Context(), cfg, func(repo settings.Repository) error {
				return showSettings(cmd.Context(), repo, args[0], cmd.OutOrStdout())
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored settings presets",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettingsRepo(cmd.Context(), cfg, func(repo settings.Repository) error {
				output, err := repo.ListSettings(cmd.Context(), &settings.ListSettingsInput{})
				if err != nil {
					return err
				}
				for _, name := range output.Names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(saveCmd, showCmd, listCmd)

	return cmd
}

func withSettingsRepo(ctx context.Context, cfg *Config, fn func(repo settings.Repository) error) error {
	client, err := cfg.redisClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	repo, err := settings.NewRedis(&settings.Config{RedisClient: client})
	if err != nil {
		return err
	}

	return fn(repo)
}

// saveSettings applies the flags through a session's setters, so stored presets are
// normalised the same way the game normalises them
func saveSettings(ctx context.Context, cfg *Config, repo settings.Repository, name string, w io.Writer) error {
	svc, err := game.New(&game.Config{SettingsRepo: repo})
	if err != nil {
		return err
	}

	if _, err := svc.SetTimerSeconds(ctx, &game.SetTimerSecondsInput{Seconds: cfg.timerSeconds}); err != nil {
		return fmt.Errorf("--timer: %w", err)
	}
	if _, err := svc.SetParticipantsMode(ctx, &game.SetParticipantsModeInput{Mode: models.ParticipantsMode(cfg.presetMode)}); err != nil {
		return fmt.Errorf("--mode: %w", err)
	}
	if _, err := svc.SetKeepScore(ctx, &game.SetKeepScoreInput{KeepScore: cfg.keepScore}); err != nil {
		return err
	}
	if _, err := svc.SetRecentWindow(ctx, &game.SetRecentWindowInput{Window: cfg.recentWindow}); err != nil {
		return fmt.Errorf("--recent-window: %w", err)
	}
	if _, err := svc.SetAvoidRepeats(ctx, &game.SetAvoidRepeatsInput{AvoidRepeats: cfg.avoidRepeats}); err != nil {
		return err
	}
	if _, err := svc.SetMaxAutoPlayers(ctx, &game.SetMaxAutoPlayersInput{MaxAutoPlayers: cfg.maxAutoPlayers}); err != nil {
		return fmt.Errorf("--max-auto-players: %w", err)
	}

	if _, err := svc.SaveSettings(ctx, &game.SaveSettingsInput{Name: name}); err != nil {
		return err
	}
	logf(cfg, "stored settings preset %s", name)

	fmt.Fprintf(w, "saved settings preset %s\n", name)
	return nil
}

func showSettings(ctx context.Context, repo settings.Repository, name string, w io.Writer) error {
	svc, err := game.New(&game.Config{SettingsRepo: repo})
	if err != nil {
		return err
	}

	output, err := svc.LoadSettings(ctx, &game.LoadSettingsInput{Name: name})
	if err != nil {
		return fmt.Errorf("failed to load settings %s: %w", name, err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(output.Settings); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return enc.Close()
}
