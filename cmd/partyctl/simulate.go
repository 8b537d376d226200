package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KirkDiggler/partyroll/internal/data"
	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/services/game"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSimulateCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a seeded session and print every roll",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return simulate(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	fs := cmd.Flags()
	fs.Int64Var(&cfg.seed, "seed", 0, "seed for the draws, 0 picks one from the clock (env: PARTYCTL_SEED)")
	fs.IntVar(&cfg.rounds, "rounds", 10, "number of challenges to play (env: PARTYCTL_ROUNDS)")
	fs.StringVar(&cfg.catalog, "catalog", "", "yaml or json catalog file, defaults to the built-in catalog (env: PARTYCTL_CATALOG)")
	fs.StringVar(&cfg.mode, "mode", "", "participants mode: auto, solo, duo, trio or all (env: PARTYCTL_MODE)")
	bindFlags(v, fs)

	return cmd
}

// readCatalog decodes a catalog file
func readCatalog(path string) ([]*models.Challenge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return data.DecodeCatalog(f)
}

// simulate plays rounds back to back. Round n is won by participant (n-1) modulo the
// group size, so the same seed always prints the same game.
func simulate(ctx context.Context, cfg *Config, w io.Writer) error {
	if cfg.rounds < 1 {
		return fmt.Errorf("--rounds must be positive: %d", cfg.rounds)
	}

	var challenges []*models.Challenge
	if cfg.catalog != "" {
		var err error
		challenges, err = readCatalog(cfg.catalog)
		if err != nil {
			return err
		}
		logf(cfg, "loaded %d challenges from %s", len(challenges), cfg.catalog)
	}

	svc, err := game.New(&game.Config{
		Challenges: challenges,
		Seed:       cfg.seed,
	})
	if err != nil {
		return err
	}

	if cfg.mode != "" {
		if _, err := svc.SetParticipantsMode(ctx, &game.SetParticipantsModeInput{
			Mode: models.ParticipantsMode(cfg.mode),
		}); err != nil {
			return fmt.Errorf("%w: %s", err, cfg.mode)
		}
	}

	state, err := svc.GetState(ctx, &game.GetStateInput{})
	if err != nil {
		return err
	}
	names := map[string]string{}
	for _, p := range state.Players {
		names[p.ID] = p.Name
	}

	fmt.Fprintf(w, "seed %d, %d challenges, mode %s\n", state.Seed, len(state.Challenges), state.Settings.ParticipantsMode)

	for round := 1; round <= cfg.rounds; round++ {
		rolled, err := svc.RollChallenge(ctx, &game.RollChallengeInput{})
		if err != nil {
			return err
		}
		if !rolled.Selected {
			fmt.Fprintf(w, "round %d: nothing fits the table\n", round)
			break
		}

		players := make([]string, 0, len(rolled.PlayerIDs))
		for _, id := range rolled.PlayerIDs {
			players = append(players, names[id])
		}

		if _, err := svc.StartOrResumeChallenge(ctx, &game.StartOrResumeChallengeInput{}); err != nil {
			return err
		}

		winnerID := rolled.PlayerIDs[(round-1)%len(rolled.PlayerIDs)]
		if _, err := svc.MarkWinners(ctx, &game.MarkWinnersInput{WinnerIDs: []string{winnerID}}); err != nil {
			return err
		}

		fmt.Fprintf(w, "round %d: %s (%s) -> %s | winner %s\n",
			round, rolled.Challenge.Title, rolled.Challenge.Type, strings.Join(players, ", "), names[winnerID])
	}

	board, err := svc.GetScoreboard(ctx, &game.GetScoreboardInput{})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "scoreboard:")
	for i, p := range board.Players {
		fmt.Fprintf(w, "%2d. %-8s %d\n", i+1, p.Name, p.Score)
	}

	return nil
}
