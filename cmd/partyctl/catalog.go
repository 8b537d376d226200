package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/KirkDiggler/partyroll/internal/data"
	"github.com/KirkDiggler/partyroll/internal/repositories/catalog"
	"github.com/KirkDiggler/partyroll/internal/services/game"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCatalogCmd(cfg *Config, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage challenge catalogs stored in Redis",
	}

	importCmd := &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Validate a catalog file and store it under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalogRepo(cmd.Context(), cfg, func(repo catalog.Repository) error {
				return importCatalog(cmd.Context(), cfg, repo, args[0], args[1], cmd.OutOrStdout())
			})
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Print a stored catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalogRepo(cmd.Context(), cfg, func(repo catalog.Repository) error {
				return exportCatalog(cmd.Context(), cfg, repo, args[0], cmd.OutOrStdout())
			})
		},
	}
	exportFlags := exportCmd.Flags()
	exportFlags.StringVarP(&cfg.format, "format", "f", "", "yaml or json, defaults to the output file extension or yaml (env: PARTYCTL_FORMAT)")
	exportFlags.StringVarP(&cfg.output, "output", "o", "", "file to write instead of stdout (env: PARTYCTL_OUTPUT)")
	bindFlags(v, exportFlags)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored catalogs",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalogRepo(cmd.Context(), cfg, func(repo catalog.Repository) error {
				return listCatalogs(cmd.Context(), repo, cmd.OutOrStdout())
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a stored catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalogRepo(cmd.Context(), cfg, func(repo catalog.Repository) error {
				if err := repo.DeleteCatalog(cmd.Context(), &catalog.DeleteCatalogInput{Name: args[0]}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted catalog %s\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(importCmd, exportCmd, listCmd, deleteCmd)

	return cmd
}

func withCatalogRepo(ctx context.Context, cfg *Config, fn func(repo catalog.Repository) error) error {
	client, err := cfg.redisClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	repo, err := catalog.NewRedis(&catalog.Config{RedisClient: client})
	if err != nil {
		return err
	}

	return fn(repo)
}

// importCatalog runs the file through a session so it gets the same validation as an in-game import
func importCatalog(ctx context.Context, cfg *Config, repo catalog.Repository, name, path string, w io.Writer) error {
	challenges, err := readCatalog(path)
	if err != nil {
		return err
	}

	svc, err := game.New(&game.Config{CatalogRepo: repo})
	if err != nil {
		return err
	}

	if _, err := svc.ImportChallenges(ctx, &game.ImportChallengesInput{Challenges: challenges}); err != nil {
		return fmt.Errorf("catalog %s is invalid: %w", path, err)
	}

	output, err := svc.SaveCatalog(ctx, &game.SaveCatalogInput{Name: name})
	if err != nil {
		return err
	}
	logf(cfg, "stored %s from %s", output.Name, path)

	fmt.Fprintf(w, "imported %d challenges as %s\n", output.Count, output.Name)
	return nil
}

func exportCatalog(ctx context.Context, cfg *Config, repo catalog.Repository, name string, w io.Writer) error {
	svc, err := game.New(&game.Config{CatalogRepo: repo})
	if err != nil {
		return err
	}

	if _, err := svc.LoadCatalog(ctx, &game.LoadCatalogInput{Name: name}); err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", name, err)
	}

	exported, err := svc.ExportChallenges(ctx, &game.ExportChallengesInput{})
	if err != nil {
		return err
	}

	format := data.Format(cfg.format)
	if cfg.output != "" {
		if format == "" {
			format = data.FormatFromPath(cfg.output)
		}

		f, err := os.Create(cfg.output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", cfg.output, err)
		}
		defer f.Close()
		w = f
	}

	return data.EncodeCatalog(w, exported.Challenges, format)
}

func listCatalogs(ctx context.Context, repo catalog.Repository, w io.Writer) error {
	svc, err := game.New(&game.Config{CatalogRepo: repo})
	if err != nil {
		return err
	}

	output, err := svc.ListCatalogs(ctx, &game.ListCatalogsInput{})
	if err != nil {
		return err
	}

	for _, name := range output.Names {
		fmt.Fprintln(w, name)
	}
	return nil
}
