package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const logDate = `2006-01-02T15:04:05.000-07:00`

type Config struct {
	redisAddr     string
	redisPassword string
	verbose       bool

	// simulate
	seed    int64
	rounds  int
	catalog string
	mode    string

	// catalog and settings
	format string
	output string

	// settings save
	timerSeconds   int
	presetMode     string
	keepScore      bool
	recentWindow   int
	avoidRepeats   bool
	maxAutoPlayers int
}

func (c *Config) validate() error {
	if c.redisAddr == "" {
		return errors.New("--redis-addr cannot be empty")
	}
	return nil
}

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

// redisClient connects to the configured Redis server
func (c *Config) redisClient(ctx context.Context) (*redis.Client, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.redisAddr,
		Password: c.redisPassword,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", c.redisAddr, err)
	}
	logf(c, "connected to Redis at %s", c.redisAddr)

	return client, nil
}

// bindFlags lets PARTYCTL_<FLAG> environment variables fill flags left unset
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PARTYCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "partyctl",
		Short:         "Tools for party challenge catalogs, settings presets and seeded replays.",
		SilenceErrors: true,
		Version:       releaseVersion,
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&cfg.redisAddr, "redis-addr", "localhost:6379", "redis server address (env: PARTYCTL_REDIS_ADDR)")
	fs.StringVar(&cfg.redisPassword, "redis-password", "", "redis password (env: PARTYCTL_REDIS_PASSWORD)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: PARTYCTL_VERBOSE)")
	bindFlags(v, fs)

	cmd.AddCommand(
		newSimulateCmd(cfg, v),
		newCatalogCmd(cfg, v),
		newSettingsCmd(cfg, v),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("partyctl v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
