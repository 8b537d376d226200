package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/KirkDiggler/partyroll/internal/common/clock"
	"github.com/KirkDiggler/partyroll/internal/data"
	"github.com/KirkDiggler/partyroll/internal/handlers/discord"
	"github.com/KirkDiggler/partyroll/internal/models"
	"github.com/KirkDiggler/partyroll/internal/random"
	"github.com/KirkDiggler/partyroll/internal/repositories/catalog"
	"github.com/KirkDiggler/partyroll/internal/repositories/settings"
	gameService "github.com/KirkDiggler/partyroll/internal/services/game"
	"github.com/KirkDiggler/partyroll/internal/services/messaging"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// A missing .env file is fine, the environment may already be set
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	catalogRepo, err := catalog.NewRedis(&catalog.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create catalog repository: %v", err)
	}

	settingsRepo, err := settings.NewRedis(&settings.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create settings repository: %v", err)
	}

	// Optional catalog file replacing the built-in challenges
	var challenges []*models.Challenge
	if path := getEnv("PARTY_CATALOG", ""); path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Failed to open catalog %s: %v", path, err)
		}
		challenges, err = data.DecodeCatalog(f)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to read catalog %s: %v", path, err)
		}
		log.Printf("Loaded %d challenges from %s", len(challenges), path)
	}

	tickInterval, err := time.ParseDuration(getEnv("PARTY_TICK_INTERVAL", "500ms"))
	if err != nil {
		log.Fatalf("Invalid PARTY_TICK_INTERVAL: %v", err)
	}

	rerollCooldown, err := time.ParseDuration(getEnv("PARTY_REROLL_COOLDOWN", "3s"))
	if err != nil {
		log.Fatalf("Invalid PARTY_REROLL_COOLDOWN: %v", err)
	}

	var seed int64
	if raw := getEnv("PARTY_SEED", ""); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("Invalid PARTY_SEED: %v", err)
		}
	}

	clk := &clock.DefaultClock{}

	messagingSvc, err := messaging.New(&messaging.Config{
		Random: random.NewMulberry32(&random.Config{Seed: random.RandomSeed()}),
	})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	// Every channel gets its own session sharing the repositories
	gameFactory := func(channelID string, notifier gameService.Notifier) (gameService.Service, error) {
		return gameService.New(&gameService.Config{
			Challenges:     challenges,
			RerollCooldown: rerollCooldown,
			Seed:           seed,
			CatalogRepo:    catalogRepo,
			SettingsRepo:   settingsRepo,
			Clock:          clk,
			Notifier:       notifier,
		})
	}

	// Get Discord token from environment
	discordToken := getEnv("DISCORD_TOKEN", "")
	if discordToken == "" {
		log.Fatal("DISCORD_TOKEN environment variable is required")
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:         discordToken,
		ApplicationID: getEnv("APPLICATION_ID", ""),
		GuildID:       getEnv("GUILD_ID", ""),
		TickInterval:  tickInterval,
		GameFactory:   gameFactory,
		Messaging:     messagingSvc,
		Clock:         clk,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
