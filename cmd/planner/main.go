package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/raidplan/internal/config"
	"github.com/KirkDiggler/raidplan/internal/events"
	"github.com/KirkDiggler/raidplan/internal/gamedata"
	"github.com/KirkDiggler/raidplan/internal/notify"
	"github.com/KirkDiggler/raidplan/internal/repositories/plans"
	"github.com/KirkDiggler/raidplan/internal/services/planner"
	"github.com/KirkDiggler/raidplan/internal/telemetry"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		log.Fatalf("Failed to set up telemetry: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.Printf("Failed to flush traces: %v", err)
		}
	}()

	abilities, encounters, err := gamedata.LoadRoster(gamedata.Source(cfg.DataDir))
	if err != nil {
		log.Fatalf("Failed to load reference data: %v", err)
	}
	for _, id := range abilities.DescriptionDurationIDs(cfg.DefaultLevel) {
		log.Printf("Ability %s takes its duration from its description at level %d", id, cfg.DefaultLevel)
	}

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open plan store: %v", err)
	}
	defer closeRepo()

	bus := events.NewBus()
	notify.NewLogNotifier().Register(bus)

	if cfg.Discord.Enabled() {
		dg, err := discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			log.Fatalf("Failed to create Discord session: %v", err)
		}
		notify.NewDiscordNotifier(&notify.DiscordNotifierConfig{
			Session:   dg,
			ChannelID: cfg.Discord.ChannelID,
		}).Register(bus)
		log.Printf("Posting planner notices to Discord channel %s", cfg.Discord.ChannelID)
	}

	svc := planner.NewService(&planner.ServiceConfig{
		Repository:   repo,
		Abilities:    abilities,
		Encounters:   encounters,
		Bus:          bus,
		DefaultLevel: cfg.DefaultLevel,
	})

	cli := &app{
		service:    svc,
		abilities:  abilities,
		encounters: encounters,
		level:      cfg.DefaultLevel,
		out:        os.Stdout,
		in:         os.Stdin,
		author:     os.Getenv("USER"),
	}

	if err := cli.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		closeRepo()
		os.Exit(1)
	}
}

// openRepository builds the configured plan store and returns a function releasing it
func openRepository(ctx context.Context, cfg *config.Config) (plans.Repository, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		var opts *redis.Options
		if cfg.Redis.URL != "" {
			parsed, err := redis.ParseURL(cfg.Redis.URL)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			opts = parsed
		} else {
			opts = &redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			}
		}

		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Printf("Using Redis at %s for plans", opts.Addr)

		closer := func() {
			if err := client.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
		}
		return plans.NewRedisRepository(&plans.RedisRepoConfig{Client: client}), closer, nil

	case config.StorePostgres:
		if err := plans.RunMigrations(ctx, cfg.Postgres.URL); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		log.Println("Using Postgres for plans")
		return plans.NewPostgresRepository(&plans.PostgresRepoConfig{Pool: pool}), pool.Close, nil

	default:
		log.Println("Using the in-memory plan store, plans last for this invocation only")
		return plans.NewInMemoryRepository(), func() {}, nil
	}
}
