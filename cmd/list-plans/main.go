package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/raidplan/internal/repositories/plans"
)

func main() {
	ctx := context.Background()

	// Set up Redis
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	planKeys, err := client.Keys(ctx, "plan:*").Result()
	if err != nil {
		log.Fatalf("Failed to get plan keys: %v", err)
	}

	var heads []string
	for _, key := range planKeys {
		if strings.HasSuffix(key, ":commands") {
			continue
		}
		heads = append(heads, key)
	}

	fmt.Printf("Found %d plans:\n", len(heads))
	for _, key := range heads {
		raw, getErr := client.Get(ctx, key).Result()
		if getErr != nil {
			fmt.Printf("  %s: ERROR - %v\n", key, getErr)
			continue
		}

		var data plans.Data
		if jsonErr := json.Unmarshal([]byte(raw), &data); jsonErr != nil {
			fmt.Printf("  %s: corrupt - %v\n", key, jsonErr)
			continue
		}

		commands, lenErr := client.LLen(ctx, key+":commands").Result()
		if lenErr != nil {
			commands = -1
		}

		assigned := 0
		for _, ids := range data.Assignments {
			assigned += len(ids)
		}

		fmt.Printf("  %s: %q on %s, owner %s, version %d, %d assignments, %d commands\n",
			key, data.Name, data.EncounterID, data.OwnerID, data.Version, assigned, commands)
	}

	// Also show the owner indexes
	ownerKeys, err := client.Keys(ctx, "owner:*:plans").Result()
	if err != nil {
		log.Fatalf("Failed to get owner keys: %v", err)
	}

	fmt.Printf("\nFound %d owners:\n", len(ownerKeys))
	for _, key := range ownerKeys {
		count, cardErr := client.SCard(ctx, key).Result()
		if cardErr != nil {
			fmt.Printf("  %s: ERROR - %v\n", key, cardErr)
			continue
		}
		fmt.Printf("  %s: %d plans\n", key, count)
	}
}
