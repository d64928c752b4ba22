package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/grimoire-api/internal/entities"
)

// Scans character records and reports the ones the API would refuse to
// load or serve. Index keys share the character: prefix and are skipped.
func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning character records...")

	iter := client.Scan(ctx, 0, "character:*", 0).Iterator()

	broken := map[string]string{}
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasPrefix(key, "character:user:") || strings.HasPrefix(key, "character:share:") {
			continue
		}
		checkedCount++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var record entities.Character
		if err := json.Unmarshal(data, &record); err != nil {
			broken[key] = "invalid JSON: " + err.Error()
			continue
		}
		if problem := checkRecord(&record); problem != "" {
			broken[key] = problem
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d records, found %d broken\n", checkedCount, len(broken))
	if len(broken) == 0 {
		return
	}

	for key, problem := range broken {
		fmt.Printf("  - %s: %s\n", key, problem)
	}

	fmt.Print("\nDo you want to DELETE these records? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}
	for key := range broken {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete! User indexes drop dangling IDs on next list.")
}

func checkRecord(c *entities.Character) string {
	switch {
	case c.ID == "" || c.UserID == "":
		return "missing id or user_id"
	case c.Level < 1 || c.Level > 20:
		return fmt.Sprintf("level %d out of range", c.Level)
	case c.HPMax < 1 || c.HPCurrent < 0 || c.HPCurrent > c.HPMax:
		return fmt.Sprintf("hit points %d/%d out of range", c.HPCurrent, c.HPMax)
	}

	for level, pair := range c.SpellSlots {
		n, err := strconv.Atoi(level)
		if err != nil || n < 1 || n > 9 {
			return fmt.Sprintf("unknown slot level %q", level)
		}
		if pair.Current < 0 || pair.Max < 0 || pair.Current > pair.Max {
			return fmt.Sprintf("slot level %s is [%d, %d]", level, pair.Current, pair.Max)
		}
	}
	return ""
}
