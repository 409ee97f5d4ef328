package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mborch/scorekeeper/internal/scoring"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"github.com/vmihailenco/msgpack/v5"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "TOURNAMENT_ID"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

func main() {
	log.Info("Starting tournament seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}
	log.Info("Successfully connected to the primary database.")

	tournamentID := cfg["TOURNAMENT_ID"]
	const matchCount = 6
	const numTeams = 48

	_, err = db.Exec(`
		INSERT INTO tournaments (id, match_count) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET match_count = excluded.match_count
	`, tournamentID, matchCount)
	if err != nil {
		log.Fatalf("Failed to upsert tournament: %s", err)
	}

	log.Info("Preparing to insert dummy teams...", "total", numTeams, "matches", matchCount)
	startTime := time.Now()

	stmt, err := db.Prepare(`
		INSERT INTO teams (id, tournament_id, name, match_scores, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		log.Fatalf("Failed to prepare insert: %s", err)
	}
	defer stmt.Close()

	for i := 0; i < numTeams; i++ {
		scores := make([]scoring.MatchScore, matchCount)
		for m := range scores {
			scores[m] = scoring.MatchScore{
				Kills:     rand.Intn(12),
				Placement: 1 + rand.Intn(scoring.MaxPlacement),
				Bonus:     0,
			}
		}
		blob, _ := msgpack.Marshal(scores)

		_, err := stmt.Exec(
			uuid.NewString(),
			tournamentID,
			fmt.Sprintf("Seeded Squad %02d", i+1),
			blob,
			time.Now().UnixNano(),
		)
		if err != nil {
			log.Fatalf("Failed to insert team %d: %s", i+1, err)
		}
	}

	log.Info("Seeding complete", "teams", numTeams, "duration_ms", time.Since(startTime).Milliseconds())
}
