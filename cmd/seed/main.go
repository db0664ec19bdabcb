// Command seed populates the competitor table with synthetic leaderboard
// accounts. The engine itself never creates competitors; seeding is a
// one-time setup step.
package main

import (
	"flag"
	"log"
	"math/rand"

	"github.com/google/uuid"

	"unilife/internal/config"
	"unilife/internal/database"
	"unilife/internal/models"
	"unilife/internal/namegen"
	"unilife/internal/repository"
)

func main() {
	count := flag.Int("count", 8, "number of competitors to create")
	maxXP := flag.Int("max-xp", 800, "upper bound for starting XP")
	reset := flag.Bool("reset", false, "delete existing competitors first (WARNING: destructive)")
	flag.Parse()

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewCompetitorRepository(db)

	if *reset {
		if err := repo.DeleteAllCompetitors(); err != nil {
			log.Fatalf("Failed to reset competitors: %v", err)
		}
		log.Println("Existing competitors removed")
	}

	existing, err := repo.CountCompetitors()
	if err != nil {
		log.Fatalf("Failed to count competitors: %v", err)
	}
	if existing > 0 {
		log.Printf("Competitor table already has %d entries; use -reset to reseed", existing)
		return
	}

	for i := 0; i < *count; i++ {
		name, err := namegen.GenerateCompetitorName()
		if err != nil {
			log.Fatalf("Failed to generate competitor name: %v", err)
		}
		avatar, err := namegen.PickAvatar()
		if err != nil {
			log.Fatalf("Failed to pick avatar: %v", err)
		}

		competitor := models.Competitor{
			ID:          uuid.New().String(),
			DisplayName: name,
			XP:          rand.Intn(*maxXP + 1),
			Avatar:      avatar,
			StreakDays:  rand.Intn(31),
		}

		if err := repo.CreateCompetitor(competitor); err != nil {
			log.Fatalf("Failed to create competitor %s: %v", name, err)
		}
		log.Printf("Seeded competitor: %s %s (%d XP)", competitor.Avatar, name, competitor.XP)
	}

	log.Printf("Seeded %d competitors", *count)
}
