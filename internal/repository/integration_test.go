package repository

import (
	"path/filepath"
	"testing"

	"unilife/internal/database"
	"unilife/internal/models"
)

// setupTestDB creates a throwaway SQLite database with the full schema applied
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test_repository.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func TestAccountRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	repo := NewAccountRepository(db)

	profile := models.DefaultProfile("2026-09-01")
	profile.DisplayName = "Jordan"
	profile.XP = 150
	profile.Level = 2
	profile.LevelTitle = "Sophomore"
	profile.Badges = []string{"Bronze Badge 🥉", "Silver Badge 🥈"}
	profile.CompletedQuests = []string{"q_login", "q_task"}
	profile.Onboarded = true
	profile.Stats.QuizzesCompleted = 3

	account, err := repo.CreateAccount("jordan@example.com", "hashedpass", profile)
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if account.ID == 0 {
		t.Error("Expected a non-zero account ID")
	}

	t.Run("GetAccountByEmail", func(t *testing.T) {
		got, err := repo.GetAccountByEmail("jordan@example.com")
		if err != nil {
			t.Fatalf("GetAccountByEmail failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected account, got nil")
		}
		if got.Email != "jordan@example.com" {
			t.Errorf("Email = %v, want jordan@example.com", got.Email)
		}
		if got.PasswordHash != "hashedpass" {
			t.Errorf("PasswordHash = %v, want hashedpass", got.PasswordHash)
		}
		if got.Profile.DisplayName != "Jordan" {
			t.Errorf("DisplayName = %v, want Jordan", got.Profile.DisplayName)
		}
		if got.Profile.XP != 150 || got.Profile.Level != 2 || got.Profile.LevelTitle != "Sophomore" {
			t.Errorf("Progress = %d/%d/%s, want 150/2/Sophomore",
				got.Profile.XP, got.Profile.Level, got.Profile.LevelTitle)
		}
		if len(got.Profile.Badges) != 2 || got.Profile.Badges[0] != "Bronze Badge 🥉" {
			t.Errorf("Badges = %v, want the two stored badges", got.Profile.Badges)
		}
		if len(got.Profile.CompletedQuests) != 2 || got.Profile.CompletedQuests[1] != "q_task" {
			t.Errorf("CompletedQuests = %v, want [q_login q_task]", got.Profile.CompletedQuests)
		}
		if !got.Profile.Onboarded {
			t.Error("Expected Onboarded to round-trip as true")
		}
		if got.Profile.Stats.QuizzesCompleted != 3 {
			t.Errorf("QuizzesCompleted = %d, want 3", got.Profile.Stats.QuizzesCompleted)
		}
	})

	t.Run("GetAccountByEmailMissing", func(t *testing.T) {
		got, err := repo.GetAccountByEmail("nobody@example.com")
		if err != nil {
			t.Fatalf("GetAccountByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil for unknown email, got %+v", got)
		}
	})

	t.Run("SaveProfile", func(t *testing.T) {
		updated := profile.Clone()
		updated.XP = 400
		updated.Level = 3
		updated.LevelTitle = "Junior"
		updated.CompletedQuests = []string{}

		if err := repo.SaveProfile("jordan@example.com", updated); err != nil {
			t.Fatalf("SaveProfile failed: %v", err)
		}

		got, err := repo.GetAccountByEmail("jordan@example.com")
		if err != nil {
			t.Fatalf("GetAccountByEmail failed: %v", err)
		}
		if got.Profile.XP != 400 || got.Profile.LevelTitle != "Junior" {
			t.Errorf("Progress = %d/%s, want 400/Junior", got.Profile.XP, got.Profile.LevelTitle)
		}
		if len(got.Profile.CompletedQuests) != 0 {
			t.Errorf("CompletedQuests = %v, want empty", got.Profile.CompletedQuests)
		}
	})

	t.Run("SaveProfileMissingAccount", func(t *testing.T) {
		if err := repo.SaveProfile("nobody@example.com", profile); err == nil {
			t.Error("Expected error saving profile for unknown email")
		}
	})

	t.Run("GetAllAccounts", func(t *testing.T) {
		other := models.DefaultProfile("2026-09-01")
		other.DisplayName = "Alex"
		if _, err := repo.CreateAccount("alex@example.com", "otherhash", other); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}

		accounts, err := repo.GetAllAccounts()
		if err != nil {
			t.Fatalf("GetAllAccounts failed: %v", err)
		}
		if len(accounts) != 2 {
			t.Fatalf("Expected 2 accounts, got %d", len(accounts))
		}
		// Ordered by email
		if accounts[0].Email != "alex@example.com" || accounts[1].Email != "jordan@example.com" {
			t.Errorf("Unexpected ordering: %s, %s", accounts[0].Email, accounts[1].Email)
		}
	})
}

func TestSessionRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	repo := NewSessionRepository(db)

	t.Run("EmptyByDefault", func(t *testing.T) {
		token, err := repo.GetActiveSession()
		if err != nil {
			t.Fatalf("GetActiveSession failed: %v", err)
		}
		if token != "" {
			t.Errorf("Expected empty session, got %q", token)
		}
	})

	t.Run("SetAndGet", func(t *testing.T) {
		if err := repo.SetActiveSession("token-one"); err != nil {
			t.Fatalf("SetActiveSession failed: %v", err)
		}
		token, err := repo.GetActiveSession()
		if err != nil {
			t.Fatalf("GetActiveSession failed: %v", err)
		}
		if token != "token-one" {
			t.Errorf("Token = %q, want token-one", token)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := repo.SetActiveSession("token-two"); err != nil {
			t.Fatalf("SetActiveSession failed: %v", err)
		}
		token, err := repo.GetActiveSession()
		if err != nil {
			t.Fatalf("GetActiveSession failed: %v", err)
		}
		if token != "token-two" {
			t.Errorf("Token = %q, want token-two", token)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		if err := repo.ClearActiveSession(); err != nil {
			t.Fatalf("ClearActiveSession failed: %v", err)
		}
		token, err := repo.GetActiveSession()
		if err != nil {
			t.Fatalf("GetActiveSession failed: %v", err)
		}
		if token != "" {
			t.Errorf("Expected empty session after clear, got %q", token)
		}
	})
}

func TestCompetitorRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupTestDB(t)
	repo := NewCompetitorRepository(db)

	competitors := []models.Competitor{
		{ID: "comp-1", DisplayName: "Swift Falcon", XP: 120, Avatar: "🦊", StreakDays: 4},
		{ID: "comp-2", DisplayName: "Clever Otter", XP: 80, Avatar: "🦉", StreakDays: 2},
	}
	for _, c := range competitors {
		if err := repo.CreateCompetitor(c); err != nil {
			t.Fatalf("CreateCompetitor failed: %v", err)
		}
	}

	t.Run("Count", func(t *testing.T) {
		count, err := repo.CountCompetitors()
		if err != nil {
			t.Fatalf("CountCompetitors failed: %v", err)
		}
		if count != 2 {
			t.Errorf("Count = %d, want 2", count)
		}
	})

	t.Run("GetAll", func(t *testing.T) {
		got, err := repo.GetAllCompetitors()
		if err != nil {
			t.Fatalf("GetAllCompetitors failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 competitors, got %d", len(got))
		}
		if got[0].ID != "comp-1" || got[1].ID != "comp-2" {
			t.Errorf("Unexpected ordering: %s, %s", got[0].ID, got[1].ID)
		}
		if got[0].DisplayName != "Swift Falcon" || got[0].Avatar != "🦊" {
			t.Errorf("Competitor fields did not round-trip: %+v", got[0])
		}
	})

	t.Run("UpdateXP", func(t *testing.T) {
		if err := repo.UpdateCompetitorXP("comp-2", 95); err != nil {
			t.Fatalf("UpdateCompetitorXP failed: %v", err)
		}
		got, err := repo.GetAllCompetitors()
		if err != nil {
			t.Fatalf("GetAllCompetitors failed: %v", err)
		}
		if got[1].XP != 95 {
			t.Errorf("XP = %d, want 95", got[1].XP)
		}
	})

	t.Run("DeleteAll", func(t *testing.T) {
		if err := repo.DeleteAllCompetitors(); err != nil {
			t.Fatalf("DeleteAllCompetitors failed: %v", err)
		}
		count, err := repo.CountCompetitors()
		if err != nil {
			t.Fatalf("CountCompetitors failed: %v", err)
		}
		if count != 0 {
			t.Errorf("Count = %d, want 0 after delete", count)
		}
	})
}
