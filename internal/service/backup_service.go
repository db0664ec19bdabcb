package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"unilife/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string             `json:"version"`
	ExportedAt   time.Time          `json:"exported_at"`
	DatabaseType string             `json:"database_type"`
	Accounts     []AccountBackup    `json:"accounts"`
	Competitors  []CompetitorBackup `json:"competitors"`
}

// AccountBackup represents one account record with its profile
type AccountBackup struct {
	Email                string `json:"email"`
	PasswordHash         string `json:"password_hash"`
	DisplayName          string `json:"display_name"`
	XP                   int    `json:"xp"`
	Level                int    `json:"level"`
	LevelTitle           string `json:"level_title"`
	StreakDays           int    `json:"streak_days"`
	StreakFreezes        *int   `json:"streak_freezes,omitempty"`
	LastActiveDate       string `json:"last_active_date"`
	Badges               string `json:"badges"`
	CompletedQuests      string `json:"completed_quests"`
	Onboarded            bool   `json:"onboarded"`
	QuizzesCompleted     int    `json:"quizzes_completed"`
	CorrectAnswers       int    `json:"correct_answers"`
	TasksOrganized       int    `json:"tasks_organized"`
	ToolsDiscovered      int    `json:"tools_discovered"`
	CodingProblemsSolved int    `json:"coding_problems_solved"`
}

// CompetitorBackup represents one synthetic competitor record
type CompetitorBackup struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	XP          int    `json:"xp"`
	Avatar      string `json:"avatar"`
	StreakDays  int    `json:"streak_days"`
}

// BackupService exports and restores the engine's durable state as JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup to a file
func (s *BackupService) Export(outputPath string) error {
	log.Printf("Starting database export to %s...", outputPath)

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return s.ExportToWriter(file)
}

// ExportToWriter writes a complete backup as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: s.db.Dialect.DriverName(),
	}

	if err := s.exportAccounts(backup); err != nil {
		return fmt.Errorf("failed to export accounts: %w", err)
	}

	if err := s.exportCompetitors(backup); err != nil {
		return fmt.Errorf("failed to export competitors: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d accounts, %d competitors",
		len(backup.Accounts), len(backup.Competitors))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a JSON backup stream. The whole
// import runs in one transaction so a bad record leaves nothing behind.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.importAccounts(tx, backup.Accounts); err != nil {
		return fmt.Errorf("failed to import accounts: %w", err)
	}

	if err := s.importCompetitors(tx, backup.Competitors); err != nil {
		return fmt.Errorf("failed to import competitors: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

// ClearAll removes all accounts, competitors, and the session record in one
// transaction
func (s *BackupService) ClearAll() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		"DELETE FROM accounts",
		"DELETE FROM competitors",
		"DELETE FROM settings",
	} {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *BackupService) exportAccounts(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT email, password_hash, display_name, xp, level, level_title,
			streak_days, streak_freezes, last_active_date, badges,
			completed_quests, onboarded, quizzes_completed, correct_answers,
			tasks_organized, tools_discovered, coding_problems_solved
		FROM accounts ORDER BY email
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AccountBackup
		var freezes int
		err := rows.Scan(&a.Email, &a.PasswordHash, &a.DisplayName, &a.XP,
			&a.Level, &a.LevelTitle, &a.StreakDays, &freezes,
			&a.LastActiveDate, &a.Badges, &a.CompletedQuests, &a.Onboarded,
			&a.QuizzesCompleted, &a.CorrectAnswers, &a.TasksOrganized,
			&a.ToolsDiscovered, &a.CodingProblemsSolved)
		if err != nil {
			return err
		}
		a.StreakFreezes = &freezes
		backup.Accounts = append(backup.Accounts, a)
	}
	return rows.Err()
}

func (s *BackupService) exportCompetitors(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, display_name, xp, avatar, streak_days
		FROM competitors ORDER BY id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c CompetitorBackup
		if err := rows.Scan(&c.ID, &c.DisplayName, &c.XP, &c.Avatar, &c.StreakDays); err != nil {
			return err
		}
		backup.Competitors = append(backup.Competitors, c)
	}
	return rows.Err()
}

func (s *BackupService) importAccounts(tx database.DBTX, accounts []AccountBackup) error {
	for _, a := range accounts {
		// Backups written before freezes existed omit the field; such
		// profiles start with one freeze banked
		freezes := 1
		if a.StreakFreezes != nil {
			freezes = *a.StreakFreezes
		}

		_, err := tx.Exec(`
			INSERT INTO accounts (
				email, password_hash, display_name, xp, level, level_title,
				streak_days, streak_freezes, last_active_date, badges,
				completed_quests, onboarded, quizzes_completed,
				correct_answers, tasks_organized, tools_discovered,
				coding_problems_solved
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.Email, a.PasswordHash, a.DisplayName, a.XP, a.Level,
			a.LevelTitle, a.StreakDays, freezes, a.LastActiveDate, a.Badges,
			a.CompletedQuests, a.Onboarded, a.QuizzesCompleted,
			a.CorrectAnswers, a.TasksOrganized, a.ToolsDiscovered,
			a.CodingProblemsSolved)
		if err != nil {
			return fmt.Errorf("failed to import account %s: %w", a.Email, err)
		}
	}
	return nil
}

func (s *BackupService) importCompetitors(tx database.DBTX, competitors []CompetitorBackup) error {
	for _, c := range competitors {
		_, err := tx.Exec(`
			INSERT INTO competitors (id, display_name, xp, avatar, streak_days)
			VALUES (?, ?, ?, ?, ?)
		`, c.ID, c.DisplayName, c.XP, c.Avatar, c.StreakDays)
		if err != nil {
			return fmt.Errorf("failed to import competitor %s: %w", c.ID, err)
		}
	}
	return nil
}
