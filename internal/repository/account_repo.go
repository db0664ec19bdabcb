package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"unilife/internal/database"
	"unilife/internal/models"
)

// AccountRepository handles database operations for accounts and their profiles
type AccountRepository struct {
	db *database.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccount inserts a new account with its initial profile
func (r *AccountRepository) CreateAccount(email, passwordHash string, profile models.Profile) (*models.Account, error) {
	query := `
		INSERT INTO accounts (
			email, password_hash, display_name, xp, level, level_title,
			streak_days, streak_freezes, last_active_date, badges,
			completed_quests, onboarded, quizzes_completed, correct_answers,
			tasks_organized, tools_discovered, coding_problems_solved
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		email, passwordHash, profile.DisplayName, profile.XP, profile.Level,
		profile.LevelTitle, profile.StreakDays, profile.StreakFreezes,
		profile.LastActiveDate, joinList(profile.Badges),
		joinList(profile.CompletedQuests), profile.Onboarded,
		profile.Stats.QuizzesCompleted, profile.Stats.CorrectAnswers,
		profile.Stats.TasksOrganized, profile.Stats.ToolsDiscovered,
		profile.Stats.CodingProblemsSolved,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	account := &models.Account{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Profile:      profile.Clone(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	return account, nil
}

// GetAccountByEmail retrieves an account by email address.
// Returns nil without error when no account matches.
func (r *AccountRepository) GetAccountByEmail(email string) (*models.Account, error) {
	query := accountSelectColumns + ` FROM accounts WHERE email = ?`
	account, err := scanAccount(r.db.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// SaveProfile writes the full profile back to the account's row
func (r *AccountRepository) SaveProfile(email string, profile models.Profile) error {
	query := `
		UPDATE accounts SET
			display_name = ?, xp = ?, level = ?, level_title = ?,
			streak_days = ?, streak_freezes = ?, last_active_date = ?,
			badges = ?, completed_quests = ?, onboarded = ?,
			quizzes_completed = ?, correct_answers = ?, tasks_organized = ?,
			tools_discovered = ?, coding_problems_solved = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE email = ?
	`
	result, err := r.db.Exec(query,
		profile.DisplayName, profile.XP, profile.Level, profile.LevelTitle,
		profile.StreakDays, profile.StreakFreezes, profile.LastActiveDate,
		joinList(profile.Badges), joinList(profile.CompletedQuests),
		profile.Onboarded, profile.Stats.QuizzesCompleted,
		profile.Stats.CorrectAnswers, profile.Stats.TasksOrganized,
		profile.Stats.ToolsDiscovered, profile.Stats.CodingProblemsSolved,
		email,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("no account registered for %s", email)
	}
	return nil
}

// DeleteAccount removes an account by email
func (r *AccountRepository) DeleteAccount(email string) error {
	if _, err := r.db.Exec(`DELETE FROM accounts WHERE email = ?`, email); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// GetAllAccounts retrieves every registered account, ordered by email
func (r *AccountRepository) GetAllAccounts() ([]models.Account, error) {
	query := accountSelectColumns + ` FROM accounts ORDER BY email`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

const accountSelectColumns = `
	SELECT id, email, password_hash, display_name, xp, level, level_title,
		streak_days, streak_freezes, last_active_date, badges,
		completed_quests, onboarded, quizzes_completed, correct_answers,
		tasks_organized, tools_discovered, coding_problems_solved,
		created_at, updated_at
`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAccount reads one account row into a model
func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	var badges, completedQuests string

	err := row.Scan(
		&account.ID, &account.Email, &account.PasswordHash,
		&account.Profile.DisplayName, &account.Profile.XP,
		&account.Profile.Level, &account.Profile.LevelTitle,
		&account.Profile.StreakDays, &account.Profile.StreakFreezes,
		&account.Profile.LastActiveDate, &badges, &completedQuests,
		&account.Profile.Onboarded, &account.Profile.Stats.QuizzesCompleted,
		&account.Profile.Stats.CorrectAnswers, &account.Profile.Stats.TasksOrganized,
		&account.Profile.Stats.ToolsDiscovered, &account.Profile.Stats.CodingProblemsSolved,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Profile.Badges = splitList(badges)
	account.Profile.CompletedQuests = splitList(completedQuests)
	return &account, nil
}

// joinList serializes a string list as comma-separated text
func joinList(items []string) string {
	return strings.Join(items, ",")
}

// splitList parses comma-separated text back into a list
func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
