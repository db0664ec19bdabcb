package repository

import (
	"database/sql"
	"fmt"

	"unilife/internal/database"
)

// activeSessionKey is the settings key holding the signed session token
const activeSessionKey = "active_session"

// SessionRepository stores the single active session record in the
// settings table. An absent record means logged out.
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetSetting retrieves a setting value by key.
// Returns an empty string without error when the key is absent.
func (r *SessionRepository) GetSetting(key string) (string, error) {
	var value string
	query := `SELECT setting_value FROM settings WHERE setting_key = ?`
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting updates or inserts a setting
func (r *SessionRepository) SetSetting(key, value string) error {
	query := r.db.Dialect.UpsertSetting()
	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// DeleteSetting removes a setting if present
func (r *SessionRepository) DeleteSetting(key string) error {
	query := `DELETE FROM settings WHERE setting_key = ?`
	if _, err := r.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// GetActiveSession returns the stored session token, or "" when logged out
func (r *SessionRepository) GetActiveSession() (string, error) {
	return r.GetSetting(activeSessionKey)
}

// SetActiveSession stores the session token for the logged-in account
func (r *SessionRepository) SetActiveSession(token string) error {
	return r.SetSetting(activeSessionKey, token)
}

// ClearActiveSession removes the session record
func (r *SessionRepository) ClearActiveSession() error {
	return r.DeleteSetting(activeSessionKey)
}
