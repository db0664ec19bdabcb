package repository

import (
	"fmt"

	"unilife/internal/database"
	"unilife/internal/models"
)

// CompetitorRepository handles database operations for synthetic
// leaderboard competitors
type CompetitorRepository struct {
	db *database.DB
}

// NewCompetitorRepository creates a new competitor repository
func NewCompetitorRepository(db *database.DB) *CompetitorRepository {
	return &CompetitorRepository{db: db}
}

// CreateCompetitor inserts a new synthetic competitor
func (r *CompetitorRepository) CreateCompetitor(c models.Competitor) error {
	query := `
		INSERT INTO competitors (id, display_name, xp, avatar, streak_days)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query, c.ID, c.DisplayName, c.XP, c.Avatar, c.StreakDays); err != nil {
		return fmt.Errorf("failed to create competitor: %w", err)
	}
	return nil
}

// GetAllCompetitors retrieves every competitor, ordered by identifier
func (r *CompetitorRepository) GetAllCompetitors() ([]models.Competitor, error) {
	query := `
		SELECT id, display_name, xp, avatar, streak_days, created_at, updated_at
		FROM competitors ORDER BY id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitors: %w", err)
	}
	defer rows.Close()

	var competitors []models.Competitor
	for rows.Next() {
		var c models.Competitor
		err := rows.Scan(&c.ID, &c.DisplayName, &c.XP, &c.Avatar, &c.StreakDays,
			&c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan competitor: %w", err)
		}
		competitors = append(competitors, c)
	}
	return competitors, rows.Err()
}

// UpdateCompetitorXP writes a competitor's new XP total
func (r *CompetitorRepository) UpdateCompetitorXP(id string, xp int) error {
	query := `UPDATE competitors SET xp = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.db.Exec(query, xp, id); err != nil {
		return fmt.Errorf("failed to update competitor %s: %w", id, err)
	}
	return nil
}

// CountCompetitors returns the number of stored competitors
func (r *CompetitorRepository) CountCompetitors() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM competitors`
	if err := r.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count competitors: %w", err)
	}
	return count, nil
}

// DeleteAllCompetitors clears the competitor list
func (r *CompetitorRepository) DeleteAllCompetitors() error {
	if _, err := r.db.Exec(`DELETE FROM competitors`); err != nil {
		return fmt.Errorf("failed to delete competitors: %w", err)
	}
	return nil
}
