package models

import "time"

// Competitor is a synthetic leaderboard account. Competitors are persisted
// independently of real accounts and only ever gain XP.
type Competitor struct {
	ID          string
	DisplayName string
	XP          int
	Avatar      string
	StreakDays  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LeaderboardEntry is one row of the leaderboard as handed to callers
type LeaderboardEntry struct {
	ID            string
	DisplayName   string
	XP            int
	Avatar        string
	StreakDays    int
	IsCurrentUser bool
}

// StreakInfo summarizes streak progress toward the next milestone
type StreakInfo struct {
	Current  int
	Target   int
	Reward   string
	Progress float64 // 0-100
}
