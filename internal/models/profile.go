package models

// DateFormat is the calendar-day format used for streak bookkeeping
const DateFormat = "2006-01-02"

// MaxStreakFreezes caps the number of freezes a profile can hold
const MaxStreakFreezes = 3

// Profile is the mutable progression record owned by one account
type Profile struct {
	DisplayName     string
	XP              int
	Level           int
	LevelTitle      string
	StreakDays      int
	StreakFreezes   int
	LastActiveDate  string // YYYY-MM-DD
	Badges          []string
	CompletedQuests []string
	Onboarded       bool
	Stats           UserStats
}

// UserStats holds additive activity counters for a profile
type UserStats struct {
	QuizzesCompleted     int
	CorrectAnswers       int
	TasksOrganized       int
	ToolsDiscovered      int
	CodingProblemsSolved int
}

// StatKey names one of the counters in UserStats
type StatKey string

const (
	StatQuizzesCompleted     StatKey = "quizzes_completed"
	StatCorrectAnswers       StatKey = "correct_answers"
	StatTasksOrganized       StatKey = "tasks_organized"
	StatToolsDiscovered      StatKey = "tools_discovered"
	StatCodingProblemsSolved StatKey = "coding_problems_solved"
)

// DefaultProfile returns the profile used for brand-new accounts and for the
// unauthenticated state. New accounts start at level 1 with a single streak
// freeze banked.
func DefaultProfile(lastActiveDate string) Profile {
	return Profile{
		DisplayName:     "Student",
		XP:              0,
		Level:           1,
		LevelTitle:      LevelThresholds[0].Title,
		StreakDays:      1,
		StreakFreezes:   1,
		LastActiveDate:  lastActiveDate,
		Badges:          []string{},
		CompletedQuests: []string{},
		Onboarded:       false,
		Stats:           UserStats{},
	}
}

// Clone returns a deep copy of the profile, safe to hand to callers
func (p Profile) Clone() Profile {
	out := p
	out.Badges = append([]string(nil), p.Badges...)
	out.CompletedQuests = append([]string(nil), p.CompletedQuests...)
	return out
}

// HasCompletedQuest reports whether the quest was completed today
func (p *Profile) HasCompletedQuest(questID string) bool {
	for _, id := range p.CompletedQuests {
		if id == questID {
			return true
		}
	}
	return false
}

// AddStat adds delta to the named counter, clamping at zero.
// Returns false if the key is unknown.
func (s *UserStats) AddStat(key StatKey, delta int) bool {
	var target *int
	switch key {
	case StatQuizzesCompleted:
		target = &s.QuizzesCompleted
	case StatCorrectAnswers:
		target = &s.CorrectAnswers
	case StatTasksOrganized:
		target = &s.TasksOrganized
	case StatToolsDiscovered:
		target = &s.ToolsDiscovered
	case StatCodingProblemsSolved:
		target = &s.CodingProblemsSolved
	default:
		return false
	}
	*target += delta
	if *target < 0 {
		*target = 0
	}
	return true
}
