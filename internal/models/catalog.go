package models

// LevelThreshold maps an XP amount to a level number and title
type LevelThreshold struct {
	Level int
	XP    int
	Title string
}

// LevelThresholds is the static level table, ordered by strictly
// increasing XP
var LevelThresholds = []LevelThreshold{
	{Level: 1, XP: 0, Title: "Freshman"},
	{Level: 2, XP: 100, Title: "Sophomore"},
	{Level: 3, XP: 300, Title: "Junior"},
	{Level: 4, XP: 600, Title: "Senior"},
	{Level: 5, XP: 1000, Title: "Grad Student"},
	{Level: 6, XP: 1500, Title: "PhD Candidate"},
	{Level: 7, XP: 2200, Title: "Professor"},
	{Level: 8, XP: 3000, Title: "Dean"},
	{Level: 9, XP: 4000, Title: "Legend"},
}

// LevelForXP returns the highest threshold whose XP requirement is at or
// below xp
func LevelForXP(xp int) LevelThreshold {
	current := LevelThresholds[0]
	for _, t := range LevelThresholds {
		if xp >= t.XP {
			current = t
		}
	}
	return current
}

// ThresholdForLevel looks up the threshold entry for a level number
func ThresholdForLevel(level int) (LevelThreshold, bool) {
	for _, t := range LevelThresholds {
		if t.Level == level {
			return t, true
		}
	}
	return LevelThreshold{}, false
}

// NextThreshold returns the threshold after the given level, or false if the
// level is already the last one defined
func NextThreshold(level int) (LevelThreshold, bool) {
	return ThresholdForLevel(level + 1)
}

// StreakMilestone describes a streak length that unlocks a reward
type StreakMilestone struct {
	Days   int
	Reward string
}

// StreakMilestones is the static milestone ladder, ordered by days
var StreakMilestones = []StreakMilestone{
	{Days: 3, Reward: "Bronze Badge 🥉 + 100 XP"},
	{Days: 7, Reward: "Silver Badge 🥈 + 300 XP"},
	{Days: 14, Reward: "Gold Badge 🥇 + 1000 XP"},
	{Days: 30, Reward: "Diamond Badge 💎 + 5000 XP"},
	{Days: 100, Reward: "Titan Badge 🏆 + Lifetime Pro Status"},
}

// Quest is one entry in the fixed daily quest catalog
type Quest struct {
	ID         string
	Title      string
	XPReward   int
	Icon       string
	ActionType string
}

// QuestStatus pairs a catalog quest with one profile's completion flag
type QuestStatus struct {
	Quest
	Completed bool
}

// DailyQuests is the fixed daily quest catalog. Completion state lives on the
// profile, not here.
var DailyQuests = []Quest{
	{ID: "q_login", Title: "Daily Check-in", XPReward: 10, Icon: "📅", ActionType: "LOGIN"},
	{ID: "q_quiz", Title: "Complete a Quiz", XPReward: 50, Icon: "📝", ActionType: "QUIZ"},
	{ID: "q_task", Title: "Prioritize Tasks", XPReward: 30, Icon: "✅", ActionType: "TASK"},
	{ID: "q_finance", Title: "Track an Expense", XPReward: 25, Icon: "💰", ActionType: "EXPLORE"},
}

// QuestByID looks up a quest in the daily catalog
func QuestByID(id string) (Quest, bool) {
	for _, q := range DailyQuests {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}

// XP awards for actions reported by collaborating callers. The engine never
// decides why XP is granted; these are the amounts callers are expected to
// pass to AddXP.
const (
	XPAddTransaction   = 15
	XPCompleteMission  = 50
	XPGenerateRecipe   = 20
	XPFindProduct      = 10
	XPGenerateRoadmap  = 40
	XPMockInterview    = 30
	XPGenerateEmail    = 15
	XPGenerateOutline  = 25
	XPPolishNotes      = 20
	XPGetSocialTip     = 20
	XPReadResource     = 10
	XPSolveCodeProblem = 50
)
