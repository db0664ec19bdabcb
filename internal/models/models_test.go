package models

import "testing"

func TestLevelThresholdsOrdered(t *testing.T) {
	for i := 1; i < len(LevelThresholds); i++ {
		prev := LevelThresholds[i-1]
		cur := LevelThresholds[i]
		if cur.XP <= prev.XP {
			t.Errorf("threshold XP not strictly increasing at level %d", cur.Level)
		}
		if cur.Level != prev.Level+1 {
			t.Errorf("level numbering gap between %d and %d", prev.Level, cur.Level)
		}
	}

	first := LevelThresholds[0]
	if first.Level != 1 || first.XP != 0 || first.Title != "Freshman" {
		t.Errorf("first threshold = %+v, want level 1 at 0 XP (Freshman)", first)
	}
	last := LevelThresholds[len(LevelThresholds)-1]
	if last.Level != 9 || last.XP != 4000 || last.Title != "Legend" {
		t.Errorf("last threshold = %+v, want level 9 at 4000 XP (Legend)", last)
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		name      string
		xp        int
		wantLevel int
		wantTitle string
	}{
		{"zero", 0, 1, "Freshman"},
		{"just below level 2", 99, 1, "Freshman"},
		{"exactly level 2", 100, 2, "Sophomore"},
		{"mid level 3", 350, 3, "Junior"},
		{"exactly level 9", 4000, 9, "Legend"},
		{"beyond table", 99999, 9, "Legend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LevelForXP(tt.xp)
			if got.Level != tt.wantLevel || got.Title != tt.wantTitle {
				t.Errorf("LevelForXP(%d) = %d %q, want %d %q",
					tt.xp, got.Level, got.Title, tt.wantLevel, tt.wantTitle)
			}
		})
	}
}

func TestNextThreshold(t *testing.T) {
	next, ok := NextThreshold(1)
	if !ok || next.Level != 2 || next.XP != 100 {
		t.Errorf("NextThreshold(1) = %+v %v, want level 2 at 100", next, ok)
	}

	if _, ok := NextThreshold(9); ok {
		t.Error("NextThreshold(9) ok = true, want false at max level")
	}
}

func TestStreakMilestonesOrdered(t *testing.T) {
	for i := 1; i < len(StreakMilestones); i++ {
		if StreakMilestones[i].Days <= StreakMilestones[i-1].Days {
			t.Errorf("milestone days not increasing at index %d", i)
		}
	}
}

func TestQuestByID(t *testing.T) {
	quest, ok := QuestByID("q_task")
	if !ok || quest.XPReward != 30 {
		t.Errorf("QuestByID(q_task) = %+v %v, want 30 XP reward", quest, ok)
	}

	if _, ok := QuestByID("q_missing"); ok {
		t.Error("QuestByID(q_missing) ok = true, want false")
	}
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile("2025-06-10")

	if p.DisplayName != "Student" || p.XP != 0 || p.Level != 1 {
		t.Errorf("default profile = %+v, want Student at level 1", p)
	}
	if p.StreakDays != 1 || p.StreakFreezes != 1 {
		t.Errorf("streak = %d freezes = %d, want 1/1", p.StreakDays, p.StreakFreezes)
	}
	if p.LastActiveDate != "2025-06-10" {
		t.Errorf("LastActiveDate = %q, want 2025-06-10", p.LastActiveDate)
	}
	if p.Badges == nil || p.CompletedQuests == nil {
		t.Error("default profile has nil slices")
	}
	if p.Onboarded {
		t.Error("default profile Onboarded = true, want false")
	}
}

func TestProfileClone(t *testing.T) {
	p := DefaultProfile("2025-06-10")
	p.CompletedQuests = []string{"q_login"}

	clone := p.Clone()
	clone.CompletedQuests[0] = "changed"
	clone.Badges = append(clone.Badges, "new")

	if p.CompletedQuests[0] != "q_login" {
		t.Error("mutating clone changed original CompletedQuests")
	}
	if len(p.Badges) != 0 {
		t.Error("mutating clone changed original Badges")
	}
}

func TestHasCompletedQuest(t *testing.T) {
	p := DefaultProfile("2025-06-10")
	p.CompletedQuests = []string{"q_login", "q_quiz"}

	if !p.HasCompletedQuest("q_quiz") {
		t.Error("HasCompletedQuest(q_quiz) = false, want true")
	}
	if p.HasCompletedQuest("q_task") {
		t.Error("HasCompletedQuest(q_task) = true, want false")
	}
}

func TestAddStat(t *testing.T) {
	var stats UserStats

	if !stats.AddStat(StatQuizzesCompleted, 2) {
		t.Fatal("AddStat() = false for known key")
	}
	if stats.QuizzesCompleted != 2 {
		t.Errorf("QuizzesCompleted = %d, want 2", stats.QuizzesCompleted)
	}

	// Negative deltas clamp at zero
	if !stats.AddStat(StatQuizzesCompleted, -10) {
		t.Fatal("AddStat() = false for known key")
	}
	if stats.QuizzesCompleted != 0 {
		t.Errorf("QuizzesCompleted = %d, want clamped at 0", stats.QuizzesCompleted)
	}

	if stats.AddStat(StatKey("unknown"), 1) {
		t.Error("AddStat() = true for unknown key")
	}
}
