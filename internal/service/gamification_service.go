package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"unilife/internal/models"
	"unilife/internal/security"
	"unilife/internal/validation"
)

var (
	ErrDuplicateAccount   = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPersistence        = errors.New("persistence failure")
)

// freezeGrantThreshold gates the probabilistic freeze award in AddXP:
// rolls above it (roughly 30% of rolls) grant a freeze.
const freezeGrantThreshold = 0.7

// driftThreshold gates competitor drift: rolls above it (roughly 70% of
// rolls) let a competitor gain XP alongside the user.
const driftThreshold = 0.3

// AccountStore is the durable registry of accounts
type AccountStore interface {
	CreateAccount(email, passwordHash string, profile models.Profile) (*models.Account, error)
	GetAccountByEmail(email string) (*models.Account, error)
	SaveProfile(email string, profile models.Profile) error
	DeleteAccount(email string) error
}

// SessionStore holds the single active session record
type SessionStore interface {
	GetActiveSession() (string, error)
	SetActiveSession(token string) error
	ClearActiveSession() error
}

// CompetitorStore is the durable list of synthetic leaderboard competitors
type CompetitorStore interface {
	GetAllCompetitors() ([]models.Competitor, error)
	UpdateCompetitorXP(id string, xp int) error
}

// Subscriber receives a profile snapshot after every persisted change
type Subscriber func(models.Profile)

// Option configures a GamificationService
type Option func(*GamificationService)

// WithClock replaces the time source, letting tests control the calendar day
func WithClock(now func() time.Time) Option {
	return func(s *GamificationService) {
		s.now = now
	}
}

// WithRandomSource replaces the random source used for freeze grants and
// competitor drift, letting tests force either branch
func WithRandomSource(roll func() float64) Option {
	return func(s *GamificationService) {
		s.roll = roll
	}
}

// GamificationService is the client-side progression engine: accounts,
// sessions, XP/levels, streaks with freezes, daily quests, stats, and the
// simulated leaderboard. All operations are synchronous; mutations persist
// before notifying subscribers.
type GamificationService struct {
	accounts    AccountStore
	sessions    SessionStore
	competitors CompetitorStore
	secret      string

	now  func() time.Time
	roll func() float64

	currentEmail string
	profile      models.Profile

	mu          sync.Mutex
	subscribers map[int]Subscriber
	nextSubID   int
}

// NewGamificationService creates the engine and restores a previously
// persisted session if its token is still valid
func NewGamificationService(accounts AccountStore, sessions SessionStore, competitors CompetitorStore, secret string, opts ...Option) *GamificationService {
	s := &GamificationService{
		accounts:    accounts,
		sessions:    sessions,
		competitors: competitors,
		secret:      secret,
		now:         time.Now,
		roll:        rand.Float64,
		subscribers: make(map[int]Subscriber),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.profile = models.DefaultProfile(s.today())
	s.restoreSession()

	return s
}

// restoreSession adopts the account named by the stored session token.
// Invalid or stale tokens are discarded.
func (s *GamificationService) restoreSession() {
	token, err := s.sessions.GetActiveSession()
	if err != nil {
		log.Printf("Warning: failed to read session record: %v", err)
		return
	}
	if token == "" {
		return
	}

	email, err := security.ParseSessionToken(s.secret, token)
	if err != nil {
		log.Printf("Warning: discarding invalid session token: %v", err)
		_ = s.sessions.ClearActiveSession()
		return
	}

	account, err := s.accounts.GetAccountByEmail(email)
	if err != nil || account == nil {
		_ = s.sessions.ClearActiveSession()
		return
	}

	s.currentEmail = account.Email
	s.profile = normalizeProfile(account.Profile)
}

// IsAuthenticated reports whether a session is active
func (s *GamificationService) IsAuthenticated() bool {
	return s.currentEmail != ""
}

// SignUp registers a new account and immediately establishes a session for
// it. Fails with ErrDuplicateAccount if the email is already registered.
func (s *GamificationService) SignUp(displayName, email, password string) error {
	if err := validation.ValidateDisplayName(displayName); err != nil {
		return err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	existing, err := s.accounts.GetAccountByEmail(email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return ErrDuplicateAccount
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	profile := models.DefaultProfile(s.today())
	profile.DisplayName = displayName
	profile.Onboarded = true

	if _, err := s.accounts.CreateAccount(email, passwordHash, profile); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.establishSession(email, profile); err != nil {
		// Undo the half-finished signup so a retry is not rejected as a
		// duplicate
		if delErr := s.accounts.DeleteAccount(email); delErr != nil {
			log.Printf("Warning: failed to remove account after session setup failure: %v", delErr)
		}
		return err
	}
	return nil
}

// LogIn authenticates an account and establishes a session. The error never
// discloses whether the email exists.
func (s *GamificationService) LogIn(email, password string) error {
	account, err := s.accounts.GetAccountByEmail(email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if account == nil || !security.CheckPassword(password, account.PasswordHash) {
		return ErrInvalidCredentials
	}

	return s.establishSession(account.Email, account.Profile)
}

// establishSession records the session, runs the streak transition once,
// and notifies subscribers
func (s *GamificationService) establishSession(email string, profile models.Profile) error {
	token, err := security.SignSessionToken(s.secret, email, s.now())
	if err != nil {
		return err
	}
	if err := s.sessions.SetActiveSession(token); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.currentEmail = email
	s.profile = normalizeProfile(profile)

	if _, err := s.rollDay(); err != nil {
		return err
	}

	s.notify()
	return nil
}

// LogOut clears the active session. The engine reverts to the default
// unauthenticated profile.
func (s *GamificationService) LogOut() error {
	s.currentEmail = ""
	s.profile = models.DefaultProfile(s.today())

	if err := s.sessions.ClearActiveSession(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.notify()
	return nil
}

// Profile returns a snapshot of the active profile, or the default profile
// when unauthenticated
func (s *GamificationService) Profile() models.Profile {
	return s.profile.Clone()
}

// CheckStreak runs the streak transition for the current calendar day and
// reports whether the streak count strictly increased
func (s *GamificationService) CheckStreak() (bool, error) {
	if !s.IsAuthenticated() {
		return false, nil
	}
	return s.rollDay()
}

// rollDay applies the once-per-day streak transition: consecutive days extend
// the streak, a gap consumes a freeze if one is banked and resets otherwise.
// Daily quests reset whenever the date advances.
func (s *GamificationService) rollDay() (bool, error) {
	today := s.today()
	if s.profile.LastActiveDate == today {
		return false, nil
	}

	yesterday := s.now().AddDate(0, 0, -1).Format(models.DateFormat)
	increased := false

	switch {
	case s.profile.LastActiveDate == yesterday:
		s.profile.StreakDays++
		increased = true
	case s.profile.StreakFreezes > 0:
		// Freeze consumed, streak preserved
		s.profile.StreakFreezes--
	default:
		s.profile.StreakDays = 1
	}

	s.profile.CompletedQuests = []string{}
	s.profile.LastActiveDate = today

	if err := s.persist(); err != nil {
		return increased, err
	}
	s.notify()
	return increased, nil
}

// AddXP grants XP to the active profile, re-evaluating the level against the
// full threshold table, possibly awarding a streak freeze, and driving
// competitor drift. Silent no-op when unauthenticated or amount is not
// positive.
func (s *GamificationService) AddXP(amount int) error {
	if !s.IsAuthenticated() || amount <= 0 {
		return nil
	}

	if _, err := s.rollDay(); err != nil {
		return err
	}

	s.profile.XP += amount

	// Full-table scan so a single large grant can jump several levels
	threshold := models.LevelForXP(s.profile.XP)
	if threshold.Level > s.profile.Level {
		s.profile.Level = threshold.Level
		s.profile.LevelTitle = threshold.Title
	}

	// Activity occasionally banks a freeze
	if s.profile.StreakFreezes < models.MaxStreakFreezes && s.roll() > freezeGrantThreshold {
		s.profile.StreakFreezes++
	}

	if err := s.persist(); err != nil {
		return err
	}

	// Drift only once the user's own gain is durable, so a failed save
	// never leaves competitors ahead of a grant that was lost
	if err := s.driftCompetitors(amount); err != nil {
		log.Printf("Warning: competitor drift not persisted: %v", err)
	}

	s.notify()
	return nil
}

// driftCompetitors gives each competitor a chance to gain XP scaled off the
// user's gain, so the leaderboard never goes static. Competitors never lose
// XP.
func (s *GamificationService) driftCompetitors(amount int) error {
	competitors, err := s.competitors.GetAllCompetitors()
	if err != nil {
		return err
	}

	for _, c := range competitors {
		if s.roll() <= driftThreshold {
			continue
		}
		variance := s.roll() + 0.5 // 0.5x to 1.5x
		gain := int(float64(amount) * variance)
		if gain <= 0 {
			continue
		}
		if err := s.competitors.UpdateCompetitorXP(c.ID, c.XP+gain); err != nil {
			return err
		}
	}
	return nil
}

// CompleteQuest marks a daily quest complete, grants its XP, and banks one
// guaranteed freeze. Silent no-op for unknown or already-completed quests.
func (s *GamificationService) CompleteQuest(questID string) error {
	if !s.IsAuthenticated() {
		return nil
	}

	if _, err := s.rollDay(); err != nil {
		return err
	}

	quest, ok := models.QuestByID(questID)
	if !ok {
		return nil
	}
	if s.profile.HasCompletedQuest(questID) {
		return nil
	}

	s.profile.CompletedQuests = append(s.profile.CompletedQuests, questID)

	// Quest completion is a guaranteed freeze source, unlike the
	// probabilistic grant in AddXP
	if s.profile.StreakFreezes < models.MaxStreakFreezes {
		s.profile.StreakFreezes++
	}

	return s.AddXP(quest.XPReward)
}

// UpdateStat adds delta to one of the profile's activity counters. It grants
// no XP; callers award XP separately.
func (s *GamificationService) UpdateStat(key models.StatKey, delta int) error {
	if !s.IsAuthenticated() {
		return nil
	}

	if _, err := s.rollDay(); err != nil {
		return err
	}

	if !s.profile.Stats.AddStat(key, delta) {
		return nil
	}

	if err := s.persist(); err != nil {
		return err
	}
	s.notify()
	return nil
}

// DailyQuests returns the quest catalog annotated with the active profile's
// completion flags
func (s *GamificationService) DailyQuests() []models.QuestStatus {
	out := make([]models.QuestStatus, 0, len(models.DailyQuests))
	for _, q := range models.DailyQuests {
		out = append(out, models.QuestStatus{
			Quest:     q,
			Completed: s.profile.HasCompletedQuest(q.ID),
		})
	}
	return out
}

// Leaderboard returns all competitors plus the current user, sorted by XP
// descending with identifier as the tie-break. Returns nil when
// unauthenticated.
func (s *GamificationService) Leaderboard() ([]models.LeaderboardEntry, error) {
	if !s.IsAuthenticated() {
		return nil, nil
	}

	competitors, err := s.competitors.GetAllCompetitors()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(competitors)+1)
	for _, c := range competitors {
		entries = append(entries, models.LeaderboardEntry{
			ID:          c.ID,
			DisplayName: c.DisplayName,
			XP:          c.XP,
			Avatar:      c.Avatar,
			StreakDays:  c.StreakDays,
		})
	}

	entries = append(entries, models.LeaderboardEntry{
		ID:            s.currentEmail,
		DisplayName:   s.profile.DisplayName,
		XP:            s.profile.XP,
		Avatar:        "🎓",
		StreakDays:    s.profile.StreakDays,
		IsCurrentUser: true,
	})

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].XP != entries[j].XP {
			return entries[i].XP > entries[j].XP
		}
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

// LevelProgress returns the percentage of the way from the current level's
// threshold to the next, 100 at the max defined level
func (s *GamificationService) LevelProgress() float64 {
	current, ok := models.ThresholdForLevel(s.profile.Level)
	if !ok {
		current = models.LevelThresholds[0]
	}
	next, ok := models.NextThreshold(s.profile.Level)
	if !ok {
		return 100
	}

	progress := float64(s.profile.XP-current.XP) / float64(next.XP-current.XP) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// NextLevelXP returns the XP still needed to reach the next level, 0 when
// already at the max defined level
func (s *GamificationService) NextLevelXP() int {
	next, ok := models.NextThreshold(s.profile.Level)
	if !ok {
		return 0
	}
	remaining := next.XP - s.profile.XP
	if remaining < 0 {
		return 0
	}
	return remaining
}

// StreakInfo summarizes progress toward the next streak milestone
func (s *GamificationService) StreakInfo() models.StreakInfo {
	current := s.profile.StreakDays
	last := models.StreakMilestones[len(models.StreakMilestones)-1]

	if current >= last.Days {
		return models.StreakInfo{
			Current:  current,
			Target:   current,
			Reward:   "Max Streak Rewards Unlocked!",
			Progress: 100,
		}
	}

	next := last
	for _, m := range models.StreakMilestones {
		if m.Days > current {
			next = m
			break
		}
	}

	progress := float64(current) / float64(next.Days) * 100
	if progress > 100 {
		progress = 100
	}

	return models.StreakInfo{
		Current:  current,
		Target:   next.Days,
		Reward:   next.Reward,
		Progress: progress,
	}
}

// Subscribe registers a callback invoked synchronously with a profile
// snapshot after every persisted change. The returned function removes the
// subscription and is safe to call from inside the callback itself.
func (s *GamificationService) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// notify delivers the current profile snapshot to every subscriber.
// Iteration runs over a copy so callbacks may unsubscribe mid-delivery.
func (s *GamificationService) notify() {
	s.mu.Lock()
	callbacks := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	snapshot := s.profile.Clone()
	for _, fn := range callbacks {
		fn(snapshot)
	}
}

// persist writes the active profile back to its account record
func (s *GamificationService) persist() error {
	if s.currentEmail == "" {
		return nil
	}
	if err := s.accounts.SaveProfile(s.currentEmail, s.profile); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// today formats the engine's current calendar day
func (s *GamificationService) today() string {
	return s.now().Format(models.DateFormat)
}

// normalizeProfile repairs profiles persisted by older versions: nil slices
// become empty and freeze counts are clamped into range
func normalizeProfile(p models.Profile) models.Profile {
	out := p.Clone()
	if out.Badges == nil {
		out.Badges = []string{}
	}
	if out.CompletedQuests == nil {
		out.CompletedQuests = []string{}
	}
	if out.StreakFreezes < 0 {
		out.StreakFreezes = 0
	}
	if out.StreakFreezes > models.MaxStreakFreezes {
		out.StreakFreezes = models.MaxStreakFreezes
	}
	if out.Level < 1 {
		out.Level = 1
		out.LevelTitle = models.LevelThresholds[0].Title
	}
	return out
}
