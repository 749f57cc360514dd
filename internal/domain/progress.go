// Package domain holds the core types of the DuckTyper gamification engine.
// Progress is a single local user's record: XP, level, completed events,
// quests, badges, and daily activity streaks.
package domain

import "time"

// ─── Progress ───────────────────────────────────────────────────────────────

// UserProgress is the persisted record for one local user.
// Mutated only through the gamification service; level is always derived
// from XP, never set by callers.
type UserProgress struct {
	GitHubUsername    string         `json:"github_username"`
	XP                int            `json:"xp"`
	Level             int            `json:"level"`
	CompletedEventIDs []string       `json:"completed_event_ids"`
	CompletedQuestIDs []string       `json:"completed_quest_ids"`
	EarnedBadgeIDs    []string       `json:"earned_badge_ids"`
	CurrentStreak     int            `json:"current_streak"`
	LongestStreak     int            `json:"longest_streak"`
	LastActiveDate    string         `json:"last_active_date,omitempty"` // "2006-01-02" or ""
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// NewUserProgress returns a fresh record for a user with zero XP and level.
func NewUserProgress(githubUsername string) *UserProgress {
	return &UserProgress{
		GitHubUsername: githubUsername,
		Metadata:       map[string]any{},
	}
}

// HasCompletedEvent reports whether an event id was already applied.
func (p *UserProgress) HasCompletedEvent(id string) bool {
	return contains(p.CompletedEventIDs, id)
}

// HasCompletedQuest reports whether a quest id was already completed.
func (p *UserProgress) HasCompletedQuest(id string) bool {
	return contains(p.CompletedQuestIDs, id)
}

// HasEarnedBadge reports whether a badge id was already earned.
func (p *UserProgress) HasEarnedBadge(id string) bool {
	return contains(p.EarnedBadgeIDs, id)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ─── Events ─────────────────────────────────────────────────────────────────

// XPEvent is a single scored occurrence submitted to the engine.
// The ID is the idempotence key: an event id is awarded at most once.
type XPEvent struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Points   int            `json:"points"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// DayGuardID builds the synthetic id used to record "did this happen today".
// Format: "<action>-day-<ISO-8601 date>". The guard event carries zero points
// and exists purely as an idempotence marker.
func DayGuardID(action string, day time.Time) string {
	return action + "-day-" + day.UTC().Format("2006-01-02")
}

// ─── Catalog entries ────────────────────────────────────────────────────────

// Quest is a static catalog entry. The completion predicate lives with the
// producer (e.g. "PR merged"); the engine only records completion.
type Quest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RewardXP    int    `json:"reward_xp"`
	BadgeID     string `json:"badge_id,omitempty"` // "" if no linked badge
}

// Badge is a static catalog entry. Once earned, a badge is never revoked.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RequiredXP  int    `json:"required_xp"`
	Emoji       string `json:"emoji"`
}

// ─── Results ────────────────────────────────────────────────────────────────

// EventResult reports the outcome of applying a single XPEvent.
type EventResult struct {
	XPAdded int    `json:"xp_added"`
	Level   int    `json:"level"`
	LevelUp bool   `json:"level_up"`
	Message string `json:"message"`
}

// QuestResult aggregates the outcome of completing a quest (and anything it
// triggered: reward XP, linked badge).
type QuestResult struct {
	CompletedQuests []string `json:"completed_quests"`
	XPAdded         int      `json:"xp_added"`
	Level           int      `json:"level"`
	LevelUp         bool     `json:"level_up"`
	EarnedBadges    []string `json:"earned_badges"`
	Messages        []string `json:"messages"`
}

// Merge folds an EventResult into the quest result.
func (r *QuestResult) Merge(er EventResult) {
	r.XPAdded += er.XPAdded
	r.Level = er.Level
	r.LevelUp = r.LevelUp || er.LevelUp
	if er.Message != "" {
		r.Messages = append(r.Messages, er.Message)
	}
}

// MergeQuest folds another quest result into this one.
func (r *QuestResult) MergeQuest(other QuestResult) {
	r.CompletedQuests = append(r.CompletedQuests, other.CompletedQuests...)
	r.XPAdded += other.XPAdded
	if other.Level > r.Level {
		r.Level = other.Level
	}
	r.LevelUp = r.LevelUp || other.LevelUp
	r.EarnedBadges = append(r.EarnedBadges, other.EarnedBadges...)
	r.Messages = append(r.Messages, other.Messages...)
}

// BadgeResult reports a badge award.
type BadgeResult struct {
	BadgeID string `json:"badge_id"`
	Name    string `json:"name"`
	Emoji   string `json:"emoji"`
	Message string `json:"message"`
}

// UserQuestStatus splits the quest catalog by a user's progress.
type UserQuestStatus struct {
	Completed []Quest `json:"completed"`
	Available []Quest `json:"available"`
}

// JournalEntry is one applied event as recorded in the event journal.
type JournalEntry struct {
	EventID   string    `json:"event_id"`
	Label     string    `json:"label"`
	Points    int       `json:"points"`
	AppliedAt time.Time `json:"applied_at"`
}
