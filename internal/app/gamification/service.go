// Package gamification implements the DuckTyper engagement engine:
// XP events, levels, quests, badges, and daily streaks.
// Design rule: every mutation is idempotent and level is always derived
// from XP. Real value, not dark patterns.
package gamification

import (
	"fmt"
	"log"
	"time"

	"github.com/quackverse/ducktyper/internal/domain"
	"github.com/quackverse/ducktyper/internal/infra/catalog"
	"github.com/quackverse/ducktyper/internal/infra/metrics"
)

// Store persists the user progress record.
type Store interface {
	Load() (*domain.UserProgress, error)
	Save(progress *domain.UserProgress) error
}

// Journal records applied events for history. Optional; failures are
// logged and never block the engine.
type Journal interface {
	Append(event domain.XPEvent, at time.Time) error
}

// Service is the gamification engine. It owns the in-memory progress
// record for the duration of one process invocation and writes it back
// through the injected store after every mutation.
//
// Known limitation: a failed save is logged and the in-memory change
// stands, so durability is at-least-once with respect to the caller's
// view. Single local user, no locking discipline.
type Service struct {
	store    Store
	journal  Journal
	progress *domain.UserProgress
	now      func() time.Time
}

// NewService loads (or creates) the progress record and returns the engine.
func NewService(store Store, githubUsername string) (*Service, error) {
	progress, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if progress == nil {
		progress = domain.NewUserProgress(githubUsername)
	}
	if progress.GitHubUsername == "" {
		progress.GitHubUsername = githubUsername
	}
	if progress.Metadata == nil {
		progress.Metadata = map[string]any{}
	}
	// Re-derive level in case the file was edited by hand
	progress.Level = LevelForXP(progress.XP)

	s := &Service{store: store, progress: progress, now: time.Now}
	metrics.SetProgress(progress.XP, progress.Level)
	return s, nil
}

// SetJournal attaches an event journal.
func (s *Service) SetJournal(j Journal) { s.journal = j }

// SetClock overrides the engine clock (tests only).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Progress returns the current in-memory record.
func (s *Service) Progress() *domain.UserProgress { return s.progress }

// ─── Event application ──────────────────────────────────────────────────────

// HandleEvent applies a single XP event.
// An event id is awarded at most once; re-applying is a zero-XP no-op.
func (s *Service) HandleEvent(event domain.XPEvent) domain.EventResult {
	if event.ID == "" {
		log.Printf("[gamification] WARNING: dropping event %q: %v", event.Label, domain.ErrEmptyEventID)
		return domain.EventResult{Level: s.progress.Level, Message: "Event has no id"}
	}
	if event.Points < 0 {
		log.Printf("[gamification] WARNING: dropping event %s: %v (%d)", event.ID, domain.ErrNegativePoints, event.Points)
		return domain.EventResult{Level: s.progress.Level, Message: "Event has negative points"}
	}

	if s.progress.HasCompletedEvent(event.ID) {
		metrics.EventsDuplicate.Inc()
		return domain.EventResult{
			XPAdded: 0,
			Level:   s.progress.Level,
			LevelUp: false,
			Message: "Event already recorded",
		}
	}

	oldLevel := s.progress.Level
	s.progress.CompletedEventIDs = append(s.progress.CompletedEventIDs, event.ID)
	s.progress.XP += event.Points
	s.progress.Level = LevelForXP(s.progress.XP)
	levelUp := s.progress.Level > oldLevel

	metrics.EventsApplied.Inc()
	metrics.XPAwarded.Add(float64(event.Points))
	metrics.SetProgress(s.progress.XP, s.progress.Level)

	s.appendJournal(event)
	s.persist()

	msg := fmt.Sprintf("+%d XP — %s", event.Points, event.Label)
	if levelUp {
		msg += fmt.Sprintf(" · Level up! You reached level %d", s.progress.Level)
	}
	return domain.EventResult{
		XPAdded: event.Points,
		Level:   s.progress.Level,
		LevelUp: levelUp,
		Message: msg,
	}
}

// ─── Quest completion ───────────────────────────────────────────────────────

// CompleteQuest records a quest as completed, applies its reward XP and
// awards its linked badge if the XP threshold is met.
// Unknown quest ids and already-completed quests are no-ops.
func (s *Service) CompleteQuest(questID string) domain.QuestResult {
	quest := catalog.GetQuest(questID)
	if quest == nil {
		log.Printf("[gamification] WARNING: unknown quest id %q", questID)
		return domain.QuestResult{Level: s.progress.Level}
	}
	if s.progress.HasCompletedQuest(questID) {
		return domain.QuestResult{Level: s.progress.Level}
	}

	s.progress.CompletedQuestIDs = append(s.progress.CompletedQuestIDs, questID)
	metrics.QuestsCompleted.Inc()

	result := domain.QuestResult{
		CompletedQuests: []string{questID},
		Level:           s.progress.Level,
		Messages:        []string{fmt.Sprintf("Quest complete: %s", quest.Name)},
	}

	if quest.RewardXP > 0 {
		// Reward rides through HandleEvent so it shares the idempotence
		// and persistence path.
		er := s.HandleEvent(domain.XPEvent{
			ID:     "quest-" + questID,
			Label:  fmt.Sprintf("Quest reward: %s", quest.Name),
			Points: quest.RewardXP,
		})
		result.Merge(er)
	} else {
		s.persist()
	}

	if quest.BadgeID != "" && !s.progress.HasEarnedBadge(quest.BadgeID) {
		if badge := catalog.GetBadge(quest.BadgeID); badge != nil && s.progress.XP >= badge.RequiredXP {
			br := s.AwardBadge(quest.BadgeID)
			if br.BadgeID != "" {
				result.EarnedBadges = append(result.EarnedBadges, br.BadgeID)
				result.Messages = append(result.Messages, br.Message)
			}
		}
	}

	return result
}

// ─── Badge award ────────────────────────────────────────────────────────────

// AwardBadge grants a badge. Already-earned and unknown badges are no-ops.
// Badges are never revoked — XP is monotonic, so a met threshold stays met.
func (s *Service) AwardBadge(badgeID string) domain.BadgeResult {
	if s.progress.HasEarnedBadge(badgeID) {
		return domain.BadgeResult{}
	}
	badge := catalog.GetBadge(badgeID)
	if badge == nil {
		log.Printf("[gamification] WARNING: unknown badge id %q", badgeID)
		return domain.BadgeResult{}
	}

	s.progress.EarnedBadgeIDs = append(s.progress.EarnedBadgeIDs, badgeID)
	metrics.BadgesEarned.Inc()
	s.persist()

	return domain.BadgeResult{
		BadgeID: badge.ID,
		Name:    badge.Name,
		Emoji:   badge.Emoji,
		Message: fmt.Sprintf("%s Badge earned: %s — %s", badge.Emoji, badge.Name, badge.Description),
	}
}

// CheckXPBadges awards any XP-milestone badge whose threshold is now met.
// Quest-linked badges are excluded — those are granted by their quest.
func (s *Service) CheckXPBadges() []domain.BadgeResult {
	linked := make(map[string]bool)
	for _, q := range catalog.Quests {
		if q.BadgeID != "" {
			linked[q.BadgeID] = true
		}
	}

	var awarded []domain.BadgeResult
	for _, badge := range catalog.Badges {
		if linked[badge.ID] || s.progress.HasEarnedBadge(badge.ID) {
			continue
		}
		if s.progress.XP >= badge.RequiredXP {
			if br := s.AwardBadge(badge.ID); br.BadgeID != "" {
				awarded = append(awarded, br)
			}
		}
	}
	return awarded
}

// ─── Streaks ────────────────────────────────────────────────────────────────

// RecordActivity counts the given day toward the daily streak.
// At most one update per calendar day.
func (s *Service) RecordActivity(day time.Time) {
	if recordActivity(s.progress, day) {
		s.persist()
	}
}

// ─── Internal ───────────────────────────────────────────────────────────────

// persist writes the progress record through the store.
// Failures are logged, not propagated: the in-memory change stands.
func (s *Service) persist() {
	if err := s.store.Save(s.progress); err != nil {
		metrics.SaveFailures.Inc()
		log.Printf("[gamification] ERROR: save progress: %v", err)
	}
}

// appendJournal records the event in the history journal, if attached.
func (s *Service) appendJournal(event domain.XPEvent) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Append(event, s.now()); err != nil {
		log.Printf("[gamification] WARNING: journal append: %v", err)
	}
}
