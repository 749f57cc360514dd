package gamification_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quackverse/ducktyper/internal/app/gamification"
	"github.com/quackverse/ducktyper/internal/domain"
	"github.com/quackverse/ducktyper/internal/infra/store"
)

// testService creates an engine backed by a temp-dir JSON store.
func testService(t *testing.T) *gamification.Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ducktyper_user.json")
	svc, err := gamification.NewService(store.New(path), "quackduck")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

// fixedClock pins the engine to a single instant.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ═══════════════════════════════════════════════════════════════════════════
// Event Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestHandleEvent_AwardsXP(t *testing.T) {
	svc := testService(t)

	result := svc.HandleEvent(domain.XPEvent{ID: "e1", Label: "First event", Points: 100})

	if result.XPAdded != 100 {
		t.Errorf("expected 100 XP added, got %d", result.XPAdded)
	}
	if svc.Progress().XP != 100 {
		t.Errorf("expected 100 XP total, got %d", svc.Progress().XP)
	}
	if result.Level != 1 {
		t.Errorf("expected level 1 at 100 XP, got %d", result.Level)
	}
	if !result.LevelUp {
		t.Error("expected level up from 0 to 1")
	}
}

func TestHandleEvent_Idempotent(t *testing.T) {
	svc := testService(t)

	svc.HandleEvent(domain.XPEvent{ID: "e1", Label: "First event", Points: 100})
	second := svc.HandleEvent(domain.XPEvent{ID: "e1", Label: "First event", Points: 100})

	if second.XPAdded != 0 {
		t.Errorf("expected 0 XP on re-apply, got %d", second.XPAdded)
	}
	if second.Message != "Event already recorded" {
		t.Errorf("unexpected message: %q", second.Message)
	}
	if svc.Progress().XP != 100 {
		t.Errorf("expected XP unchanged at 100, got %d", svc.Progress().XP)
	}
	if len(svc.Progress().CompletedEventIDs) != 1 {
		t.Errorf("expected 1 recorded event id, got %d", len(svc.Progress().CompletedEventIDs))
	}
}

func TestHandleEvent_Monotonic(t *testing.T) {
	svc := testService(t)

	events := []domain.XPEvent{
		{ID: "a", Label: "a", Points: 30},
		{ID: "b", Label: "b", Points: 0},
		{ID: "a", Label: "a again", Points: 30}, // duplicate
		{ID: "c", Label: "c", Points: 250},
		{ID: "d", Label: "d", Points: 7},
	}

	prevXP, prevLevel := 0, 0
	for _, ev := range events {
		svc.HandleEvent(ev)
		p := svc.Progress()
		if p.XP < prevXP {
			t.Errorf("XP decreased: %d -> %d", prevXP, p.XP)
		}
		if p.Level < prevLevel {
			t.Errorf("level decreased: %d -> %d", prevLevel, p.Level)
		}
		if p.Level != gamification.LevelForXP(p.XP) {
			t.Errorf("level %d inconsistent with XP %d", p.Level, p.XP)
		}
		prevXP, prevLevel = p.XP, p.Level
	}

	if svc.Progress().XP != 287 {
		t.Errorf("expected 287 XP total, got %d", svc.Progress().XP)
	}
}

func TestHandleEvent_ZeroPoints(t *testing.T) {
	svc := testService(t)

	result := svc.HandleEvent(domain.XPEvent{ID: "guard", Label: "Day guard", Points: 0})
	if result.XPAdded != 0 {
		t.Errorf("expected 0 XP, got %d", result.XPAdded)
	}
	if !svc.Progress().HasCompletedEvent("guard") {
		t.Error("zero-point event should still be recorded")
	}
}

func TestHandleEvent_RejectsInvalid(t *testing.T) {
	svc := testService(t)

	svc.HandleEvent(domain.XPEvent{ID: "", Label: "no id", Points: 5})
	svc.HandleEvent(domain.XPEvent{ID: "neg", Label: "negative", Points: -5})

	p := svc.Progress()
	if p.XP != 0 {
		t.Errorf("expected 0 XP, got %d", p.XP)
	}
	if len(p.CompletedEventIDs) != 0 {
		t.Errorf("expected no recorded events, got %v", p.CompletedEventIDs)
	}
}

// failStore always fails to save.
type failStore struct{}

func (failStore) Load() (*domain.UserProgress, error) { return nil, nil }
func (failStore) Save(*domain.UserProgress) error     { return errors.New("disk full") }

func TestHandleEvent_SaveFailureKeepsState(t *testing.T) {
	svc, err := gamification.NewService(failStore{}, "quackduck")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result := svc.HandleEvent(domain.XPEvent{ID: "e1", Label: "event", Points: 50})

	// Save failed, but the in-memory change stands
	if result.XPAdded != 50 {
		t.Errorf("expected 50 XP added despite save failure, got %d", result.XPAdded)
	}
	if svc.Progress().XP != 50 {
		t.Errorf("expected in-memory XP 50, got %d", svc.Progress().XP)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Quest Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestCompleteQuest_StarQuackcore(t *testing.T) {
	svc := testService(t)

	result := svc.CompleteQuest("star-quackcore")

	if len(result.CompletedQuests) != 1 || result.CompletedQuests[0] != "star-quackcore" {
		t.Errorf("unexpected completed quests: %v", result.CompletedQuests)
	}
	if result.XPAdded != 10 {
		t.Errorf("expected 10 reward XP, got %d", result.XPAdded)
	}
	if !svc.Progress().HasCompletedQuest("star-quackcore") {
		t.Error("quest id not recorded")
	}
	// Reward XP (10) meets the badge threshold (10)
	if !svc.Progress().HasEarnedBadge("github-collaborator") {
		t.Error("expected github-collaborator badge")
	}
	if len(result.EarnedBadges) != 1 || result.EarnedBadges[0] != "github-collaborator" {
		t.Errorf("expected badge in result, got %v", result.EarnedBadges)
	}
	if len(result.Messages) < 2 {
		t.Errorf("expected quest + badge messages, got %v", result.Messages)
	}
}

func TestCompleteQuest_Idempotent(t *testing.T) {
	svc := testService(t)

	first := svc.CompleteQuest("star-quackcore")
	second := svc.CompleteQuest("star-quackcore")

	if second.XPAdded != 0 {
		t.Errorf("expected 0 XP on repeat, got %d", second.XPAdded)
	}
	if len(second.CompletedQuests) != 0 {
		t.Errorf("expected no quests on repeat, got %v", second.CompletedQuests)
	}
	if svc.Progress().XP != first.XPAdded {
		t.Errorf("expected XP unchanged at %d, got %d", first.XPAdded, svc.Progress().XP)
	}
	// Strict set union: same single entry
	count := 0
	for _, id := range svc.Progress().CompletedQuestIDs {
		if id == "star-quackcore" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("quest id recorded %d times", count)
	}
}

func TestCompleteQuest_Unknown(t *testing.T) {
	svc := testService(t)

	result := svc.CompleteQuest("no-such-quest")

	if len(result.CompletedQuests) != 0 || result.XPAdded != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if len(svc.Progress().CompletedQuestIDs) != 0 {
		t.Error("unknown quest must not be recorded")
	}
}

func TestCompleteQuest_RewardSharesEventPath(t *testing.T) {
	svc := testService(t)

	// Pre-apply the synthetic reward event id — the quest reward must
	// then be a no-op (shared idempotence path).
	svc.HandleEvent(domain.XPEvent{ID: "quest-give-feedback", Label: "stale", Points: 5})
	xpBefore := svc.Progress().XP

	result := svc.CompleteQuest("give-feedback")

	if result.XPAdded != 0 {
		t.Errorf("expected 0 XP (reward event already recorded), got %d", result.XPAdded)
	}
	if svc.Progress().XP != xpBefore {
		t.Errorf("XP changed from %d to %d", xpBefore, svc.Progress().XP)
	}
	if !svc.Progress().HasCompletedQuest("give-feedback") {
		t.Error("quest should still be marked complete")
	}
}

func TestCompleteQuest_BadgeBelowThreshold(t *testing.T) {
	svc := testService(t)

	// merged-pr links duck-team-player (requires 50 XP); reward is 50, so
	// from zero XP it is met — instead test complete-course's badge gate
	// by draining: complete-course links duck-graduate (requires 100),
	// reward 50, so from zero XP the badge must NOT be awarded.
	result := svc.CompleteQuest("complete-course")

	if svc.Progress().HasEarnedBadge("duck-graduate") {
		t.Error("badge awarded below its XP threshold")
	}
	if len(result.EarnedBadges) != 0 {
		t.Errorf("expected no badges, got %v", result.EarnedBadges)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Badge Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestAwardBadge(t *testing.T) {
	svc := testService(t)

	result := svc.AwardBadge("duck-initiate")
	if result.BadgeID != "duck-initiate" {
		t.Errorf("expected badge id, got %q", result.BadgeID)
	}
	if result.Message == "" {
		t.Error("expected a celebratory message")
	}
	if !svc.Progress().HasEarnedBadge("duck-initiate") {
		t.Error("badge not recorded")
	}
}

func TestAwardBadge_Idempotent(t *testing.T) {
	svc := testService(t)

	svc.AwardBadge("duck-initiate")
	second := svc.AwardBadge("duck-initiate")

	if second.BadgeID != "" {
		t.Errorf("expected empty result on repeat, got %+v", second)
	}
	if len(svc.Progress().EarnedBadgeIDs) != 1 {
		t.Errorf("badge recorded %d times", len(svc.Progress().EarnedBadgeIDs))
	}
}

func TestAwardBadge_Unknown(t *testing.T) {
	svc := testService(t)

	result := svc.AwardBadge("no-such-badge")
	if result.BadgeID != "" {
		t.Errorf("expected no-op, got %+v", result)
	}
	if len(svc.Progress().EarnedBadgeIDs) != 0 {
		t.Error("unknown badge must not be recorded")
	}
}

func TestBadgePermanence(t *testing.T) {
	svc := testService(t)

	svc.AwardBadge("duck-initiate")
	svc.HandleEvent(domain.XPEvent{ID: "e1", Label: "e", Points: 500})
	svc.CompleteQuest("star-quackcore")
	svc.CompleteQuest("star-quackcore")
	svc.AwardBadge("no-such-badge")

	if !svc.Progress().HasEarnedBadge("duck-initiate") {
		t.Error("badge was revoked")
	}
}

func TestCheckXPBadges(t *testing.T) {
	svc := testService(t)

	svc.HandleEvent(domain.XPEvent{ID: "e1", Label: "e", Points: 120})
	awarded := svc.CheckXPBadges()

	ids := map[string]bool{}
	for _, br := range awarded {
		ids[br.BadgeID] = true
	}
	if !ids["duck-initiate"] || !ids["duck-apprentice"] {
		t.Errorf("expected duck-initiate and duck-apprentice at 120 XP, got %v", ids)
	}
	// Quest-linked badges are not auto-awarded
	if ids["github-collaborator"] {
		t.Error("quest-linked badge must not auto-award")
	}

	if again := svc.CheckXPBadges(); len(again) != 0 {
		t.Errorf("second check should award nothing, got %d", len(again))
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Persistence Round-Trip
// ═══════════════════════════════════════════════════════════════════════════

func TestService_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ducktyper_user.json")

	svc, err := gamification.NewService(store.New(path), "quackduck")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.HandleEvent(domain.XPEvent{ID: "e1", Label: "e", Points: 150})
	svc.CompleteQuest("star-quackcore")

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("progress file not written: %v", err)
	}

	reloaded, err := gamification.NewService(store.New(path), "quackduck")
	if err != nil {
		t.Fatalf("reload service: %v", err)
	}
	p := reloaded.Progress()
	if p.XP != 160 {
		t.Errorf("expected 160 XP after reload, got %d", p.XP)
	}
	if p.Level != gamification.LevelForXP(p.XP) {
		t.Errorf("level %d inconsistent with XP %d after reload", p.Level, p.XP)
	}
	if !p.HasCompletedQuest("star-quackcore") {
		t.Error("quest lost across reload")
	}
	if !p.HasEarnedBadge("github-collaborator") {
		t.Error("badge lost across reload")
	}

	// Idempotence survives the reload
	if r := reloaded.HandleEvent(domain.XPEvent{ID: "e1", Label: "e", Points: 150}); r.XPAdded != 0 {
		t.Errorf("duplicate event applied after reload: %d XP", r.XPAdded)
	}
}

func TestService_DerivesLevelFromEditedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ducktyper_user.json")

	// A hand-edited file with a bogus level must be corrected on load.
	data := `{"github_username":"quackduck","xp":250,"level":42}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	svc, err := gamification.NewService(store.New(path), "quackduck")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if svc.Progress().Level != 2 {
		t.Errorf("expected derived level 2 at 250 XP, got %d", svc.Progress().Level)
	}
}
