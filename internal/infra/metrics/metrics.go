// Package metrics provides Prometheus metrics for DuckTyper.
// Counters and gauges for the gamification engine: events, XP, quests,
// badges, and persistence health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Events ─────────────────────────────────────────────────────────────────

// EventsApplied counts XP events applied (duplicates excluded).
var EventsApplied = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ducktyper",
	Name:      "events_applied_total",
	Help:      "Total XP events applied.",
})

// EventsDuplicate counts events rejected by the idempotence check.
var EventsDuplicate = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ducktyper",
	Name:      "events_duplicate_total",
	Help:      "Total events skipped as already recorded.",
})

// XPAwarded counts total XP granted.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ducktyper",
	Name:      "xp_awarded_total",
	Help:      "Total experience points awarded.",
})

// ─── Progression ────────────────────────────────────────────────────────────

// QuestsCompleted counts completed quests.
var QuestsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ducktyper",
	Name:      "quests_completed_total",
	Help:      "Total quests completed.",
})

// BadgesEarned counts earned badges.
var BadgesEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ducktyper",
	Name:      "badges_earned_total",
	Help:      "Total badges earned.",
})

// CurrentXP tracks the user's cumulative XP.
var CurrentXP = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ducktyper",
	Name:      "xp_current",
	Help:      "Current cumulative XP.",
})

// CurrentLevel tracks the user's level.
var CurrentLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "ducktyper",
	Name:      "level_current",
	Help:      "Current level (derived from XP).",
})

// ─── Persistence ────────────────────────────────────────────────────────────

// SaveFailures counts failed progress writes.
var SaveFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ducktyper",
	Name:      "save_failures_total",
	Help:      "Total failed progress file writes.",
})

// SetProgress updates the XP and level gauges together.
func SetProgress(xp, level int) {
	CurrentXP.Set(float64(xp))
	CurrentLevel.Set(float64(level))
}
