package gamification

// Level thresholds: a fixed linear table, 100 XP per level, capped at 100.
// This file is the single source of truth for the level function — Level is
// always derived from XP, never accepted from callers.

// MaxLevel is the level cap.
const MaxLevel = 100

// xpPerLevel is the width of each level step.
const xpPerLevel = 100

// XPForLevel returns the cumulative XP required to reach a given level.
// Level 0 starts at 0 XP, level 1 at 100, level 2 at 200, and so on.
func XPForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return level * xpPerLevel
}

// LevelForXP returns the level for a given XP amount.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 0
	}
	level := xp / xpPerLevel
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// XPToNextLevel returns XP remaining until the next level (0 at the cap).
func XPToNextLevel(xp int) int {
	level := LevelForXP(xp)
	if level >= MaxLevel {
		return 0
	}
	return XPForLevel(level+1) - xp
}

// ProgressPct returns progress toward the next level (0.0–100.0).
func ProgressPct(xp int) float64 {
	level := LevelForXP(xp)
	if level >= MaxLevel {
		return 100.0
	}
	span := XPForLevel(level+1) - XPForLevel(level)
	pct := float64(xp-XPForLevel(level)) / float64(span) * 100.0
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
