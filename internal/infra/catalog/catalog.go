// Package catalog is the static registry of quests and badges.
// This is DuckTyper's "achievement phonebook" — it maps quest ids like
// "star-quackcore" to their rewards and linked badges. The catalogs are
// the single source of truth: the engine never invents quest or badge ids.
package catalog

import (
	"github.com/quackverse/ducktyper/internal/domain"
)

// Quests is the built-in quest catalog.
// Completion predicates live with the producers (a quest is completed when
// its producer says so); the catalog only defines rewards.
var Quests = []domain.Quest{
	{
		ID:          "star-quackcore",
		Name:        "Quack Supporter",
		Description: "Star the quackcore repository on GitHub",
		RewardXP:    10,
		BadgeID:     "github-collaborator",
	},
	{
		ID:          "open-pr",
		Name:        "Contributor",
		Description: "Open your first pull request",
		RewardXP:    25,
		BadgeID:     "github-collaborator",
	},
	{
		ID:          "merged-pr",
		Name:        "Shipped It",
		Description: "Get a pull request merged",
		RewardXP:    50,
		BadgeID:     "duck-team-player",
	},
	{
		ID:          "run-ducktyper",
		Name:        "Daily Duck",
		Description: "Run a DuckTyper tool today",
		RewardXP:    5,
	},
	{
		ID:          "complete-module",
		Name:        "Module Master",
		Description: "Complete your first academy module",
		RewardXP:    15,
	},
	{
		ID:          "complete-course",
		Name:        "Course Conqueror",
		Description: "Complete a full academy course",
		RewardXP:    50,
		BadgeID:     "duck-graduate",
	},
	{
		ID:          "give-feedback",
		Name:        "Helpful Duck",
		Description: "Submit feedback on an assignment or tool",
		RewardXP:    5,
	},
	{
		ID:          "streak-7",
		Name:        "Week of Quacks",
		Description: "Stay active 7 days in a row",
		RewardXP:    70,
		BadgeID:     "streak-keeper",
	},
	{
		ID:          "streak-30",
		Name:        "Monthly Mallard",
		Description: "Stay active 30 days in a row",
		RewardXP:    300,
		BadgeID:     "streak-legend",
	},
}

// Badges is the built-in badge catalog.
// required_xp gates the award: a quest's linked badge is only granted once
// the user's XP has reached the badge threshold.
var Badges = []domain.Badge{
	{ID: "duck-initiate", Name: "Duck Initiate", Description: "Earn your first 10 XP", RequiredXP: 10, Emoji: "🐣"},
	{ID: "github-collaborator", Name: "GitHub Collaborator", Description: "Engage with the QuackVerse on GitHub", RequiredXP: 10, Emoji: "⭐"},
	{ID: "duck-team-player", Name: "Team Player", Description: "Land a merged contribution", RequiredXP: 50, Emoji: "🤝"},
	{ID: "duck-apprentice", Name: "Duck Apprentice", Description: "Reach 100 XP", RequiredXP: 100, Emoji: "🐤"},
	{ID: "duck-graduate", Name: "Duck Graduate", Description: "Finish an academy course", RequiredXP: 100, Emoji: "🎓"},
	{ID: "streak-keeper", Name: "Streak Keeper", Description: "Hold a 7-day streak", RequiredXP: 50, Emoji: "🔥"},
	{ID: "duck-expert", Name: "Duck Expert", Description: "Reach 500 XP", RequiredXP: 500, Emoji: "🦆"},
	{ID: "streak-legend", Name: "Streak Legend", Description: "Hold a 30-day streak", RequiredXP: 300, Emoji: "🌟"},
	{ID: "quack-master", Name: "Quack Master", Description: "Reach 1000 XP", RequiredXP: 1000, Emoji: "👑"},
}

// GetQuest returns the quest with the given id, or nil if unknown.
func GetQuest(id string) *domain.Quest {
	for i := range Quests {
		if Quests[i].ID == id {
			return &Quests[i]
		}
	}
	return nil
}

// GetBadge returns the badge with the given id, or nil if unknown.
func GetBadge(id string) *domain.Badge {
	for i := range Badges {
		if Badges[i].ID == id {
			return &Badges[i]
		}
	}
	return nil
}

// UserQuests splits the catalog into completed and available for a user.
func UserQuests(progress *domain.UserProgress) domain.UserQuestStatus {
	var status domain.UserQuestStatus
	for _, q := range Quests {
		if progress.HasCompletedQuest(q.ID) {
			status.Completed = append(status.Completed, q)
		} else {
			status.Available = append(status.Available, q)
		}
	}
	return status
}

// SuggestedQuests returns up to limit incomplete quests, cheapest reward
// first — the next easy wins for the user.
func SuggestedQuests(progress *domain.UserProgress, limit int) []domain.Quest {
	available := UserQuests(progress).Available
	for i := 1; i < len(available); i++ {
		for j := i; j > 0 && available[j].RewardXP < available[j-1].RewardXP; j-- {
			available[j], available[j-1] = available[j-1], available[j]
		}
	}
	if limit >= 0 && len(available) > limit {
		available = available[:limit]
	}
	return available
}
