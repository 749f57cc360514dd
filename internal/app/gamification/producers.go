package gamification

import (
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"
	"github.com/quackverse/ducktyper/internal/domain"
)

// Fixed point values per action type.
const (
	PointsPRSubmission  = 25
	PointsPRMerged      = 50
	PointsStar          = 10
	PointsModule        = 30
	PointsCourse        = 100
	PointsFeedback      = 5
	PointsToolUsage     = 2
	PointsAssignmentMax = 50
)

// coreRepo is the repository whose star completes the "star-quackcore" quest.
const coreRepo = "quackverse/quackcore"

// The producer-facing helpers below wrap HandleEvent with a fixed point
// value, complete any quest gated on the action, and merge the messages
// from both into one result. Every action also counts as daily activity.

// HandleGitHubPRSubmission records an opened pull request.
func (s *Service) HandleGitHubPRSubmission(repo string, prNumber int) domain.QuestResult {
	var result domain.QuestResult
	id := fmt.Sprintf("github-pr-submitted-%s-%d", repo, prNumber)
	if !s.progress.HasCompletedEvent(id) {
		// Set before the event so its save carries the metadata
		s.progress.Metadata["last_pr_number"] = prNumber
	}
	er := s.HandleEvent(domain.XPEvent{
		ID:       id,
		Label:    fmt.Sprintf("Opened PR #%d on %s", prNumber, repo),
		Points:   PointsPRSubmission,
		Metadata: map[string]any{"repo": repo, "pr_number": prNumber},
	})
	result.Merge(er)

	result.MergeQuest(s.CompleteQuest("open-pr"))
	s.finishAction(&result)
	return result
}

// HandleGitHubPRMerged records a merged pull request.
func (s *Service) HandleGitHubPRMerged(repo string, prNumber int) domain.QuestResult {
	var result domain.QuestResult
	er := s.HandleEvent(domain.XPEvent{
		ID:       fmt.Sprintf("github-pr-merged-%s-%d", repo, prNumber),
		Label:    fmt.Sprintf("Merged PR #%d on %s", prNumber, repo),
		Points:   PointsPRMerged,
		Metadata: map[string]any{"repo": repo, "pr_number": prNumber},
	})
	result.Merge(er)

	result.MergeQuest(s.CompleteQuest("merged-pr"))
	s.finishAction(&result)
	return result
}

// HandleGitHubStar records starring a repository.
// Starring the core repo completes the "star-quackcore" quest.
func (s *Service) HandleGitHubStar(repo string) domain.QuestResult {
	var result domain.QuestResult
	er := s.HandleEvent(domain.XPEvent{
		ID:       "github-star-" + repo,
		Label:    "Starred " + repo,
		Points:   PointsStar,
		Metadata: map[string]any{"repo": repo},
	})
	result.Merge(er)

	if repo == coreRepo {
		result.MergeQuest(s.CompleteQuest("star-quackcore"))
	}
	s.finishAction(&result)
	return result
}

// HandleModuleCompletion records finishing an academy module.
func (s *Service) HandleModuleCompletion(courseID, moduleID string) domain.QuestResult {
	var result domain.QuestResult
	er := s.HandleEvent(domain.XPEvent{
		ID:       fmt.Sprintf("module-%s-%s", courseID, moduleID),
		Label:    fmt.Sprintf("Completed module %s of %s", moduleID, courseID),
		Points:   PointsModule,
		Metadata: map[string]any{"course": courseID, "module": moduleID},
	})
	result.Merge(er)

	result.MergeQuest(s.CompleteQuest("complete-module"))
	s.finishAction(&result)
	return result
}

// HandleCourseCompletion records finishing a full academy course.
func (s *Service) HandleCourseCompletion(courseID string) domain.QuestResult {
	var result domain.QuestResult
	er := s.HandleEvent(domain.XPEvent{
		ID:       "course-" + courseID,
		Label:    "Completed course " + courseID,
		Points:   PointsCourse,
		Metadata: map[string]any{"course": courseID},
	})
	result.Merge(er)

	result.MergeQuest(s.CompleteQuest("complete-course"))
	s.finishAction(&result)
	return result
}

// HandleAssignmentCompletion records a graded assignment.
// Points scale with the score: max * score/maxScore rounded half to even,
// clamped to [0, max]. The percentage is kept in the event metadata.
func (s *Service) HandleAssignmentCompletion(assignmentID string, score, maxScore float64) domain.QuestResult {
	var result domain.QuestResult
	if maxScore <= 0 {
		log.Printf("[gamification] WARNING: assignment %s has non-positive max score %.1f", assignmentID, maxScore)
		result.Level = s.progress.Level
		return result
	}

	percentage := score / maxScore
	points := int(math.RoundToEven(PointsAssignmentMax * percentage))
	if points < 0 {
		points = 0
	}
	if points > PointsAssignmentMax {
		points = PointsAssignmentMax
	}

	er := s.HandleEvent(domain.XPEvent{
		ID:       "assignment-" + assignmentID,
		Label:    fmt.Sprintf("Completed assignment %s (%.0f%%)", assignmentID, percentage*100),
		Points:   points,
		Metadata: map[string]any{"assignment": assignmentID, "percentage": percentage},
	})
	result.Merge(er)
	s.finishAction(&result)
	return result
}

// HandleFeedbackSubmission records submitted feedback.
func (s *Service) HandleFeedbackSubmission(contextID string) domain.QuestResult {
	var result domain.QuestResult
	er := s.HandleEvent(domain.XPEvent{
		ID:       "feedback-" + contextID,
		Label:    "Submitted feedback on " + contextID,
		Points:   PointsFeedback,
		Metadata: map[string]any{"context": contextID},
	})
	result.Merge(er)

	result.MergeQuest(s.CompleteQuest("give-feedback"))
	s.finishAction(&result)
	return result
}

// HandleToolUsage records a tool run. Every run scores; the day-scoped
// guard event ("tool-<tool>-<action>-day-<date>", zero points) marks the
// first run of the calendar day, which is what completes the daily quest.
func (s *Service) HandleToolUsage(tool, action string) domain.QuestResult {
	var result domain.QuestResult
	day := s.now()

	guardID := domain.DayGuardID(fmt.Sprintf("tool-%s-%s", tool, action), day)
	firstToday := !s.progress.HasCompletedEvent(guardID)

	er := s.HandleEvent(domain.XPEvent{
		ID:       uuid.NewString(),
		Label:    fmt.Sprintf("Ran %s %s", tool, action),
		Points:   PointsToolUsage,
		Metadata: map[string]any{"tool": tool, "action": action},
	})
	result.Merge(er)

	if firstToday {
		s.HandleEvent(domain.XPEvent{
			ID:     guardID,
			Label:  fmt.Sprintf("First %s %s of the day", tool, action),
			Points: 0,
		})
		if tool == "ducktyper" {
			result.MergeQuest(s.CompleteQuest("run-ducktyper"))
		}
	}

	s.finishAction(&result)
	return result
}

// finishAction runs the shared tail of every producer helper: count the
// day toward the streak, complete any streak-milestone quests, and award
// newly reached XP-milestone badges.
func (s *Service) finishAction(result *domain.QuestResult) {
	s.RecordActivity(s.now())

	if s.progress.CurrentStreak >= 7 {
		result.MergeQuest(s.CompleteQuest("streak-7"))
	}
	if s.progress.CurrentStreak >= 30 {
		result.MergeQuest(s.CompleteQuest("streak-30"))
	}

	for _, br := range s.CheckXPBadges() {
		result.EarnedBadges = append(result.EarnedBadges, br.BadgeID)
		result.Messages = append(result.Messages, br.Message)
	}
	result.Level = s.progress.Level
}
