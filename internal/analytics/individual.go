package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/bryan-cox/taskpulse/internal/model"
)

// ActivityEntry is a synthetic activity record derived from a task's last
// update, used by the reporting layer's "recent activity" lists.
type ActivityEntry struct {
	TaskID      string    `json:"taskId"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	PerformedBy string    `json:"performedBy"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// IndividualPerformanceReport is the per-member counterpart of
// TeamPerformanceMetrics plus a contribution score and recent activity.
// The contribution score is an unbounded heuristic meant for relative
// ranking only.
type IndividualPerformanceReport struct {
	MemberID          string                 `json:"memberId"`
	MemberName        string                 `json:"memberName"`
	Metrics           TeamPerformanceMetrics `json:"metrics"`
	ContributionScore float64                `json:"contributionScore"`
	RecentActivity    []ActivityEntry        `json:"recentActivity"`
}

// IndividualReports produces one report per team member over the member's
// primary-assigned tasks created inside the window. Members with no tasks
// still get a report with all-zero metrics.
func IndividualReports(tasks []model.Task, members []model.TeamMember, window Window, now time.Time, cfg Config) []IndividualPerformanceReport {
	reports := make([]IndividualPerformanceReport, 0, len(members))
	for _, member := range members {
		var memberTasks []model.Task
		for _, task := range tasks {
			if task.AssigneeID == member.ID && window.Contains(task.CreatedAt) {
				memberTasks = append(memberTasks, task)
			}
		}

		metrics := TeamPerformance(memberTasks, window, now)

		score := float64(metrics.TotalCompleted)*cfg.CompletedWeight +
			float64(metrics.TotalInProgress)*cfg.InProgressWeight +
			metrics.OnTimeCompletionRate*cfg.OnTimeRateWeight
		if metrics.CompletionRate > cfg.HighCompletionRateAbove {
			score += cfg.HighCompletionBonus
		}

		reports = append(reports, IndividualPerformanceReport{
			MemberID:          member.ID,
			MemberName:        member.Name,
			Metrics:           metrics,
			ContributionScore: round(score, 1),
			RecentActivity:    recentActivity(memberTasks, member, cfg.RecentActivityLimit),
		})
	}
	return reports
}

// recentActivity renders the member's tasks as activity entries, most
// recently updated first, truncated to limit.
func recentActivity(tasks []model.Task, member model.TeamMember, limit int) []ActivityEntry {
	ordered := make([]model.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].UpdatedAt.After(ordered[j].UpdatedAt)
	})
	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}

	entries := make([]ActivityEntry, 0, len(ordered))
	for _, task := range ordered {
		entries = append(entries, ActivityEntry{
			TaskID:      task.ID,
			Title:       task.Title,
			Type:        "updated",
			PerformedBy: member.Name,
			Timestamp:   task.UpdatedAt,
			Description: fmt.Sprintf("%s is %s", task.Title, task.Status),
		})
	}
	return entries
}
