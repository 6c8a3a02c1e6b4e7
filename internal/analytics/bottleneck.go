package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/bryan-cox/taskpulse/internal/model"
)

// BottleneckAnalysis describes a task stuck in its current status past the
// configured threshold. RiskScore is capped to [0, MaxRiskScore].
type BottleneckAnalysis struct {
	TaskID           string         `json:"taskId"`
	Title            string         `json:"title"`
	Status           model.Status   `json:"status"`
	Priority         model.Priority `json:"priority"`
	DaysInStatus     int            `json:"daysInStatus"`
	RiskScore        int            `json:"riskScore"`
	BlockingFactors  []string       `json:"blockingFactors"`
	SuggestedActions []string       `json:"suggestedActions"`
}

// DetectBottlenecks flags not-completed tasks whose time in their current
// status meets the threshold, and ranks them by risk score descending.
// Ties keep their original dataset order.
func DetectBottlenecks(tasks []model.Task, now time.Time, cfg Config) []BottleneckAnalysis {
	var out []BottleneckAnalysis
	for _, task := range tasks {
		if task.IsCompleted() {
			continue
		}

		daysInStatus := int(now.Sub(task.StatusStartedAt()).Hours() / 24)
		if daysInStatus < cfg.BottleneckThresholdDays {
			continue
		}

		factors, actions := bottleneckFactors(task, now)

		score := daysInStatus * cfg.DaysInStatusWeight
		if task.Status == model.StatusBlocked {
			score += cfg.BlockedWeight
		}
		if task.Priority == model.PriorityCritical || task.Priority == model.PriorityHigh {
			score += cfg.HighPriorityWeight
		}
		if task.DueDate.Before(now) {
			score += cfg.OverdueWeight
		}
		if score > cfg.MaxRiskScore {
			score = cfg.MaxRiskScore
		}

		out = append(out, BottleneckAnalysis{
			TaskID:           task.ID,
			Title:            task.Title,
			Status:           task.Status,
			Priority:         task.Priority,
			DaysInStatus:     daysInStatus,
			RiskScore:        score,
			BlockingFactors:  factors,
			SuggestedActions: actions,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore > out[j].RiskScore
	})
	return out
}

// bottleneckFactors evaluates the fixed rule set. Each rule is independent;
// zero or more may apply, and factors and actions stay index-aligned.
func bottleneckFactors(task model.Task, now time.Time) (factors, actions []string) {
	if task.Status == model.StatusBlocked {
		factors = append(factors, "Task marked as blocked")
		actions = append(actions, "Review blocking issues and assign resources")
	}
	if len(task.Dependencies) > 0 {
		factors = append(factors, fmt.Sprintf("Has %d dependencies", len(task.Dependencies)))
		actions = append(actions, "Check status of dependent tasks")
	}
	if task.DueDate.Before(now) {
		factors = append(factors, "Task is overdue")
		actions = append(actions, "Re-evaluate timeline and priority")
	}
	if len(task.SupportingMembers) == 0 {
		factors = append(factors, "No supporting team members assigned")
		actions = append(actions, "Consider adding supporting members")
	}
	return factors, actions
}
