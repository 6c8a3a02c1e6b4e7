package analytics

import (
	"sort"
	"time"

	"github.com/bryan-cox/taskpulse/internal/model"
)

// Risk levels for the whole-project health snapshot.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// Velocity trend labels. These come from a coarse progress heuristic, not
// from historical velocity.
const (
	VelocityIncreasing = "increasing"
	VelocityStable     = "stable"
	VelocityDecreasing = "decreasing"
)

// TaskRef is a lightweight reference to a task in deadline lists.
type TaskRef struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"dueDate"`
}

// ProjectHealthMetrics is the whole-dataset health snapshot.
type ProjectHealthMetrics struct {
	TotalTasks              int                      `json:"totalTasks"`
	OverallProgress         float64                  `json:"overallProgress"`
	StatusDistribution      map[model.Status]int     `json:"statusDistribution"`
	PriorityDistribution    map[model.Priority]int   `json:"priorityDistribution"`
	UpcomingDeadlines       []TaskRef                `json:"upcomingDeadlines"`
	OverdueActions          []TaskRef                `json:"overdueActions"`
	BlockersCount           int                      `json:"blockersCount"`
	AverageCycleTime        float64                  `json:"averageCycleTime"`
	VelocityTrend           string                   `json:"velocityTrend"`
	RiskLevel               string                   `json:"riskLevel"`
	PredictedCompletionDate time.Time                `json:"predictedCompletionDate"`
}

// AssessHealth computes the project-wide health snapshot. Unlike the
// performance calculators it takes no window; the whole dataset counts.
func AssessHealth(tasks []model.Task, now time.Time, cfg Config) ProjectHealthMetrics {
	h := ProjectHealthMetrics{
		TotalTasks:           len(tasks),
		StatusDistribution:   make(map[model.Status]int, len(model.AllStatuses)),
		PriorityDistribution: make(map[model.Priority]int, len(model.AllPriorities)),
	}
	for _, status := range model.AllStatuses {
		h.StatusDistribution[status] = 0
	}
	for _, priority := range model.AllPriorities {
		h.PriorityDistribution[priority] = 0
	}

	deadlineCutoff := now.AddDate(0, 0, cfg.UpcomingDeadlineDays)
	var cycleSum float64
	cycleCount := 0

	for _, task := range tasks {
		h.StatusDistribution[task.Status]++
		h.PriorityDistribution[task.Priority]++

		if !task.IsCompleted() {
			ref := TaskRef{ID: task.ID, Title: task.Title, DueDate: task.DueDate}
			if task.DueDate.Before(now) {
				h.OverdueActions = append(h.OverdueActions, ref)
			} else if !task.DueDate.After(deadlineCutoff) {
				h.UpcomingDeadlines = append(h.UpcomingDeadlines, ref)
			}
		}

		if cycle, ok := task.CycleTimeDays(); ok && task.IsCompleted() {
			cycleSum += cycle
			cycleCount++
		}
	}

	sort.SliceStable(h.UpcomingDeadlines, func(i, j int) bool {
		return h.UpcomingDeadlines[i].DueDate.Before(h.UpcomingDeadlines[j].DueDate)
	})
	sort.SliceStable(h.OverdueActions, func(i, j int) bool {
		return h.OverdueActions[i].DueDate.Before(h.OverdueActions[j].DueDate)
	})

	h.BlockersCount = h.StatusDistribution[model.StatusBlocked]
	h.OverallProgress = percent(h.StatusDistribution[model.StatusCompleted], h.TotalTasks)
	if cycleCount > 0 {
		h.AverageCycleTime = round(cycleSum/float64(cycleCount), 2)
	}

	h.VelocityTrend = velocityTrend(h.OverallProgress, cfg)
	h.RiskLevel = riskLevel(len(h.OverdueActions), h.BlockersCount, cfg)

	// Naive linear projection: every outstanding task takes the dataset-wide
	// average cycle time.
	outstanding := h.StatusDistribution[model.StatusPending] + h.StatusDistribution[model.StatusInProgress]
	h.PredictedCompletionDate = now.Add(daysToDuration(float64(outstanding) * h.AverageCycleTime))

	return h
}

func velocityTrend(overallProgress float64, cfg Config) string {
	switch {
	case overallProgress > cfg.VelocityIncreasingAbove:
		return VelocityIncreasing
	case overallProgress > cfg.VelocityStableAbove:
		return VelocityStable
	default:
		return VelocityDecreasing
	}
}

func riskLevel(overdueCount, blockersCount int, cfg Config) string {
	switch {
	case overdueCount > cfg.RiskCriticalOverdue || blockersCount > cfg.RiskCriticalBlockers:
		return RiskCritical
	case overdueCount > cfg.RiskHighOverdue || blockersCount > cfg.RiskHighBlockers:
		return RiskHigh
	case overdueCount > cfg.RiskMediumOverdue || blockersCount > cfg.RiskMediumBlockers:
		return RiskMedium
	default:
		return RiskLow
	}
}
