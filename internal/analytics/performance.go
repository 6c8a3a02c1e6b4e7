package analytics

import (
	"time"

	"github.com/bryan-cox/taskpulse/internal/model"
)

// Window is an inclusive date range for windowed calculators.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// TeamPerformanceMetrics aggregates counts and rates over tasks created
// inside a date window. Rates are percentages in [0, 100]; averages are in
// days. Empty denominators yield zero, never a fault.
type TeamPerformanceMetrics struct {
	WindowStart           time.Time `json:"windowStart"`
	WindowEnd             time.Time `json:"windowEnd"`
	TotalTasks            int       `json:"totalTasks"`
	TotalCompleted        int       `json:"totalCompleted"`
	TotalInProgress       int       `json:"totalInProgress"`
	TotalPending          int       `json:"totalPending"`
	TotalBlocked          int       `json:"totalBlocked"`
	CompletionRate        float64   `json:"completionRate"`
	AverageCompletionTime float64   `json:"averageCompletionTime"`
	OnTimeCompletionRate  float64   `json:"onTimeCompletionRate"`
	OverdueCount          int       `json:"overdueCount"`
}

// TeamPerformance computes windowed aggregate metrics over the task set.
func TeamPerformance(tasks []model.Task, window Window, now time.Time) TeamPerformanceMetrics {
	m := TeamPerformanceMetrics{WindowStart: window.Start, WindowEnd: window.End}

	var cycleSum float64
	cycleCount := 0
	onTime := 0

	for _, task := range tasks {
		if !window.Contains(task.CreatedAt) {
			continue
		}
		m.TotalTasks++

		switch task.Status {
		case model.StatusCompleted:
			m.TotalCompleted++
		case model.StatusInProgress:
			m.TotalInProgress++
		case model.StatusPending:
			m.TotalPending++
		case model.StatusBlocked:
			m.TotalBlocked++
		}

		if cycle, ok := task.CycleTimeDays(); ok && task.IsCompleted() {
			cycleSum += cycle
			cycleCount++
			if !task.CompletedAt.After(task.DueDate) {
				onTime++
			}
		}

		if task.Overdue(now) {
			m.OverdueCount++
		}
	}

	m.CompletionRate = percent(m.TotalCompleted, m.TotalTasks)
	if cycleCount > 0 {
		m.AverageCompletionTime = round(cycleSum/float64(cycleCount), 2)
	}
	m.OnTimeCompletionRate = percent(onTime, m.TotalCompleted)
	return m
}
