package analytics

import (
	"sort"
	"time"

	"github.com/bryan-cox/taskpulse/internal/model"
)

// CycleTimeMetrics summarizes elapsed days between creation and completion
// over all completed tasks with a completion timestamp. ByPriority always
// carries all four priorities (0 for an empty bucket); ByAssignee only
// carries assignees that completed at least one task. Trend covers the last
// 12 calendar months, each value the mean cycle time of that month's
// completions.
type CycleTimeMetrics struct {
	AverageCycleTime float64                    `json:"averageCycleTime"`
	Median           float64                    `json:"median"`
	Percentile90     float64                    `json:"percentile90"`
	ByPriority       map[model.Priority]float64 `json:"byPriority"`
	ByAssignee       map[string]float64         `json:"byAssignee"`
	Trend            []TrendPoint               `json:"trend"`
}

type sumCount struct {
	sum   float64
	count int
}

func (s sumCount) mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// AnalyzeCycleTime computes average, median, and 90th-percentile cycle times
// plus per-priority, per-assignee, and monthly breakdowns.
func AnalyzeCycleTime(tasks []model.Task, now time.Time) CycleTimeMetrics {
	m := CycleTimeMetrics{
		ByPriority: make(map[model.Priority]float64, len(model.AllPriorities)),
		ByAssignee: make(map[string]float64),
	}

	var durations []float64
	byPriority := make(map[model.Priority]sumCount)
	byAssignee := make(map[string]sumCount)

	monthBuckets := trendBuckets(GranularityMonthly, now)
	monthStats := make([]sumCount, len(monthBuckets))

	for _, task := range tasks {
		if !task.IsCompleted() {
			continue
		}
		cycle, ok := task.CycleTimeDays()
		if !ok {
			continue
		}
		durations = append(durations, cycle)

		p := byPriority[task.Priority]
		p.sum += cycle
		p.count++
		byPriority[task.Priority] = p

		a := byAssignee[task.AssigneeID]
		a.sum += cycle
		a.count++
		byAssignee[task.AssigneeID] = a

		for i := range monthBuckets {
			if !task.CompletedAt.Before(monthBuckets[i].PeriodStart) && task.CompletedAt.Before(monthBuckets[i].PeriodEnd) {
				monthStats[i].sum += cycle
				monthStats[i].count++
				break
			}
		}
	}

	m.AverageCycleTime = round(average(durations), 2)

	sorted := make([]float64, len(durations))
	copy(sorted, durations)
	sort.Float64s(sorted)
	if n := len(sorted); n > 0 {
		m.Median = round(sorted[n/2], 2)
		p90 := int(float64(n) * 0.9)
		if p90 >= n {
			p90 = n - 1
		}
		m.Percentile90 = round(sorted[p90], 2)
	}

	for _, priority := range model.AllPriorities {
		m.ByPriority[priority] = round(byPriority[priority].mean(), 2)
	}
	for assignee, stats := range byAssignee {
		m.ByAssignee[assignee] = round(stats.mean(), 2)
	}

	for i := range monthBuckets {
		monthBuckets[i].Value = round(monthStats[i].mean(), 2)
	}
	m.Trend = monthBuckets

	return m
}
