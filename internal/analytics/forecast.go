package analytics

import (
	"math"
	"time"

	"github.com/bryan-cox/taskpulse/internal/model"
)

// Confidence labels for a forecast's reliability.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// ForecastData estimates when a not-completed task will finish.
type ForecastData struct {
	TaskID                  string    `json:"taskId"`
	Title                   string    `json:"title"`
	EstimatedCompletionDate time.Time `json:"estimatedCompletionDate"`
	DaysRemaining           int       `json:"daysRemaining"`
	Confidence              string    `json:"confidence"`
	RiskFactors             []string  `json:"riskFactors"`
}

// Forecast produces a completion estimate for every not-completed task. The
// base estimate is the task's priority-bucket mean cycle time, falling back
// to the overall average when the bucket is empty, then scaled for tasks
// already underway or blocked.
func Forecast(tasks []model.Task, cycle CycleTimeMetrics, now time.Time, cfg Config) []ForecastData {
	var out []ForecastData
	for _, task := range tasks {
		if task.IsCompleted() {
			continue
		}

		estimate := cycle.ByPriority[task.Priority]
		if estimate <= 0 {
			estimate = cycle.AverageCycleTime
		}
		switch task.Status {
		case model.StatusInProgress:
			estimate *= cfg.InProgressFactor
		case model.StatusBlocked:
			estimate *= cfg.BlockedFactor
		}

		estimatedDate := now.Add(daysToDuration(estimate))

		out = append(out, ForecastData{
			TaskID:                  task.ID,
			Title:                   task.Title,
			EstimatedCompletionDate: estimatedDate,
			DaysRemaining:           int(math.Ceil(estimate)),
			Confidence:              forecastConfidence(task),
			RiskFactors:             forecastRiskFactors(task, estimatedDate),
		})
	}
	return out
}

func forecastConfidence(task model.Task) string {
	switch {
	case task.Status == model.StatusBlocked || len(task.Dependencies) > 3:
		return ConfidenceLow
	case task.Status == model.StatusInProgress && len(task.Dependencies) == 0:
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}

func forecastRiskFactors(task model.Task, estimatedDate time.Time) []string {
	var risks []string
	if task.Status == model.StatusBlocked {
		risks = append(risks, "Currently blocked")
	}
	if len(task.Dependencies) > 2 {
		risks = append(risks, "Multiple dependencies")
	}
	if estimatedDate.After(task.DueDate) {
		risks = append(risks, "Estimated completion after due date")
	}
	if len(task.SupportingMembers) == 0 {
		risks = append(risks, "No supporting team members")
	}
	return risks
}
