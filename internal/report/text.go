package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bryan-cox/taskpulse/internal/analytics"
	"github.com/bryan-cox/taskpulse/internal/model"
)

const dateLayout = "2006-01-02"

// PrintTeamPerformance prints the windowed team metrics section.
func PrintTeamPerformance(out io.Writer, m analytics.TeamPerformanceMetrics) {
	fmt.Fprintln(out, "Team Performance")
	fmt.Fprintf(out, "- Window: %s to %s\n", m.WindowStart.Format(dateLayout), m.WindowEnd.Format(dateLayout))
	fmt.Fprintf(out, "  Total: %d | Completed: %d | In Progress: %d | Pending: %d | Blocked: %d\n",
		m.TotalTasks, m.TotalCompleted, m.TotalInProgress, m.TotalPending, m.TotalBlocked)
	fmt.Fprintf(out, "  Completion Rate: %.1f%% | On Time: %.1f%% | Avg Completion: %.2f days | Overdue: %d\n",
		m.CompletionRate, m.OnTimeCompletionRate, m.AverageCompletionTime, m.OverdueCount)
}

// PrintIndividualReports prints one section per team member, highest
// contribution score first.
func PrintIndividualReports(out io.Writer, reports []analytics.IndividualPerformanceReport) {
	if len(reports) == 0 {
		return
	}
	ordered := make([]analytics.IndividualPerformanceReport, len(reports))
	copy(ordered, reports)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ContributionScore > ordered[j].ContributionScore
	})

	fmt.Fprintln(out, "Individual Performance")
	for _, r := range ordered {
		fmt.Fprintf(out, "- %s (score %.1f)\n", r.MemberName, r.ContributionScore)
		fmt.Fprintf(out, "  Total: %d | Completed: %d | In Progress: %d | Completion: %.1f%% | On Time: %.1f%%\n",
			r.Metrics.TotalTasks, r.Metrics.TotalCompleted, r.Metrics.TotalInProgress,
			r.Metrics.CompletionRate, r.Metrics.OnTimeCompletionRate)
		for _, entry := range r.RecentActivity {
			fmt.Fprintf(out, "    • %s (%s)\n", entry.Description, entry.Timestamp.Format(dateLayout))
		}
	}
}

// PrintHealth prints the project health snapshot.
func PrintHealth(out io.Writer, h analytics.ProjectHealthMetrics) {
	fmt.Fprintln(out, "Project Health")
	fmt.Fprintf(out, "- Progress: %.1f%% of %d tasks | Velocity: %s | Risk: %s\n",
		h.OverallProgress, h.TotalTasks, h.VelocityTrend, h.RiskLevel)

	statusParts := make([]string, 0, len(model.AllStatuses))
	for _, status := range model.AllStatuses {
		statusParts = append(statusParts, fmt.Sprintf("%s %d", status, h.StatusDistribution[status]))
	}
	fmt.Fprintf(out, "  Status: %s\n", strings.Join(statusParts, " | "))

	priorityParts := make([]string, 0, len(model.AllPriorities))
	for _, priority := range model.AllPriorities {
		priorityParts = append(priorityParts, fmt.Sprintf("%s %d", priority, h.PriorityDistribution[priority]))
	}
	fmt.Fprintf(out, "  Priority: %s\n", strings.Join(priorityParts, " | "))

	fmt.Fprintf(out, "  Blockers: %d | Avg Cycle: %.2f days | Predicted Completion: %s\n",
		h.BlockersCount, h.AverageCycleTime, h.PredictedCompletionDate.Format(dateLayout))

	if len(h.OverdueActions) > 0 {
		fmt.Fprintln(out, "  Overdue:")
		for _, ref := range h.OverdueActions {
			fmt.Fprintf(out, "    • %s (due %s)\n", ref.Title, ref.DueDate.Format(dateLayout))
		}
	}
	if len(h.UpcomingDeadlines) > 0 {
		fmt.Fprintln(out, "  Due in the next week:")
		for _, ref := range h.UpcomingDeadlines {
			fmt.Fprintf(out, "    • %s (due %s)\n", ref.Title, ref.DueDate.Format(dateLayout))
		}
	}
}

// PrintBottlenecks prints flagged tasks, highest risk first.
func PrintBottlenecks(out io.Writer, bottlenecks []analytics.BottleneckAnalysis) {
	fmt.Fprintln(out, "Bottlenecks")
	if len(bottlenecks) == 0 {
		fmt.Fprintln(out, "- none")
		return
	}
	for _, b := range bottlenecks {
		fmt.Fprintf(out, "- %s [%s/%s] | %d days in status | risk %d\n",
			b.Title, b.Status, b.Priority, b.DaysInStatus, b.RiskScore)
		for i, factor := range b.BlockingFactors {
			fmt.Fprintf(out, "    • %s -> %s\n", factor, b.SuggestedActions[i])
		}
	}
}

// PrintTrend prints the completion-trend series and period-over-period change.
func PrintTrend(out io.Writer, trend analytics.CompletionTrend) {
	fmt.Fprintf(out, "Completion Trend (%s)\n", trend.Granularity)
	for _, point := range trend.Data {
		fmt.Fprintf(out, "- %-10s %g\n", point.Label, point.Value)
	}
	fmt.Fprintf(out, "  Current: %g | Previous: %g | Change: %.1f%%\n",
		trend.CurrentPeriod.Value, trend.PreviousPeriod.Value, trend.PercentageChange)
}

// PrintCycleTime prints the cycle-time statistics.
func PrintCycleTime(out io.Writer, m analytics.CycleTimeMetrics) {
	fmt.Fprintln(out, "Cycle Time")
	fmt.Fprintf(out, "- Avg: %.2f days | Median: %.2f days | P90: %.2f days\n",
		m.AverageCycleTime, m.Median, m.Percentile90)

	parts := make([]string, 0, len(model.AllPriorities))
	for _, priority := range model.AllPriorities {
		parts = append(parts, fmt.Sprintf("%s %.2f", priority, m.ByPriority[priority]))
	}
	fmt.Fprintf(out, "  By Priority: %s\n", strings.Join(parts, " | "))

	assignees := make([]string, 0, len(m.ByAssignee))
	for assignee := range m.ByAssignee {
		assignees = append(assignees, assignee)
	}
	sort.Strings(assignees)
	for _, assignee := range assignees {
		fmt.Fprintf(out, "  %s: %.2f days\n", assignee, m.ByAssignee[assignee])
	}
}

// PrintForecasts prints per-task completion estimates.
func PrintForecasts(out io.Writer, forecasts []analytics.ForecastData) {
	fmt.Fprintln(out, "Forecasts")
	if len(forecasts) == 0 {
		fmt.Fprintln(out, "- nothing outstanding")
		return
	}
	for _, f := range forecasts {
		fmt.Fprintf(out, "- %s | est %s (%d days) | confidence: %s\n",
			f.Title, f.EstimatedCompletionDate.Format(dateLayout), f.DaysRemaining, f.Confidence)
		for _, risk := range f.RiskFactors {
			fmt.Fprintf(out, "    • %s\n", risk)
		}
	}
}

// PrintFull prints every section of the combined report.
func PrintFull(out io.Writer, full Full) {
	fmt.Fprintf(out, "TaskPulse Report (as of %s)\n\n", full.GeneratedAt.Format(dateLayout))
	PrintTeamPerformance(out, full.Performance)
	fmt.Fprintln(out)
	PrintHealth(out, full.Health)
	fmt.Fprintln(out)
	PrintIndividualReports(out, full.Individuals)
	fmt.Fprintln(out)
	PrintBottlenecks(out, full.Bottlenecks)
	fmt.Fprintln(out)
	PrintTrend(out, full.Trend)
	fmt.Fprintln(out)
	PrintCycleTime(out, full.CycleTime)
	fmt.Fprintln(out)
	PrintForecasts(out, full.Forecasts)
}
