package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-cox/taskpulse/internal/model"
)

func TestAssessHealthEmptyDataset(t *testing.T) {
	t.Parallel()

	h := AssessHealth(nil, testNow, DefaultConfig())

	assert.Zero(t, h.TotalTasks)
	assert.Zero(t, h.OverallProgress)
	require.Len(t, h.StatusDistribution, 4)
	require.Len(t, h.PriorityDistribution, 4)
	for _, status := range model.AllStatuses {
		assert.Zero(t, h.StatusDistribution[status])
	}
	assert.Equal(t, RiskLow, h.RiskLevel)
	assert.Equal(t, VelocityDecreasing, h.VelocityTrend)
	assert.Equal(t, testNow, h.PredictedCompletionDate)
}

func TestAssessHealthDistributionsSumToTotal(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		newTask("a", model.StatusCompleted, withPriority(model.PriorityCritical)),
		newTask("b", model.StatusInProgress, withPriority(model.PriorityHigh)),
		newTask("c", model.StatusBlocked, withPriority(model.PriorityLow)),
		newTask("d", model.StatusPending),
		newTask("e", model.StatusPending),
	}

	h := AssessHealth(tasks, testNow, DefaultConfig())

	statusSum := 0
	for _, count := range h.StatusDistribution {
		statusSum += count
	}
	prioritySum := 0
	for _, count := range h.PriorityDistribution {
		prioritySum += count
	}
	assert.Equal(t, h.TotalTasks, statusSum)
	assert.Equal(t, h.TotalTasks, prioritySum)
	assert.Equal(t, 1, h.BlockersCount)
	assert.InDelta(t, 20, h.OverallProgress, 0.001)
}

func TestAssessHealthDeadlineBuckets(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		newTask("overdue", model.StatusPending, withDue(daysAgo(1))),
		newTask("soon", model.StatusPending, withDue(daysAhead(3))),
		newTask("edge", model.StatusPending, withDue(daysAhead(7))),
		newTask("far", model.StatusPending, withDue(daysAhead(8))),
		// Completed tasks never show up in deadline lists.
		newTask("done", model.StatusCompleted, withDue(daysAgo(3))),
	}

	h := AssessHealth(tasks, testNow, DefaultConfig())

	require.Len(t, h.OverdueActions, 1)
	assert.Equal(t, "overdue", h.OverdueActions[0].ID)
	require.Len(t, h.UpcomingDeadlines, 2)
	assert.Equal(t, "soon", h.UpcomingDeadlines[0].ID)
	assert.Equal(t, "edge", h.UpcomingDeadlines[1].ID)
}

func TestRiskLevelTiers(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	tests := []struct {
		overdue  int
		blockers int
		want     string
	}{
		{0, 0, RiskLow},
		{2, 0, RiskLow},
		{3, 0, RiskMedium},
		{0, 1, RiskMedium},
		{6, 0, RiskHigh},
		{0, 3, RiskHigh},
		{11, 0, RiskCritical},
		{0, 6, RiskCritical},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(fmt.Sprintf("overdue=%d blockers=%d", testCase.overdue, testCase.blockers), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, riskLevel(testCase.overdue, testCase.blockers, cfg))
		})
	}
}

func TestVelocityTrendThresholds(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, VelocityIncreasing, velocityTrend(80, cfg))
	assert.Equal(t, VelocityStable, velocityTrend(70, cfg))
	assert.Equal(t, VelocityStable, velocityTrend(50, cfg))
	assert.Equal(t, VelocityDecreasing, velocityTrend(40, cfg))
	assert.Equal(t, VelocityDecreasing, velocityTrend(10, cfg))
}

func TestAssessHealthPredictedCompletion(t *testing.T) {
	t.Parallel()

	// Two completions of 4 days each, three outstanding tasks:
	// predicted = now + 3*4 days.
	tasks := []model.Task{
		newTask("a", model.StatusCompleted, withCreated(daysAgo(9)), withCompleted(daysAgo(5))),
		newTask("b", model.StatusCompleted, withCreated(daysAgo(9)), withCompleted(daysAgo(5))),
		newTask("c", model.StatusPending),
		newTask("d", model.StatusPending),
		newTask("e", model.StatusInProgress),
	}

	h := AssessHealth(tasks, testNow, DefaultConfig())

	assert.InDelta(t, 4, h.AverageCycleTime, 0.001)
	assert.Equal(t, testNow.AddDate(0, 0, 12), h.PredictedCompletionDate)
}
