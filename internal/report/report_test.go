package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-cox/taskpulse/internal/analytics"
	"github.com/bryan-cox/taskpulse/internal/model"
)

var reportNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func sampleDataset() model.Dataset {
	completedAt := reportNow.AddDate(0, 0, -5)
	return model.Dataset{
		Members: []model.TeamMember{
			{ID: "m1", Name: "Ada", Email: "ada@example.com"},
			{ID: "m2", Name: "Grace", Email: "grace@example.com"},
		},
		Tasks: []model.Task{
			{
				ID:          "t1",
				Title:       "Ship billing export",
				Status:      model.StatusCompleted,
				Priority:    model.PriorityHigh,
				AssigneeID:  "m1",
				DueDate:     reportNow.AddDate(0, 0, -2),
				CreatedAt:   reportNow.AddDate(0, 0, -15),
				UpdatedAt:   completedAt,
				CompletedAt: &completedAt,
			},
			{
				ID:         "t2",
				Title:      "Migrate audit log",
				Status:     model.StatusBlocked,
				Priority:   model.PriorityCritical,
				AssigneeID: "m2",
				DueDate:    reportNow.AddDate(0, 0, -1),
				CreatedAt:  reportNow.AddDate(0, 0, -20),
				UpdatedAt:  reportNow.AddDate(0, 0, -10),
			},
			{
				ID:                "t3",
				Title:             "Refresh onboarding docs",
				Status:            model.StatusInProgress,
				Priority:          model.PriorityLow,
				AssigneeID:        "m1",
				SupportingMembers: []string{"m2"},
				DueDate:           reportNow.AddDate(0, 0, 14),
				CreatedAt:         reportNow.AddDate(0, 0, -3),
				UpdatedAt:         reportNow.AddDate(0, 0, -1),
			},
		},
	}
}

func sampleParams() Params {
	return Params{
		Window:      analytics.Window{End: reportNow.AddDate(1, 0, 0)},
		Granularity: analytics.GranularityMonthly,
		Config:      analytics.DefaultConfig(),
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	full := Build(sampleDataset(), reportNow, sampleParams())

	assert.Equal(t, reportNow, full.GeneratedAt)
	assert.Equal(t, 3, full.Performance.TotalTasks)
	assert.Equal(t, 1, full.Performance.TotalCompleted)
	assert.Len(t, full.Individuals, 2)
	assert.Equal(t, 1, full.Health.BlockersCount)
	require.NotEmpty(t, full.Bottlenecks)
	assert.Equal(t, "t2", full.Bottlenecks[0].TaskID)
	assert.Len(t, full.Trend.Data, analytics.GranularityMonthly.BucketCount())
	assert.InDelta(t, 10.0, full.CycleTime.AverageCycleTime, 0.001)
	// Completed tasks are never forecast.
	assert.Len(t, full.Forecasts, 2)
}

func TestPrintFullSections(t *testing.T) {
	t.Parallel()

	full := Build(sampleDataset(), reportNow, sampleParams())
	var buf bytes.Buffer
	PrintFull(&buf, full)
	output := buf.String()

	for _, header := range []string{
		"TaskPulse Report (as of 2026-03-15)",
		"Team Performance",
		"Project Health",
		"Individual Performance",
		"Bottlenecks",
		"Completion Trend (monthly)",
		"Cycle Time",
		"Forecasts",
	} {
		assert.Contains(t, output, header)
	}
	assert.Contains(t, output, "Migrate audit log")
}

func TestPrintBottlenecksEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintBottlenecks(&buf, nil)
	assert.Equal(t, "Bottlenecks\n- none\n", buf.String())
}

func TestPrintIndividualReportsOrdering(t *testing.T) {
	t.Parallel()

	reports := []analytics.IndividualPerformanceReport{
		{MemberID: "m1", MemberName: "Ada", ContributionScore: 10},
		{MemberID: "m2", MemberName: "Grace", ContributionScore: 55},
	}
	var buf bytes.Buffer
	PrintIndividualReports(&buf, reports)
	output := buf.String()

	assert.Less(t, strings.Index(output, "Grace"), strings.Index(output, "Ada"))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	full := Build(sampleDataset(), reportNow, sampleParams())
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(path, full))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Full
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, full.GeneratedAt, decoded.GeneratedAt)
	assert.Equal(t, full.Performance.TotalTasks, decoded.Performance.TotalTasks)
}

func TestWriteJSONTo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSONTo(&buf, map[string]int{"tasks": 3}))
	assert.Equal(t, "{\n  \"tasks\": 3\n}\n", buf.String())
}

func TestWriteCSVReports(t *testing.T) {
	t.Parallel()

	full := Build(sampleDataset(), reportNow, sampleParams())
	dir := t.TempDir()
	require.NoError(t, WriteCSVReports(full, dir))

	for _, name := range []string{
		"taskpulse-bottlenecks.csv",
		"taskpulse-trend.csv",
		"taskpulse-cycletime.csv",
		"taskpulse-forecasts.csv",
		"taskpulse-individuals.csv",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	trend, err := os.ReadFile(filepath.Join(dir, "taskpulse-trend.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(trend)), "\n")
	// Header plus one row per monthly bucket.
	assert.Len(t, lines, 13)
	assert.Equal(t, "label,period_start,period_end,completed", lines[0])

	individuals, err := os.ReadFile(filepath.Join(dir, "taskpulse-individuals.csv"))
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(string(individuals)), "\n")))
}

func TestWriteCSVReportsPrefix(t *testing.T) {
	t.Parallel()

	full := Build(sampleDataset(), reportNow, sampleParams())
	prefix := filepath.Join(t.TempDir(), "sprint-12")
	require.NoError(t, WriteCSVReports(full, prefix))

	_, err := os.Stat(prefix + "-trend.csv")
	assert.NoError(t, err)
}

func TestWriteCSVReportsEmptyPath(t *testing.T) {
	t.Parallel()

	assert.Error(t, WriteCSVReports(Full{}, "  "))
}
