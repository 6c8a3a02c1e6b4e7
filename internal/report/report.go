// Package report renders and exports the computed metrics.
package report

import (
	"time"

	"github.com/bryan-cox/taskpulse/internal/analytics"
	"github.com/bryan-cox/taskpulse/internal/model"
)

// Params selects what a full report covers.
type Params struct {
	Window      analytics.Window
	Granularity analytics.Granularity
	Config      analytics.Config
}

// Full bundles every metric family into one combined report.
type Full struct {
	GeneratedAt time.Time                               `json:"generatedAt"`
	Performance analytics.TeamPerformanceMetrics        `json:"performance"`
	Individuals []analytics.IndividualPerformanceReport `json:"individuals"`
	Health      analytics.ProjectHealthMetrics          `json:"health"`
	Bottlenecks []analytics.BottleneckAnalysis          `json:"bottlenecks"`
	Trend       analytics.CompletionTrend               `json:"trend"`
	CycleTime   analytics.CycleTimeMetrics              `json:"cycleTime"`
	Forecasts   []analytics.ForecastData                `json:"forecasts"`
}

// Build runs every calculator over the snapshot with the same injected now.
func Build(ds model.Dataset, now time.Time, params Params) Full {
	cycle := analytics.AnalyzeCycleTime(ds.Tasks, now)
	return Full{
		GeneratedAt: now,
		Performance: analytics.TeamPerformance(ds.Tasks, params.Window, now),
		Individuals: analytics.IndividualReports(ds.Tasks, ds.Members, params.Window, now, params.Config),
		Health:      analytics.AssessHealth(ds.Tasks, now, params.Config),
		Bottlenecks: analytics.DetectBottlenecks(ds.Tasks, now, params.Config),
		Trend:       analytics.AnalyzeTrend(ds.Tasks, params.Granularity, now),
		CycleTime:   cycle,
		Forecasts:   analytics.Forecast(ds.Tasks, cycle, now, params.Config),
	}
}
