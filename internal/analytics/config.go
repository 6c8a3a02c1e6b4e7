// Package analytics turns a snapshot of task records into performance
// metrics, health assessments, bottleneck rankings, time-bucketed trends,
// cycle-time statistics, and per-task completion forecasts. Every calculator
// is a pure function of (snapshot, now, parameters); nothing here reads the
// wall clock, performs I/O, or mutates its input.
package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Config names the heuristic constants used across the calculators so they
// can be tuned and tested independently.
type Config struct {
	// Bottleneck detection.
	BottleneckThresholdDays int `json:"bottleneck_threshold_days"`
	DaysInStatusWeight      int `json:"days_in_status_weight"`
	BlockedWeight           int `json:"blocked_weight"`
	HighPriorityWeight      int `json:"high_priority_weight"`
	OverdueWeight           int `json:"overdue_weight"`
	MaxRiskScore            int `json:"max_risk_score"`

	// Project health.
	UpcomingDeadlineDays    int     `json:"upcoming_deadline_days"`
	VelocityIncreasingAbove float64 `json:"velocity_increasing_above"`
	VelocityStableAbove     float64 `json:"velocity_stable_above"`
	RiskCriticalOverdue     int     `json:"risk_critical_overdue"`
	RiskCriticalBlockers    int     `json:"risk_critical_blockers"`
	RiskHighOverdue         int     `json:"risk_high_overdue"`
	RiskHighBlockers        int     `json:"risk_high_blockers"`
	RiskMediumOverdue       int     `json:"risk_medium_overdue"`
	RiskMediumBlockers      int     `json:"risk_medium_blockers"`

	// Contribution score.
	CompletedWeight         float64 `json:"completed_weight"`
	InProgressWeight        float64 `json:"in_progress_weight"`
	OnTimeRateWeight        float64 `json:"on_time_rate_weight"`
	HighCompletionRateAbove float64 `json:"high_completion_rate_above"`
	HighCompletionBonus     float64 `json:"high_completion_bonus"`
	RecentActivityLimit     int     `json:"recent_activity_limit"`

	// Forecast adjustments.
	InProgressFactor float64 `json:"in_progress_factor"`
	BlockedFactor    float64 `json:"blocked_factor"`
}

// DefaultConfig returns the stock heuristics.
func DefaultConfig() Config {
	return Config{
		BottleneckThresholdDays: 7,
		DaysInStatusWeight:      5,
		BlockedWeight:           30,
		HighPriorityWeight:      20,
		OverdueWeight:           25,
		MaxRiskScore:            100,

		UpcomingDeadlineDays:    7,
		VelocityIncreasingAbove: 70,
		VelocityStableAbove:     40,
		RiskCriticalOverdue:     10,
		RiskCriticalBlockers:    5,
		RiskHighOverdue:         5,
		RiskHighBlockers:        2,
		RiskMediumOverdue:       2,
		RiskMediumBlockers:      0,

		CompletedWeight:         10,
		InProgressWeight:        5,
		OnTimeRateWeight:        0.5,
		HighCompletionRateAbove: 80,
		HighCompletionBonus:     20,
		RecentActivityLimit:     10,

		InProgressFactor: 0.7,
		BlockedFactor:    1.5,
	}
}

// LoadConfigFile reads heuristic overrides from a JSONC file on top of the
// defaults. A missing file is not an error; omitted fields keep defaults.
func LoadConfigFile(filePath string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file '%s': %w", filePath, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC in '%s': %w", filePath, err)
	}
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config file '%s': %w", filePath, err)
	}

	if cfg.BottleneckThresholdDays < 0 {
		return Config{}, fmt.Errorf("bottleneck_threshold_days cannot be negative")
	}
	if cfg.MaxRiskScore <= 0 {
		return Config{}, fmt.Errorf("max_risk_score must be positive")
	}
	return cfg, nil
}
