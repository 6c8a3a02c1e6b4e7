// Package dataset loads task snapshots from disk.
package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bryan-cox/taskpulse/internal/model"
)

// Load reads a YAML snapshot of tasks and team members.
func Load(filePath string) (model.Dataset, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("could not read snapshot '%s': %w", filePath, err)
	}

	var ds model.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return model.Dataset{}, fmt.Errorf("could not parse YAML from '%s': %w", filePath, err)
	}

	warnAnomalies(ds)
	return ds, nil
}

// warnAnomalies logs tolerated data problems. The engine never rejects or
// repairs them; a warning keeps upstream bugs visible without masking them.
func warnAnomalies(ds model.Dataset) {
	for _, task := range ds.Tasks {
		if task.Status == model.StatusCompleted && task.CompletedAt == nil {
			slog.Warn("completed task has no completed_at, excluded from cycle-time aggregates", "task", task.ID)
		}
		if task.CompletedAt != nil && task.CompletedAt.Before(task.CreatedAt) {
			slog.Warn("task completed before it was created, cycle time will be negative", "task", task.ID)
		}
	}
}

// dateLayouts are the accepted formats for CLI-supplied dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

// ParseDate parses a date flag value, accepting RFC3339, YYYY-MM-DD, and
// YYYY-MM-DD HH:MM:SS.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %s", value)
}
