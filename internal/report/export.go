package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/bryan-cox/taskpulse/internal/model"
)

// WriteJSONTo streams v as indented JSON to out.
func WriteJSONTo(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteJSON writes v as indented JSON, atomically so a crashed export never
// leaves a truncated file behind.
func WriteJSON(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	payload = append(payload, '\n')
	return atomic.WriteFile(path, bytes.NewReader(payload))
}

// WriteCSVReports writes one CSV summary per metric family using the given
// path prefix (or directory).
func WriteCSVReports(full Full, output string) error {
	basePath, err := resolveCSVBase(output)
	if err != nil {
		return err
	}

	if err := writeBottleneckCSV(basePath+"-bottlenecks.csv", full); err != nil {
		return err
	}
	if err := writeTrendCSV(basePath+"-trend.csv", full); err != nil {
		return err
	}
	if err := writeCycleTimeCSV(basePath+"-cycletime.csv", full); err != nil {
		return err
	}
	if err := writeForecastCSV(basePath+"-forecasts.csv", full); err != nil {
		return err
	}
	return writeIndividualCSV(basePath+"-individuals.csv", full)
}

func resolveCSVBase(output string) (string, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return "", fmt.Errorf("csv output path is empty")
	}
	info, err := os.Stat(output)
	if err == nil && info.IsDir() {
		return filepath.Join(output, "taskpulse"), nil
	}
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	return strings.TrimSuffix(output, ".csv"), nil
}

// writeCSV buffers the whole file and writes it atomically.
func writeCSV(path string, records [][]string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return atomic.WriteFile(path, &buf)
}

func formatFloat(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}

func writeBottleneckCSV(path string, full Full) error {
	records := [][]string{{
		"task_id", "title", "status", "priority", "days_in_status", "risk_score",
		"blocking_factors", "suggested_actions",
	}}
	for _, b := range full.Bottlenecks {
		records = append(records, []string{
			b.TaskID,
			b.Title,
			string(b.Status),
			string(b.Priority),
			strconv.Itoa(b.DaysInStatus),
			strconv.Itoa(b.RiskScore),
			strings.Join(b.BlockingFactors, "; "),
			strings.Join(b.SuggestedActions, "; "),
		})
	}
	return writeCSV(path, records)
}

func writeTrendCSV(path string, full Full) error {
	records := [][]string{{"label", "period_start", "period_end", "completed"}}
	for _, point := range full.Trend.Data {
		records = append(records, []string{
			point.Label,
			point.PeriodStart.Format(dateLayout),
			point.PeriodEnd.Format(dateLayout),
			formatFloat(point.Value, 0),
		})
	}
	return writeCSV(path, records)
}

func writeCycleTimeCSV(path string, full Full) error {
	records := [][]string{{"bucket", "avg_days"}}
	records = append(records, []string{"overall", formatFloat(full.CycleTime.AverageCycleTime, 2)})
	records = append(records, []string{"median", formatFloat(full.CycleTime.Median, 2)})
	records = append(records, []string{"p90", formatFloat(full.CycleTime.Percentile90, 2)})
	for _, priority := range model.AllPriorities {
		records = append(records, []string{string(priority), formatFloat(full.CycleTime.ByPriority[priority], 2)})
	}
	return writeCSV(path, records)
}

func writeForecastCSV(path string, full Full) error {
	records := [][]string{{"task_id", "title", "estimated_completion", "days_remaining", "confidence", "risk_factors"}}
	for _, f := range full.Forecasts {
		records = append(records, []string{
			f.TaskID,
			f.Title,
			f.EstimatedCompletionDate.Format(dateLayout),
			strconv.Itoa(f.DaysRemaining),
			f.Confidence,
			strings.Join(f.RiskFactors, "; "),
		})
	}
	return writeCSV(path, records)
}

func writeIndividualCSV(path string, full Full) error {
	records := [][]string{{
		"member_id", "member_name", "total", "completed", "in_progress",
		"completion_rate", "on_time_rate", "contribution_score",
	}}
	for _, r := range full.Individuals {
		records = append(records, []string{
			r.MemberID,
			r.MemberName,
			strconv.Itoa(r.Metrics.TotalTasks),
			strconv.Itoa(r.Metrics.TotalCompleted),
			strconv.Itoa(r.Metrics.TotalInProgress),
			formatFloat(r.Metrics.CompletionRate, 1),
			formatFloat(r.Metrics.OnTimeCompletionRate, 1),
			formatFloat(r.ContributionScore, 1),
		})
	}
	return writeCSV(path, records)
}
