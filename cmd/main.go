package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bryan-cox/taskpulse/internal/analytics"
	"github.com/bryan-cox/taskpulse/internal/clipboard"
	"github.com/bryan-cox/taskpulse/internal/dataset"
	"github.com/bryan-cox/taskpulse/internal/model"
	"github.com/bryan-cox/taskpulse/internal/report"
	"github.com/bryan-cox/taskpulse/internal/server"
)

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	filePath    string
	configPath  string
	asOf        string
	startDate   string
	endDate     string
	granularity string
	jsonOutput  bool
	csvOut      string
	jsonOut     string
	copyOutput  bool
	serveAddr   string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "taskpulse",
		Short: "A CLI tool to compute performance metrics and forecasts from a task snapshot.",
		Long: `TaskPulse is a command-line interface for analyzing a YAML snapshot of task
records: team and individual performance, project health, bottlenecks,
completion trends, cycle times, and per-task completion forecasts.`,
	}

	performanceCmd = &cobra.Command{
		Use:   "performance",
		Short: "Windowed team performance metrics.",
		Run:   runPerformanceCommand,
	}

	individualsCmd = &cobra.Command{
		Use:   "individuals",
		Short: "Per-member performance reports with contribution scores.",
		Run:   runIndividualsCommand,
	}

	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Whole-project health snapshot.",
		Run:   runHealthCommand,
	}

	bottlenecksCmd = &cobra.Command{
		Use:   "bottlenecks",
		Short: "Tasks stuck in their current status, ranked by risk.",
		Run:   runBottlenecksCommand,
	}

	trendsCmd = &cobra.Command{
		Use:   "trends",
		Short: "Time-bucketed completed-task trend.",
		Run:   runTrendsCommand,
	}

	cycletimeCmd = &cobra.Command{
		Use:   "cycletime",
		Short: "Cycle-time statistics by priority, assignee, and month.",
		Run:   runCycleTimeCommand,
	}

	forecastCmd = &cobra.Command{
		Use:   "forecast",
		Short: "Per-task completion forecasts.",
		Run:   runForecastCommand,
	}

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Generate the combined report across every metric family.",
		Run:   runReportCommand,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the metrics as a read-only JSON API.",
		Run:   runServeCommand,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&filePath, "file", "tasks.yml", "Path to the YAML task snapshot.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "taskpulse.json", "Path to the heuristics config file (JSONC).")
	rootCmd.PersistentFlags().StringVar(&asOf, "as-of", "", "Reference date for all computations (defaults to now).")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text.")

	for _, cmd := range []*cobra.Command{performanceCmd, individualsCmd, reportCmd} {
		cmd.Flags().StringVar(&startDate, "start-date", "", "Window start (YYYY-MM-DD); unset means the beginning of time.")
		cmd.Flags().StringVar(&endDate, "end-date", "", "Window end (YYYY-MM-DD); unset means the reference date.")
	}
	for _, cmd := range []*cobra.Command{trendsCmd, reportCmd} {
		cmd.Flags().StringVar(&granularity, "granularity", "monthly", "Trend granularity: daily, weekly, monthly, or quarterly.")
	}
	reportCmd.Flags().StringVar(&csvOut, "csv-out", "", "Write CSV summaries using this path prefix or directory.")
	reportCmd.Flags().StringVar(&jsonOut, "json-out", "", "Write the combined report as JSON to this file.")
	reportCmd.Flags().BoolVar(&copyOutput, "copy", false, "Copy the text report to the clipboard.")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to TASKPULSE_ADDR or :8080).")

	rootCmd.AddCommand(performanceCmd)
	rootCmd.AddCommand(individualsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(bottlenecksCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(cycletimeCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
}

// --- Main Application Entry Point ---

func main() {
	// Setup structured JSON logger for errors.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	Execute()
}

// --- Shared Helpers ---

// loadInputs resolves the snapshot, heuristics config, and reference date
// shared by every subcommand.
func loadInputs() (model.Dataset, analytics.Config, time.Time) {
	cfg, err := analytics.LoadConfigFile(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err, "path", configPath)
		os.Exit(1)
	}

	ds, err := dataset.Load(filePath)
	if err != nil {
		slog.Error("failed to load snapshot", "error", err, "path", filePath)
		os.Exit(1)
	}

	now := time.Now()
	if asOf != "" {
		now, err = dataset.ParseDate(asOf)
		if err != nil {
			slog.Error("invalid --as-of date", "error", err, "value", asOf)
			os.Exit(1)
		}
	}
	return ds, cfg, now
}

// resolveWindow turns the date flags into an inclusive window. An unset start
// covers everything; an unset end stops at the reference date.
func resolveWindow(now time.Time) analytics.Window {
	window := analytics.Window{End: now}
	if startDate != "" {
		start, err := dataset.ParseDate(startDate)
		if err != nil {
			slog.Error("invalid --start-date", "error", err, "value", startDate)
			os.Exit(1)
		}
		window.Start = start
	}
	if endDate != "" {
		end, err := dataset.ParseDate(endDate)
		if err != nil {
			slog.Error("invalid --end-date", "error", err, "value", endDate)
			os.Exit(1)
		}
		window.End = end
	}
	if window.End.Before(window.Start) {
		slog.Error("end date cannot be before start date", "start", startDate, "end", endDate)
		os.Exit(1)
	}
	return window
}

func resolveGranularity() analytics.Granularity {
	g, err := analytics.ParseGranularity(granularity)
	if err != nil {
		slog.Error("invalid --granularity", "error", err, "value", granularity)
		os.Exit(1)
	}
	return g
}

// emit prints v as JSON when --json is set, otherwise calls the text printer.
func emit(cmd *cobra.Command, v any, printText func()) {
	if jsonOutput {
		if err := report.WriteJSONTo(cmd.OutOrStdout(), v); err != nil {
			slog.Error("failed to encode json", "error", err)
			os.Exit(1)
		}
		return
	}
	printText()
}

// --- Command Execution Logic ---

func runPerformanceCommand(cmd *cobra.Command, args []string) {
	ds, _, now := loadInputs()
	metrics := analytics.TeamPerformance(ds.Tasks, resolveWindow(now), now)
	emit(cmd, metrics, func() { report.PrintTeamPerformance(cmd.OutOrStdout(), metrics) })
}

func runIndividualsCommand(cmd *cobra.Command, args []string) {
	ds, cfg, now := loadInputs()
	reports := analytics.IndividualReports(ds.Tasks, ds.Members, resolveWindow(now), now, cfg)
	emit(cmd, reports, func() { report.PrintIndividualReports(cmd.OutOrStdout(), reports) })
}

func runHealthCommand(cmd *cobra.Command, args []string) {
	ds, cfg, now := loadInputs()
	health := analytics.AssessHealth(ds.Tasks, now, cfg)
	emit(cmd, health, func() { report.PrintHealth(cmd.OutOrStdout(), health) })
}

func runBottlenecksCommand(cmd *cobra.Command, args []string) {
	ds, cfg, now := loadInputs()
	bottlenecks := analytics.DetectBottlenecks(ds.Tasks, now, cfg)
	emit(cmd, bottlenecks, func() { report.PrintBottlenecks(cmd.OutOrStdout(), bottlenecks) })
}

func runTrendsCommand(cmd *cobra.Command, args []string) {
	ds, _, now := loadInputs()
	trend := analytics.AnalyzeTrend(ds.Tasks, resolveGranularity(), now)
	emit(cmd, trend, func() { report.PrintTrend(cmd.OutOrStdout(), trend) })
}

func runCycleTimeCommand(cmd *cobra.Command, args []string) {
	ds, _, now := loadInputs()
	metrics := analytics.AnalyzeCycleTime(ds.Tasks, now)
	emit(cmd, metrics, func() { report.PrintCycleTime(cmd.OutOrStdout(), metrics) })
}

func runForecastCommand(cmd *cobra.Command, args []string) {
	ds, cfg, now := loadInputs()
	cycle := analytics.AnalyzeCycleTime(ds.Tasks, now)
	forecasts := analytics.Forecast(ds.Tasks, cycle, now, cfg)
	emit(cmd, forecasts, func() { report.PrintForecasts(cmd.OutOrStdout(), forecasts) })
}

func runReportCommand(cmd *cobra.Command, args []string) {
	ds, cfg, now := loadInputs()
	full := report.Build(ds, now, report.Params{
		Window:      resolveWindow(now),
		Granularity: resolveGranularity(),
		Config:      cfg,
	})

	if csvOut != "" {
		if err := report.WriteCSVReports(full, csvOut); err != nil {
			slog.Error("failed to write csv output", "error", err, "path", csvOut)
			os.Exit(1)
		}
	}

	if jsonOut != "" {
		if err := report.WriteJSON(jsonOut, full); err != nil {
			slog.Error("failed to write json output", "error", err, "path", jsonOut)
			os.Exit(1)
		}
	}

	if copyOutput {
		var rendered strings.Builder
		report.PrintFull(&rendered, full)
		if err := clipboard.CopyText(rendered.String()); err != nil {
			slog.Warn("could not copy report to clipboard", "error", err)
		}
	}

	emit(cmd, full, func() { report.PrintFull(cmd.OutOrStdout(), full) })
}

func runServeCommand(cmd *cobra.Command, args []string) {
	// .env is optional; flags and real env still apply without it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	cfg, err := analytics.LoadConfigFile(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err, "path", configPath)
		os.Exit(1)
	}

	addr := serveAddr
	if addr == "" {
		addr = os.Getenv("TASKPULSE_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	ttl := 30 * time.Second
	if raw := os.Getenv("TASKPULSE_TTL"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			slog.Error("invalid TASKPULSE_TTL, want seconds", "value", raw)
			os.Exit(1)
		}
		ttl = time.Duration(seconds) * time.Second
	}

	app := server.New(filePath, 30, ttl, cfg)
	slog.Info("serving metrics", "addr", addr, "snapshot", filePath)
	if err := http.ListenAndServe(addr, app.Router()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
