// Package server exposes the computed metrics over a read-only HTTP API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryan-cox/taskpulse/internal/analytics"
	"github.com/bryan-cox/taskpulse/internal/cache"
	"github.com/bryan-cox/taskpulse/internal/dataset"
	"github.com/bryan-cox/taskpulse/internal/model"
)

// App holds the server's dependencies. Each request re-reads the snapshot
// through a short-TTL cache; computations always use wall-clock now.
type App struct {
	SnapshotPath string
	WindowDays   int
	Config       analytics.Config
	Cache        *cache.Cache
	now          func() time.Time
}

// New creates an App with the given snapshot path, cache TTL, and heuristics.
func New(snapshotPath string, windowDays int, ttl time.Duration, cfg analytics.Config) *App {
	return &App{
		SnapshotPath: snapshotPath,
		WindowDays:   windowDays,
		Config:       cfg,
		Cache:        cache.New(ttl),
		now:          time.Now,
	}
}

// Router builds the chi router with CORS for read-only access.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	RegisterRoutes(r, a)
	return r
}

// RegisterRoutes attaches all metric endpoints.
func RegisterRoutes(r chi.Router, app *App) {
	r.Get("/healthz", app.healthzHandler)
	r.Get("/metrics/performance", app.performanceHandler)
	r.Get("/metrics/individuals", app.individualsHandler)
	r.Get("/metrics/health", app.projectHealthHandler)
	r.Get("/metrics/bottlenecks", app.bottlenecksHandler)
	r.Get("/metrics/trends", app.trendsHandler)
	r.Get("/metrics/cycletime", app.cycleTimeHandler)
	r.Get("/metrics/forecasts", app.forecastsHandler)
}

func (a *App) healthzHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loadSnapshot reads the dataset through the cache.
func (a *App) loadSnapshot() (model.Dataset, error) {
	if cached, ok := a.Cache.Get("snapshot"); ok {
		return cached.(model.Dataset), nil
	}
	ds, err := dataset.Load(a.SnapshotPath)
	if err != nil {
		return model.Dataset{}, err
	}
	a.Cache.Set("snapshot", ds)
	return ds, nil
}

func (a *App) window(now time.Time) analytics.Window {
	return analytics.Window{Start: now.AddDate(0, 0, -a.WindowDays), End: now}
}

func (a *App) performanceHandler(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.snapshotOrError(w)
	if !ok {
		return
	}
	now := a.now()
	respondJSON(w, http.StatusOK, analytics.TeamPerformance(ds.Tasks, a.window(now), now))
}

func (a *App) individualsHandler(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.snapshotOrError(w)
	if !ok {
		return
	}
	now := a.now()
	respondJSON(w, http.StatusOK, analytics.IndividualReports(ds.Tasks, ds.Members, a.window(now), now, a.Config))
}

func (a *App) projectHealthHandler(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.snapshotOrError(w)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, analytics.AssessHealth(ds.Tasks, a.now(), a.Config))
}

func (a *App) bottlenecksHandler(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.snapshotOrError(w)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, analytics.DetectBottlenecks(ds.Tasks, a.now(), a.Config))
}

func (a *App) trendsHandler(w http.ResponseWriter, r *http.Request) {
	granularity := analytics.GranularityMonthly
	if raw := r.URL.Query().Get("granularity"); raw != "" {
		parsed, err := analytics.ParseGranularity(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		granularity = parsed
	}
	ds, ok := a.snapshotOrError(w)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, analytics.AnalyzeTrend(ds.Tasks, granularity, a.now()))
}

func (a *App) cycleTimeHandler(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.snapshotOrError(w)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, analytics.AnalyzeCycleTime(ds.Tasks, a.now()))
}

func (a *App) forecastsHandler(w http.ResponseWriter, r *http.Request) {
	ds, ok := a.snapshotOrError(w)
	if !ok {
		return
	}
	now := a.now()
	cycle := analytics.AnalyzeCycleTime(ds.Tasks, now)
	respondJSON(w, http.StatusOK, analytics.Forecast(ds.Tasks, cycle, now, a.Config))
}

func (a *App) snapshotOrError(w http.ResponseWriter) (model.Dataset, bool) {
	ds, err := a.loadSnapshot()
	if err != nil {
		slog.Error("failed to load snapshot", "error", err, "path", a.SnapshotPath)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "snapshot unavailable"})
		return model.Dataset{}, false
	}
	return ds, true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
