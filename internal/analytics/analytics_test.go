package analytics

import (
	"time"

	"github.com/bryan-cox/taskpulse/internal/model"
)

// testNow is the injected reference time for every test in this package.
var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(days int) time.Time {
	return testNow.AddDate(0, 0, -days)
}

func daysAhead(days int) time.Time {
	return testNow.AddDate(0, 0, days)
}

type taskOpt func(*model.Task)

// newTask builds a task with sensible defaults: created 20 days ago, due 10
// days out, medium priority, assigned to m1. Completed tasks get a
// completion timestamp 5 days ago unless overridden.
func newTask(id string, status model.Status, opts ...taskOpt) model.Task {
	task := model.Task{
		ID:         id,
		Title:      "Task " + id,
		Status:     status,
		Priority:   model.PriorityMedium,
		AssigneeID: "m1",
		CreatedAt:  daysAgo(20),
		UpdatedAt:  daysAgo(1),
		DueDate:    daysAhead(10),
	}
	for _, opt := range opts {
		opt(&task)
	}
	if task.Status == model.StatusCompleted && task.CompletedAt == nil {
		done := daysAgo(5)
		task.CompletedAt = &done
	}
	return task
}

func withPriority(p model.Priority) taskOpt {
	return func(t *model.Task) { t.Priority = p }
}

func withAssignee(id string) taskOpt {
	return func(t *model.Task) { t.AssigneeID = id }
}

func withCreated(at time.Time) taskOpt {
	return func(t *model.Task) { t.CreatedAt = at }
}

func withUpdated(at time.Time) taskOpt {
	return func(t *model.Task) { t.UpdatedAt = at }
}

func withCompleted(at time.Time) taskOpt {
	return func(t *model.Task) { t.CompletedAt = &at }
}

func withDue(at time.Time) taskOpt {
	return func(t *model.Task) { t.DueDate = at }
}

func withDeps(ids ...string) taskOpt {
	return func(t *model.Task) { t.Dependencies = ids }
}

func withSupport(ids ...string) taskOpt {
	return func(t *model.Task) { t.SupportingMembers = ids }
}

func withHistory(changes ...model.StatusChange) taskOpt {
	return func(t *model.Task) { t.StatusHistory = changes }
}

// allTime is a window covering every task.
var allTime = Window{End: testNow.AddDate(10, 0, 0)}
