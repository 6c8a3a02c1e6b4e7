// Package model defines the core data structures for TaskPulse.
package model

import "time"

// Status is the lifecycle state of a task. Exactly one value is active at a
// time; transitions are recorded in the task's status history by the workflow
// layer, never by this engine.
type Status string

// Task status values.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusBlocked    Status = "blocked"
	StatusCompleted  Status = "completed"
)

// AllStatuses lists every status in display order. Aggregations iterate this
// slice so adding a status surfaces in every distribution at once.
var AllStatuses = []Status{StatusPending, StatusInProgress, StatusBlocked, StatusCompleted}

// Priority is the business priority of a task.
type Priority string

// Task priority values.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// AllPriorities lists every priority in display order.
var AllPriorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// StatusChange is one entry in a task's append-only status history.
type StatusChange struct {
	From      Status    `yaml:"from" json:"from"`
	To        Status    `yaml:"to" json:"to"`
	ChangedAt time.Time `yaml:"changed_at" json:"changedAt"`
	ChangedBy string    `yaml:"changed_by" json:"changedBy"`
}

// Task represents a single unit of trackable work.
type Task struct {
	ID                string         `yaml:"id" json:"id"`
	Title             string         `yaml:"title" json:"title"`
	Status            Status         `yaml:"status" json:"status"`
	Priority          Priority       `yaml:"priority" json:"priority"`
	AssigneeID        string         `yaml:"assignee" json:"primaryAssignee"`
	SupportingMembers []string       `yaml:"supporting,omitempty" json:"supportingMembers,omitempty"`
	Dependencies      []string       `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	DueDate           time.Time      `yaml:"due_date" json:"dueDate"`
	CreatedAt         time.Time      `yaml:"created_at" json:"createdAt"`
	UpdatedAt         time.Time      `yaml:"updated_at" json:"updatedAt"`
	CompletedAt       *time.Time     `yaml:"completed_at,omitempty" json:"completedAt,omitempty"`
	StatusHistory     []StatusChange `yaml:"history,omitempty" json:"statusHistory,omitempty"`
}

// IsCompleted reports whether the task has reached its terminal status.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// CycleTimeDays returns the elapsed days between creation and completion.
// The second return is false when no completion timestamp is recorded, which
// excludes the task from cycle-time aggregates. A completion earlier than
// creation yields a negative value rather than being clamped.
func (t Task) CycleTimeDays() (float64, bool) {
	if t.CompletedAt == nil {
		return 0, false
	}
	return t.CompletedAt.Sub(t.CreatedAt).Hours() / 24, true
}

// Overdue reports whether a not-completed task is past its due date.
func (t Task) Overdue(now time.Time) bool {
	return !t.IsCompleted() && t.DueDate.Before(now)
}

// StatusStartedAt returns when the task entered its current status: the last
// history entry, or creation time for tasks that never changed status.
func (t Task) StatusStartedAt() time.Time {
	if len(t.StatusHistory) == 0 {
		return t.CreatedAt
	}
	return t.StatusHistory[len(t.StatusHistory)-1].ChangedAt
}

// TeamMember is a person tasks can be assigned to. Identity is by ID.
type TeamMember struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email" json:"email"`
}

// Dataset is the read-only snapshot handed to the analytics engine.
type Dataset struct {
	Members []TeamMember `yaml:"members" json:"members"`
	Tasks   []Task       `yaml:"tasks" json:"tasks"`
}
