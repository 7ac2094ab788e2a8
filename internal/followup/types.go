// Package followup stores manual follow-up tasks for the business owner.
//
// Tasks are created by the assistant when a conversation needs personal
// attention (quote follow-ups, contract questions, callback requests) and
// worked from the admin side. This package only creates and lists them;
// task lifecycle beyond creation belongs to the admin tooling.
package followup

import (
	"fmt"
	"time"
)

// TaskType identifies the kind of follow-up needed.
type TaskType string

const (
	TaskCallBack        TaskType = "call_back"
	TaskSendQuote       TaskType = "send_quote"
	TaskAnswerQuestion  TaskType = "answer_question"
	TaskScheduleMeeting TaskType = "schedule_meeting"
)

// Priority orders tasks in the admin queue.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status tracks a task through the admin queue.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Task is one follow-up item.
type Task struct {
	ID          string    `json:"id"` // UUIDv7
	PhoneNumber string    `json:"phone_number"`
	Type        TaskType  `json:"task_type"`
	Priority    Priority  `json:"priority"`
	Notes       string    `json:"notes"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ParseTaskType validates a wire-format task type.
func ParseTaskType(s string) (TaskType, error) {
	switch TaskType(s) {
	case TaskCallBack, TaskSendQuote, TaskAnswerQuestion, TaskScheduleMeeting:
		return TaskType(s), nil
	}
	return "", fmt.Errorf("unknown task type %q", s)
}

// ParsePriority validates a wire-format priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}
