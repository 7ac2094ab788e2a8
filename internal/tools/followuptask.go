package tools

import (
	"fmt"

	"github.com/m10dj/sms-agent/internal/followup"
)

// followUpResult is the create_follow_up_task contract. A failed insert
// degrades to success=false: the conversation continues either way, and
// the owner still sees the exchange in the audit log.
type followUpResult struct {
	Success bool   `json:"success"`
	TaskID  string `json:"task_id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r *Registry) createFollowUpTask(args map[string]any) (any, error) {
	phone := argString(args, "phone_number")
	if phone == "" {
		return nil, fmt.Errorf("phone_number is required")
	}
	taskType, err := followup.ParseTaskType(argString(args, "task_type"))
	if err != nil {
		return nil, err
	}
	priority, err := followup.ParsePriority(argString(args, "priority"))
	if err != nil {
		return nil, err
	}

	task := &followup.Task{
		PhoneNumber: phone,
		Type:        taskType,
		Priority:    priority,
		Notes:       argString(args, "notes"),
	}
	if err := r.tasks.CreateTask(task); err != nil {
		r.logger.Error("follow-up task creation failed", "phone", phone, "error", err)
		return followUpResult{
			Success: false,
			Error:   fmt.Sprintf("Couldn't queue the follow-up, but %s reviews every conversation personally.", r.cfg.OwnerName),
		}, nil
	}

	return followUpResult{
		Success: true,
		TaskID:  task.ID,
		Message: fmt.Sprintf("%s will follow up shortly.", r.cfg.OwnerName),
	}, nil
}
