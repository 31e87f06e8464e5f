package model

// TaskRequest is the payload forwarded to a task execution backend.
// A nil Task is treated as "noop" by backends; Input is passed through untouched.
type TaskRequest struct {
	Task  *string `json:"task,omitempty"`
	Input any     `json:"input,omitempty"`
}

const NoopTask = "noop"

// TaskName returns the task or NoopTask when it is unset.
func (r *TaskRequest) TaskName() string {
	if r == nil || r.Task == nil {
		return NoopTask
	}
	return *r.Task
}
