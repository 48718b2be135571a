package types

import "time"

/**
 * ExecutionJob is the queue message: one job per matched workflow.
 * It is persisted on enqueue and removed once the job completes or
 * exhausts its retries, so pending work survives a restart.
 */
type ExecutionJob struct {
	ID           string    `json:",omitempty"`
	WorkflowID   string    `json:",omitempty"`
	WorkflowName string    `json:",omitempty"`
	TriggeredBy  string    `json:",omitempty"`
	EventData    Data      `json:",omitempty"`
	IsTestRun    bool      `json:",omitempty"`
	Attempts     int       `json:",omitempty"`
	EnqueuedAt   time.Time `json:",omitempty"`
}

// Execution is the aggregate root of one graph walk's audit log.
// Immutable once finalized.
type Execution struct {
	ID          string           `json:",omitempty"`
	WorkflowID  string           `json:",omitempty"`
	TriggeredBy string           `json:",omitempty"`
	Status      ExecutionStatus  `json:",omitempty"`
	IsTestRun   bool             `json:",omitempty"`
	StartedAt   time.Time        `json:",omitempty"`
	FinishedAt  time.Time        `json:",omitempty"`
	Summary     ExecutionSummary `json:",omitempty"`
}

type ExecutionSummary struct {
	TotalSteps      int           `json:",omitempty"`
	ActionsExecuted int           `json:",omitempty"`
	FailedSteps     int           `json:",omitempty"`
	Duration        time.Duration `json:",omitempty"`
}

/**
 * StepResult is one append-only log line per visited node. Step
 * numbers are engine-assigned, start at 1 and strictly reflect
 * visitation order within one execution. Never updated after being
 * written.
 */
type StepResult struct {
	ExecutionID string        `json:",omitempty"`
	StepNumber  int           `json:",omitempty"`
	NodeID      string        `json:",omitempty"`
	NodeKind    NodeKind      `json:",omitempty"`
	NodeLabel   string        `json:",omitempty"`
	Input       Data          `json:",omitempty"`
	Output      Data          `json:",omitempty"`
	Status      StepStatus    `json:",omitempty"`
	Error       string        `json:",omitempty"`
	Duration    time.Duration `json:",omitempty"`
}
