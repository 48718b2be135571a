package types

import "context"

type Engine interface {
	/**
	 * Start registers event listeners, reloads persisted jobs and
	 * cron schedules, and (unless DisableAutoStart) launches the
	 * worker loop. A disabled engine treats Start as a no-op.
	 */
	Start() error
	/**
	 * Close shuts the worker pool and queue down gracefully:
	 * in-flight jobs finish, waiting jobs stay persisted for the
	 * next start.
	 */
	Close(ctx context.Context) error
	/**
	 * caller self invoking RunOnce, EngineOption DisableAutoStart
	 * should be applied.
	 */
	RunOnce() error

	SaveWorkflow(ctx context.Context, w *Workflow) error
	GetWorkflow(ctx context.Context, workflowID string) (*Workflow, error)
	// ListWorkflowsByTrigger returns the active workflows whose
	// trigger_type matches.
	ListWorkflowsByTrigger(ctx context.Context, triggerType string) ([]*Workflow, error)

	/**
	 * HandleEvent enqueues one job per active workflow matching the
	 * event type. Zero matches is a normal outcome, not an error.
	 */
	HandleEvent(eventType string, payload Data) error
	// TriggerWorkflow enqueues exactly one job and returns its ID.
	// A nil custom payload falls back to the canned sample payload
	// for the workflow's trigger type.
	TriggerWorkflow(ctx context.Context, workflowID, triggeredBy string, custom Data) (string, error)
	// TestRunWorkflow walks the graph synchronously with the
	// test-run flag set, bypassing the queue. No executor performs
	// an externally observable side effect.
	TestRunWorkflow(ctx context.Context, workflowID string, custom Data) ([]StepResult, error)

	ListExecutions(ctx context.Context, workflowID string, limit int) ([]*Execution, error)
	ListSteps(ctx context.Context, executionID string) ([]StepResult, error)

	QueueStats() QueueStats

	// Bus exposes the engine-owned event bus for wiring site events.
	Bus() EventBus
}

type EventHandler func(eventType string, payload Data)

/**
 * EventBus is process-wide subscription state owned by the engine's
 * lifecycle: constructed on Start, cleared on Close. It is kept off
 * package globals so multiple engines and test harnesses coexist.
 */
type EventBus interface {
	Subscribe(eventType string, handler EventHandler)
	Emit(eventType string, payload Data)
	Reset()
}

/**
 * Executor performs one action kind. When testRun is true it must
 * perform no externally observable side effect and instead return a
 * payload describing what would have happened, tagged skipped=true.
 * Errors (including network and data-access failures) are surfaced
 * by returning them; the walker records them uniformly as a failed
 * step.
 */
type Executor interface {
	Kind() string
	Execute(ctx context.Context, config, runCtx Data, testRun bool) (Data, error)
}

// Mailer is the outbound mail collaborator consumed by the
// send_email action.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// RecordStore is the site-data collaborator consumed by the
// add_tag, update_status and notification actions.
type RecordStore interface {
	AddTag(ctx context.Context, recordType, recordID, tag string) error
	UpdateStatus(ctx context.Context, recordType, recordID, status string) error
	CreateNotification(ctx context.Context, title, message string) error
}
