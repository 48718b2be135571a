package types

type ExecutionStatus string

const (
	ExecutionRunning   ExecutionStatus = "running"
	ExecutionCompleted ExecutionStatus = "completed"
	ExecutionFailed    ExecutionStatus = "failed"
)

type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
	StepSkipped   StepStatus = "skipped"
)

type WorkflowStatus string

const (
	WorkflowActive   WorkflowStatus = "active"
	WorkflowInactive WorkflowStatus = "inactive"
)

type NodeKind string

const (
	NodeTrigger   NodeKind = "trigger"
	NodeCondition NodeKind = "condition"
	NodeAction    NodeKind = "action"
)

// QueueStats is a point-in-time snapshot of the job queue for
// operational visibility.
type QueueStats struct {
	Waiting   int
	Active    int
	Completed int
	Failed    int
}

// TriggerSchedule is the trigger type reserved for cron-driven
// workflows; it is fired by the engine's scheduler, not by the
// event bus.
const TriggerSchedule = "schedule"

// DefaultTriggerTypes lists the business events the engine
// subscribes to at startup.
func DefaultTriggerTypes() []string {
	return []string{
		"order.placed",
		"order.fulfilled",
		"customer.created",
		"product.updated",
		"form.submitted",
		"appointment.booked",
	}
}
