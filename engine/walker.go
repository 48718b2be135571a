package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/storely/automation/actions"
	"github.com/storely/automation/types"
)

/**
 * walker interprets one workflow graph for one job: a breadth-first
 * walk from the trigger node, logging every visited node as a step.
 * Per-step failures halt only their own branch; an error escaping
 * the whole walk (snapshot unloadable, log sink unreachable) is the
 * caller's to retry.
 */
type walker struct {
	execLog  *executionLog
	registry *actions.Registry
}

func newWalker(execLog *executionLog, registry *actions.Registry) *walker {
	return &walker{execLog: execLog, registry: registry}
}

// workItem pairs a node with the context it will see; action
// outputs fork the context per branch.
type workItem struct {
	nodeID string
	data   types.Data
}

func (w *walker) run(ctx context.Context, wf *types.Workflow, job *types.ExecutionJob) (*types.Execution, []types.StepResult, error) {
	trigger, err := wf.TriggerNode()
	if err != nil {
		// a broken graph cannot be fixed by retrying the job
		return nil, nil, types.NewFatalError(err)
	}

	exec := &types.Execution{
		ID:          uuid.NewString(),
		WorkflowID:  wf.ID,
		TriggeredBy: job.TriggeredBy,
		Status:      types.ExecutionRunning,
		IsTestRun:   job.IsTestRun,
		StartedAt:   time.Now(),
	}
	if err := w.execLog.startExecution(ctx, exec); err != nil {
		return nil, nil, errors.Trace(err)
	}

	payload := job.EventData
	if payload == nil {
		payload = types.Data{}
	}

	steps := make([]types.StepResult, 0, len(wf.Nodes))
	appendStep := func(sr types.StepResult) error {
		sr.ExecutionID = exec.ID
		sr.StepNumber = len(steps) + 1
		if err := w.execLog.appendStep(ctx, &sr); err != nil {
			return errors.Annotatef(err, "append step %d", sr.StepNumber)
		}
		steps = append(steps, sr)
		return nil
	}

	// the trigger performs no work; it is logged so the trace shows
	// where the run entered the graph
	err = appendStep(types.StepResult{
		NodeID:    trigger.ID,
		NodeKind:  types.NodeTrigger,
		NodeLabel: trigger.Data.Label,
		Input:     payload.Clone(),
		Output:    payload.Clone(),
		Status:    types.StepCompleted,
	})
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	queue := make([]workItem, 0, len(wf.Edges))
	for _, edge := range wf.EdgesFrom(trigger.ID) {
		queue = append(queue, workItem{nodeID: edge.Target, data: payload})
	}

	// a true cycle would otherwise never terminate; diamond fan-in
	// below this bound still visits the join node once per branch
	maxSteps := len(wf.Nodes)*len(wf.Edges) + 1
	if maxSteps < 256 {
		maxSteps = 256
	}

	for len(queue) > 0 {
		if len(steps) >= maxSteps {
			item := queue[0]
			err = appendStep(types.StepResult{
				NodeID: item.nodeID,
				Status: types.StepFailed,
				Error:  fmt.Sprintf("walk aborted after %d steps, workflow graph likely contains a cycle", maxSteps),
			})
			if err != nil {
				return nil, nil, errors.Trace(err)
			}
			break
		}

		item := queue[0]
		queue = queue[1:]

		node, exists := wf.Node(item.nodeID)
		if !exists {
			err = appendStep(types.StepResult{
				NodeID: item.nodeID,
				Input:  item.data.Clone(),
				Status: types.StepFailed,
				Error:  fmt.Sprintf("node %s not found in workflow graph", item.nodeID),
			})
			if err != nil {
				return nil, nil, errors.Trace(err)
			}
			continue
		}

		var (
			sr   types.StepResult
			next []workItem
		)
		switch node.Kind {
		case types.NodeCondition:
			sr, next = w.visitCondition(wf, node, item)
		case types.NodeAction:
			sr, next = w.visitAction(ctx, wf, node, item, job.IsTestRun)
		default:
			sr = types.StepResult{
				NodeID:    node.ID,
				NodeKind:  node.Kind,
				NodeLabel: node.Data.Label,
				Input:     item.data.Clone(),
				Status:    types.StepSkipped,
			}
		}

		if err := appendStep(sr); err != nil {
			return nil, nil, errors.Trace(err)
		}
		queue = append(queue, next...)
	}

	summary := types.ExecutionSummary{TotalSteps: len(steps)}
	for _, sr := range steps {
		summary.Duration += sr.Duration
		if sr.Status == types.StepFailed {
			summary.FailedSteps++
		}
		if sr.NodeKind == types.NodeAction && sr.Status == types.StepCompleted {
			summary.ActionsExecuted++
		}
	}

	exec.Status = types.ExecutionCompleted
	if summary.FailedSteps > 0 {
		exec.Status = types.ExecutionFailed
	}
	exec.Summary = summary
	exec.FinishedAt = time.Now()
	if err := w.execLog.finalizeExecution(ctx, exec); err != nil {
		return nil, nil, errors.Trace(err)
	}

	return exec, steps, nil
}

func (w *walker) visitCondition(wf *types.Workflow, node *types.WorkflowNode, item workItem) (types.StepResult, []workItem) {
	cond := types.ConditionFromConfig(node.Data.Config)

	start := time.Now()
	result := evalCondition(cond, item.data)
	duration := time.Since(start)

	sr := types.StepResult{
		NodeID:    node.ID,
		NodeKind:  types.NodeCondition,
		NodeLabel: node.Data.Label,
		Input:     item.data.Clone(),
		Output: types.Data{
			"result":   result,
			"field":    cond.Field,
			"operator": cond.Operator,
			"value":    cond.Value,
		},
		Status:   types.StepCompleted,
		Duration: duration,
	}

	handle := "false"
	if result {
		handle = "true"
	}

	next := make([]workItem, 0, 2)
	for _, edge := range wf.EdgesFrom(node.ID) {
		// a handle-less edge off a condition is an "always" branch,
		// followed regardless of the result
		if edge.SourceHandle == "" || edge.SourceHandle == handle {
			next = append(next, workItem{nodeID: edge.Target, data: item.data})
		}
	}
	return sr, next
}

func (w *walker) visitAction(ctx context.Context, wf *types.Workflow, node *types.WorkflowNode, item workItem, testRun bool) (types.StepResult, []workItem) {
	sr := types.StepResult{
		NodeID:    node.ID,
		NodeKind:  types.NodeAction,
		NodeLabel: node.Data.Label,
		Input:     item.data.Clone(),
	}

	kind, _ := node.Data.Config.GetString("action_type")
	ex, exists := w.registry.Get(kind)
	if !exists {
		sr.Status = types.StepFailed
		sr.Error = fmt.Sprintf("unknown action type: %s", kind)
		return sr, nil
	}

	start := time.Now()
	output, err := w.invokeExecutor(ctx, ex, node.Data.Config, item.data, testRun)
	sr.Duration = time.Since(start)

	if err != nil {
		sr.Status = types.StepFailed
		sr.Error = err.Error()
		return sr, nil
	}

	sr.Status = types.StepCompleted
	sr.Output = output

	// downstream nodes see both the original payload fields and
	// this action's outputs
	merged := item.data.Merge(output)
	next := make([]workItem, 0, 1)
	for _, edge := range wf.EdgesFrom(node.ID) {
		next = append(next, workItem{nodeID: edge.Target, data: merged})
	}
	return sr, next
}

func (w *walker) invokeExecutor(ctx context.Context, ex types.Executor, config, data types.Data, testRun bool) (output types.Data, retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = errors.Errorf("panic in %s executor: %v", ex.Kind(), r)
		}
	}()
	return ex.Execute(ctx, config, data, testRun)
}
