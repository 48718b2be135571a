package engine

import (
	"context"
	"fmt"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/storely/automation/store"
	"github.com/storely/automation/types"
	"github.com/storely/automation/utils"
)

const (
	ExecutionPath = "/execution/"
	StepPath      = "/step/"
)

/**
 * executionLog owns the write contract of the audit trail: one
 * parent execution record plus N ordered step records per run.
 * Steps are strictly append-only; a finalized execution is never
 * mutated again. Keys are chosen so the store's key-ordered List
 * reads executions back in start order and steps in step order.
 */
type executionLog struct {
	store store.Store
}

func newExecutionLog(s store.Store) *executionLog {
	return &executionLog{store: s}
}

func executionPrefix(workflowID string) string {
	return ExecutionPath + workflowID
}

func executionKey(e *types.Execution) string {
	return fmt.Sprintf("%020d.%s", e.StartedAt.UnixNano(), e.ID)
}

func stepPrefix(executionID string) string {
	return StepPath + executionID
}

func stepKey(stepNumber int) string {
	return fmt.Sprintf("%06d", stepNumber)
}

func (l *executionLog) startExecution(ctx context.Context, e *types.Execution) error {
	return errors.Trace(l.save(ctx, e))
}

func (l *executionLog) finalizeExecution(ctx context.Context, e *types.Execution) error {
	return errors.Trace(l.save(ctx, e))
}

func (l *executionLog) save(ctx context.Context, e *types.Execution) error {
	b, err := utils.Serialize(e)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(l.store.Set(ctx, executionPrefix(e.WorkflowID), executionKey(e), b))
}

func (l *executionLog) appendStep(ctx context.Context, sr *types.StepResult) error {
	b, err := utils.Serialize(sr)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(l.store.Set(ctx, stepPrefix(sr.ExecutionID), stepKey(sr.StepNumber), b))
}

// listExecutions returns up to limit executions of the workflow,
// newest first. limit defaults to 20.
func (l *executionLog) listExecutions(ctx context.Context, workflowID string, limit int) ([]*types.Execution, error) {
	if limit <= 0 {
		limit = 20
	}

	prefix := executionPrefix(workflowID)
	keys := make([]string, 0)
	err := l.store.List(ctx, prefix, func(key string) bool {
		keys = append(keys, key)
		return true
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	executions := make([]*types.Execution, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		b, err := l.store.Get(ctx, prefix, keys[i])
		if err != nil {
			return nil, errors.Trace(err)
		}
		e := &types.Execution{}
		if err := utils.Unserialize(b, e); err != nil {
			log.Errorf("unserialize execution %s %s failed: %v", prefix, keys[i], err)
			continue
		}
		executions = append(executions, e)
	}
	return executions, nil
}

// listSteps returns the execution's steps ordered by step number
// ascending.
func (l *executionLog) listSteps(ctx context.Context, executionID string) ([]types.StepResult, error) {
	prefix := stepPrefix(executionID)
	keys := make([]string, 0)
	err := l.store.List(ctx, prefix, func(key string) bool {
		keys = append(keys, key)
		return true
	})
	if err != nil {
		return nil, errors.Trace(err)
	}

	steps := make([]types.StepResult, 0, len(keys))
	for _, key := range keys {
		b, err := l.store.Get(ctx, prefix, key)
		if err != nil {
			return nil, errors.Trace(err)
		}
		sr := types.StepResult{}
		if err := utils.Unserialize(b, &sr); err != nil {
			log.Errorf("unserialize step %s %s failed: %v", prefix, key, err)
			continue
		}
		steps = append(steps, sr)
	}
	return steps, nil
}
