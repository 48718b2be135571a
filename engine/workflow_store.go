package engine

import (
	"context"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/storely/automation/types"
	"github.com/storely/automation/utils"
)

const (
	WorkflowPath = "/workflow/"
)

/**
 * Workflow snapshots live in the same durable store as everything
 * else. The authoring layer owns their content; the engine reads a
 * snapshot once per walk, so in-flight runs never see concurrent
 * edits.
 */
func (e *engine) SaveWorkflow(ctx context.Context, w *types.Workflow) error {
	if w.ID == "" {
		return errors.BadRequestf("workflow id is empty")
	}
	if w.Status == "" {
		w.Status = types.WorkflowActive
	}

	b, err := utils.Serialize(w)
	if err != nil {
		return errors.Trace(err)
	}
	if err := e.store.Set(ctx, WorkflowPath, w.ID, b); err != nil {
		return errors.Trace(err)
	}

	// pick up cron changes without a restart
	if e.isRunning() {
		e.sched.reload(ctx)
	}
	return nil
}

func (e *engine) GetWorkflow(ctx context.Context, workflowID string) (*types.Workflow, error) {
	b, err := e.store.Get(ctx, WorkflowPath, workflowID)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if b == nil {
		return nil, errors.NotFoundf("workflow %s", workflowID)
	}

	w := &types.Workflow{}
	if err := utils.Unserialize(b, w); err != nil {
		return nil, errors.Annotatef(err, "unserialize workflow %s", workflowID)
	}
	return w, nil
}

// ListWorkflowsByTrigger returns the active workflows whose
// trigger_type matches.
func (e *engine) ListWorkflowsByTrigger(ctx context.Context, triggerType string) ([]*types.Workflow, error) {
	ids := make([]string, 0)
	err := e.store.List(ctx, WorkflowPath, func(key string) bool {
		ids = append(ids, key)
		return true
	})
	if err != nil {
		return nil, errors.Trace(err)
	}

	flows := make([]*types.Workflow, 0)
	for _, id := range ids {
		b, err := e.store.Get(ctx, WorkflowPath, id)
		if err != nil {
			return nil, errors.Trace(err)
		}
		w := &types.Workflow{}
		if err := utils.Unserialize(b, w); err != nil {
			log.Errorf("unserialize workflow %s from store failed: %v", id, err)
			continue
		}
		if w.Status == types.WorkflowActive && w.TriggerType == triggerType {
			flows = append(flows, w)
		}
	}
	return flows, nil
}
