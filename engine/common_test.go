package engine

import (
	"context"
	"time"

	"github.com/storely/automation/actions"
	"github.com/storely/automation/store"
	"github.com/storely/automation/store/mem"
	"github.com/storely/automation/types"
)

func newTestOptions() *types.EngineOptions {
	opts := types.NewEngineOptions()
	opts.AutoStart = false
	opts.JobRunAsync = false
	opts.MemStore = true
	opts.PollInterval = time.Millisecond
	return opts
}

func newTestEngine(opts *types.EngineOptions, executors ...types.Executor) (*engine, store.Store) {
	s := mem.NewMemStore()
	registry := actions.NewRegistry()
	for _, ex := range executors {
		if err := registry.Register(ex); err != nil {
			panic(err)
		}
	}
	return newEngine(s, registry, opts), s
}

type fakeExecutor struct {
	kind string
	fn   func(ctx context.Context, config, runCtx types.Data, testRun bool) (types.Data, error)
}

func (f *fakeExecutor) Kind() string {
	return f.kind
}

func (f *fakeExecutor) Execute(ctx context.Context, config, runCtx types.Data, testRun bool) (types.Data, error) {
	return f.fn(ctx, config, runCtx, testRun)
}

func triggerNode(id string) types.WorkflowNode {
	return types.WorkflowNode{
		ID:   id,
		Kind: types.NodeTrigger,
		Data: types.NodeData{Label: "Trigger"},
	}
}

func conditionNode(id, field, operator string, value any) types.WorkflowNode {
	return types.WorkflowNode{
		ID:   id,
		Kind: types.NodeCondition,
		Data: types.NodeData{
			Label:  "Condition",
			Config: types.Data{"field": field, "operator": operator, "value": value},
		},
	}
}

func actionNode(id, actionType string, config types.Data) types.WorkflowNode {
	if config == nil {
		config = types.Data{}
	}
	config["action_type"] = actionType
	return types.WorkflowNode{
		ID:   id,
		Kind: types.NodeAction,
		Data: types.NodeData{Label: "Action " + id, Config: config},
	}
}

func edge(id, source, target, handle string) types.WorkflowEdge {
	return types.WorkflowEdge{ID: id, Source: source, Target: target, SourceHandle: handle}
}

func testWorkflow(id, triggerType string, nodes []types.WorkflowNode, edges []types.WorkflowEdge) *types.Workflow {
	return &types.Workflow{
		ID:          id,
		Name:        "workflow " + id,
		TriggerType: triggerType,
		Status:      types.WorkflowActive,
		Nodes:       nodes,
		Edges:       edges,
	}
}

func testJob(wf *types.Workflow, payload types.Data) *types.ExecutionJob {
	return &types.ExecutionJob{
		ID:           "job-" + wf.ID,
		WorkflowID:   wf.ID,
		WorkflowName: wf.Name,
		TriggeredBy:  "test",
		EventData:    payload,
	}
}
