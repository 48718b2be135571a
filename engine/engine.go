package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/storely/automation/actions"
	"github.com/storely/automation/store"
	"github.com/storely/automation/types"
)

func New(s store.Store, registry *actions.Registry, opts *types.EngineOptions) types.Engine {
	return newEngine(s, registry, opts)
}

type engine struct {
	ctx    context.Context
	cancel context.CancelFunc

	opts     *types.EngineOptions
	store    store.Store
	registry *actions.Registry

	bus     *memBus
	queue   *queue
	execLog *executionLog
	sched   *scheduler
	walker  *walker

	mu      sync.Mutex
	running bool
	exitCh  chan struct{}
}

func newEngine(s store.Store, registry *actions.Registry, opts *types.EngineOptions) *engine {
	e := &engine{
		opts:     opts,
		store:    s,
		registry: registry,
	}
	e.ctx, e.cancel = context.WithCancel(opts.Ctx)
	e.bus = newBus()
	e.execLog = newExecutionLog(s)
	e.walker = newWalker(e.execLog, registry)
	e.queue = newQueue(s, e.executeJob, opts)
	e.sched = newScheduler(e)
	return e
}

// executeJob is the queue's worker body: load the workflow snapshot
// and walk it once. Any error propagates to the queue's retry
// policy, which re-executes the entire walk.
func (e *engine) executeJob(ctx context.Context, job *types.ExecutionJob) error {
	wf, err := e.GetWorkflow(ctx, job.WorkflowID)
	if err != nil {
		return errors.Trace(err)
	}
	_, _, err = e.walker.run(ctx, wf, job)
	return errors.Trace(err)
}

func (e *engine) Start() error {
	if !e.opts.Enabled {
		log.Infof("automation engine disabled, not starting")
		return nil
	}

	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = true
	e.mu.Unlock()

	if err := e.queue.reloadJobs(e.ctx); err != nil {
		return errors.Annotatef(err, "reload persisted jobs")
	}

	for _, triggerType := range e.opts.TriggerTypes {
		e.bus.Subscribe(triggerType, func(eventType string, payload types.Data) {
			if err := e.HandleEvent(eventType, payload); err != nil {
				log.Errorf("dispatch event %s failed: %v", eventType, err)
			}
		})
	}

	e.sched.reload(e.ctx)
	e.sched.start()

	if e.opts.AutoStart {
		e.asyncRun()
	}
	return nil
}

func (e *engine) asyncRun() {
	readyCh := make(chan struct{}, 1)

	go func() {
		e.exitCh = make(chan struct{})
		close(readyCh)

		for e.isRunning() {
			if err := e.queue.runOnce(e.ctx); err != nil {
				log.Errorf("queue run failed: %v", err)
			}
			time.Sleep(e.opts.PollInterval)
		}
		close(e.exitCh)
	}()
	<-readyCh
}

func (e *engine) isRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *engine) RunOnce() error {
	return e.queue.runOnce(e.ctx)
}

func (e *engine) Close(ctx context.Context) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = false
	e.mu.Unlock()

	if e.exitCh != nil {
		<-e.exitCh
	}

	e.sched.stop()
	e.bus.Reset()
	err := e.queue.close(ctx)
	e.cancel()
	return errors.Trace(err)
}

func (e *engine) Bus() types.EventBus {
	return e.bus
}

func (e *engine) QueueStats() types.QueueStats {
	return e.queue.stats()
}

/**
 * TriggerWorkflow enqueues exactly one job for the workflow,
 * asynchronously. A nil custom payload falls back to the canned
 * sample for the workflow's trigger type so authors can fire a
 * workflow without crafting an event by hand.
 */
func (e *engine) TriggerWorkflow(ctx context.Context, workflowID, triggeredBy string, custom types.Data) (string, error) {
	if !e.isRunning() {
		return "", errors.MethodNotAllowedf("engine not running")
	}

	wf, err := e.GetWorkflow(ctx, workflowID)
	if err != nil {
		return "", errors.Trace(err)
	}

	payload := custom
	if payload == nil {
		payload = SamplePayload(wf.TriggerType)
	}
	if triggeredBy == "" {
		triggeredBy = "manual"
	}

	job := &types.ExecutionJob{
		WorkflowID:   wf.ID,
		WorkflowName: wf.Name,
		TriggeredBy:  triggeredBy,
		EventData:    payload,
	}
	jobID, err := e.queue.enqueue(ctx, job)
	return jobID, errors.Trace(err)
}

/**
 * TestRunWorkflow walks the graph synchronously with the test-run
 * flag set, bypassing the queue: no retry, no job persistence, the
 * full ordered step list returned immediately for UI preview.
 */
func (e *engine) TestRunWorkflow(ctx context.Context, workflowID string, custom types.Data) ([]types.StepResult, error) {
	wf, err := e.GetWorkflow(ctx, workflowID)
	if err != nil {
		return nil, errors.Trace(err)
	}

	payload := custom
	if payload == nil {
		payload = SamplePayload(wf.TriggerType)
	}

	job := &types.ExecutionJob{
		ID:           uuid.NewString(),
		WorkflowID:   wf.ID,
		WorkflowName: wf.Name,
		TriggeredBy:  "test-run",
		EventData:    payload,
		IsTestRun:    true,
	}
	_, steps, err := e.walker.run(ctx, wf, job)
	return steps, errors.Trace(err)
}

func (e *engine) ListExecutions(ctx context.Context, workflowID string, limit int) ([]*types.Execution, error) {
	return e.execLog.listExecutions(ctx, workflowID, limit)
}

func (e *engine) ListSteps(ctx context.Context, executionID string) ([]types.StepResult, error) {
	return e.execLog.listSteps(ctx, executionID)
}
