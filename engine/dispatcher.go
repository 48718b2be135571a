package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/storely/automation/types"
)

var (
	_ types.EventBus = &memBus{}
)

/**
 * memBus is the engine-owned event bus. Subscriptions are engine
 * lifecycle state: registered on Start, cleared on Close, never
 * package globals, so multiple engines and test harnesses coexist
 * in one process.
 */
type memBus struct {
	mu       sync.RWMutex
	handlers map[string][]types.EventHandler
}

func newBus() *memBus {
	return &memBus{handlers: make(map[string][]types.EventHandler)}
}

func (b *memBus) Subscribe(eventType string, handler types.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit invokes every handler subscribed to the event type
// synchronously, in subscription order.
func (b *memBus) Emit(eventType string, payload types.Data) {
	b.mu.RLock()
	handlers := make([]types.EventHandler, len(b.handlers[eventType]))
	copy(handlers, b.handlers[eventType])
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(eventType, payload)
	}
}

func (b *memBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = make(map[string][]types.EventHandler)
}

/**
 * HandleEvent is the dispatcher: it finds the active workflows
 * whose trigger matches the event type and enqueues one job per
 * match. Zero matches is a normal, silently-logged outcome.
 * Redelivery of the same event enqueues again; idempotency is the
 * producer's concern.
 */
func (e *engine) HandleEvent(eventType string, payload types.Data) error {
	if !e.isRunning() {
		return errors.MethodNotAllowedf("engine not running")
	}

	flows, err := e.ListWorkflowsByTrigger(e.ctx, eventType)
	if err != nil {
		return errors.Trace(err)
	}
	if len(flows) == 0 {
		log.Debugf("no active workflows for event %s", eventType)
		return nil
	}

	triggeredBy := fmt.Sprintf("event:%s:%s", eventType, time.Now().Format(time.RFC3339))
	for _, wf := range flows {
		job := &types.ExecutionJob{
			WorkflowID:   wf.ID,
			WorkflowName: wf.Name,
			TriggeredBy:  triggeredBy,
			EventData:    payload,
		}
		if _, err := e.queue.enqueue(e.ctx, job); err != nil {
			return errors.Annotatef(err, "enqueue workflow %s for event %s", wf.ID, eventType)
		}
	}

	log.Debugf("event %s matched %d workflow(s)", eventType, len(flows))
	return nil
}
