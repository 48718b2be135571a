/**
 * Package actions holds the action executor registry and the
 * built-in action kinds the graph walker dispatches to. Every
 * executor honors the test-run contract: with testRun set it
 * performs no externally observable side effect and returns a
 * payload tagged skipped=true describing what would have happened.
 */
package actions

import (
	"sort"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/storely/automation/types"
)

type Registry struct {
	mu        sync.RWMutex
	executors map[string]types.Executor
}

func NewRegistry() *Registry {
	return &Registry{executors: make(map[string]types.Executor)}
}

/**
 * NewDefaultRegistry builds a registry with the built-in action
 * kinds wired to the given collaborators. A nil mailer or record
 * store is allowed: the affected actions then fail their step at
 * run time instead of at construction, so a site without e.g. mail
 * credentials still runs its other automations.
 */
func NewDefaultRegistry(mailer types.Mailer, records types.RecordStore, webhookTimeout time.Duration) *Registry {
	r := NewRegistry()
	// registering fixed distinct kinds cannot collide
	_ = r.Register(&sendEmail{mailer: mailer})
	_ = r.Register(&addTag{records: records})
	_ = r.Register(newWebhook(webhookTimeout))
	_ = r.Register(&updateStatus{records: records})
	_ = r.Register(&notification{records: records})
	return r
}

func (r *Registry) Register(ex types.Executor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.executors[ex.Kind()]; exists {
		return errors.AlreadyExistsf("action kind: %s", ex.Kind())
	}
	r.executors[ex.Kind()] = ex
	return nil
}

func (r *Registry) Get(kind string) (types.Executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ex, exists := r.executors[kind]
	return ex, exists
}

func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.executors))
	for kind := range r.executors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
