package engine

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/storely/automation/types"
)

/**
 * scheduler fires workflows whose trigger type is "schedule": each
 * active one with a trigger_config.cron spec is registered with a
 * cron runner that enqueues a job per tick. Entries are rebuilt
 * whenever a workflow is saved, so edits take effect without a
 * restart.
 */
type scheduler struct {
	mu sync.Mutex

	engine  *engine
	cron    *cron.Cron
	entries []cron.EntryID
}

func newScheduler(e *engine) *scheduler {
	return &scheduler{
		engine: e,
		cron:   cron.New(),
	}
}

func (s *scheduler) start() {
	s.cron.Start()
}

func (s *scheduler) stop() {
	<-s.cron.Stop().Done()
}

// reload drops all entries and re-registers every active schedule
// workflow. Invalid cron specs are logged and skipped rather than
// failing the rest.
func (s *scheduler) reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	s.entries = s.entries[:0]

	flows, err := s.engine.ListWorkflowsByTrigger(ctx, types.TriggerSchedule)
	if err != nil {
		log.Errorf("list schedule workflows failed: %v", err)
		return
	}

	for _, wf := range flows {
		spec, _ := wf.TriggerConfig.GetString("cron")
		if spec == "" {
			log.Warnf("schedule workflow %s has no cron spec, skipping", wf.ID)
			continue
		}

		wf := wf
		id, err := s.cron.AddFunc(spec, func() {
			s.fire(wf, spec)
		})
		if err != nil {
			log.Warnf("schedule workflow %s has invalid cron spec %q: %v", wf.ID, spec, err)
			continue
		}
		s.entries = append(s.entries, id)
	}
}

func (s *scheduler) fire(wf *types.Workflow, spec string) {
	job := &types.ExecutionJob{
		WorkflowID:   wf.ID,
		WorkflowName: wf.Name,
		TriggeredBy:  "schedule:" + spec,
		EventData: types.Data{
			"trigger":      types.TriggerSchedule,
			"scheduled_at": time.Now().Format(time.RFC3339),
		},
	}
	if _, err := s.engine.queue.enqueue(s.engine.ctx, job); err != nil {
		log.Errorf("enqueue scheduled workflow %s failed: %v", wf.ID, err)
	}
}
