package engine

import (
	"context"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/google/uuid"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/storely/automation/store"
	"github.com/storely/automation/types"
	"github.com/storely/automation/utils"
)

const (
	QueueJobPath    = "/queue/job/"
	QueueFailedPath = "/queue/failed/"
)

type jobExecutor func(ctx context.Context, job *types.ExecutionJob) error

type queuedJob struct {
	job         *types.ExecutionJob
	active      bool
	nextRunTime time.Time
	lastErr     error
}

// jobRecord is the bounded history entry kept after a job leaves
// the queue, for operator inspection.
type jobRecord struct {
	Job        *types.ExecutionJob `json:",omitempty"`
	Error      string              `json:",omitempty"`
	FinishedAt time.Time           `json:",omitempty"`
}

/**
 * queue is the single shared durable job queue: jobs are persisted
 * on enqueue and survive a restart; a bounded worker pool pulls
 * ready jobs and runs one complete graph walk per job. A failed
 * walk is retried with doubling backoff up to the attempt limit,
 * then retained in the failed history. All producers and workers
 * share it; jobs are peers with no priority.
 */
type queue struct {
	mu sync.Mutex

	store store.Store
	wp    *workerpool.WorkerPool
	exec  jobExecutor
	opts  *types.EngineOptions

	jobs      map[string]*queuedJob
	completed []*jobRecord
	failed    []*jobRecord

	accepting bool
}

func newQueue(s store.Store, exec jobExecutor, opts *types.EngineOptions) *queue {
	return &queue{
		store:     s,
		wp:        workerpool.New(opts.WorkerConcurrency),
		exec:      exec,
		opts:      opts,
		jobs:      make(map[string]*queuedJob),
		accepting: true,
	}
}

func (q *queue) enqueue(ctx context.Context, job *types.ExecutionJob) (string, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.EnqueuedAt = time.Now()

	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.accepting {
		return "", errors.MethodNotAllowedf("queue closed")
	}
	if _, exists := q.jobs[job.ID]; exists {
		return "", errors.AlreadyExistsf("job id: %s", job.ID)
	}

	if err := q.persistJob(ctx, job); err != nil {
		return "", errors.Trace(err)
	}
	q.jobs[job.ID] = &queuedJob{job: job}

	log.Debugf("enqueued job %s for workflow %s (%s)", job.ID, job.WorkflowID, job.TriggeredBy)
	return job.ID, nil
}

func (q *queue) persistJob(ctx context.Context, job *types.ExecutionJob) error {
	b, err := utils.Serialize(job)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(q.store.Set(ctx, QueueJobPath, job.ID, b))
}

// reloadJobs re-queues jobs persisted by a previous process, with
// their attempt counts intact.
func (q *queue) reloadJobs(ctx context.Context) error {
	ids := make([]string, 0)
	err := q.store.List(ctx, QueueJobPath, func(key string) bool {
		ids = append(ids, key)
		return true
	})
	if err != nil {
		return errors.Trace(err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, id := range ids {
		if _, exists := q.jobs[id]; exists {
			continue
		}
		b, err := q.store.Get(ctx, QueueJobPath, id)
		if err != nil {
			return errors.Trace(err)
		}
		job := &types.ExecutionJob{}
		if err := utils.Unserialize(b, job); err != nil {
			log.Errorf("unserialize job %s from store failed: %v", id, err)
			continue
		}
		q.jobs[id] = &queuedJob{job: job}
	}
	return nil
}

/**
 * runOnce claims every ready job and hands it to the worker pool
 * (or runs it inline when JobRunAsync is off, for deterministic
 * tests). A job is ready when it is not already running and its
 * backoff window has passed.
 */
func (q *queue) runOnce(ctx context.Context) error {
	q.mu.Lock()
	ready := make([]*queuedJob, 0, len(q.jobs))
	now := time.Now()
	for _, qj := range q.jobs {
		if qj.active || now.Before(qj.nextRunTime) {
			continue
		}
		qj.active = true
		ready = append(ready, qj)
	}
	q.mu.Unlock()

	for _, qj := range ready {
		qj := qj
		if q.opts.JobRunAsync {
			q.wp.Submit(func() {
				q.runJob(ctx, qj)
			})
		} else {
			q.runJob(ctx, qj)
		}
	}
	return nil
}

func (q *queue) runJob(ctx context.Context, qj *queuedJob) {
	job := qj.job
	job.Attempts++
	err := q.exec(ctx, job)

	q.mu.Lock()
	defer q.mu.Unlock()

	if err == nil {
		delete(q.jobs, job.ID)
		if rerr := q.store.Remove(ctx, QueueJobPath, job.ID); rerr != nil {
			log.Errorf("remove finished job %s from store failed: %v", job.ID, rerr)
		}
		q.completed = append(q.completed, &jobRecord{Job: job, FinishedAt: time.Now()})
		if len(q.completed) > q.opts.CompletedHistory {
			q.completed = q.completed[len(q.completed)-q.opts.CompletedHistory:]
		}
		return
	}

	qj.lastErr = err
	log.Errorf("job %s (workflow %s) attempt %d/%d failed: %v",
		job.ID, job.WorkflowName, job.Attempts, q.opts.MaxAttempts, err)

	if !types.IsFatal(err) && job.Attempts < q.opts.MaxAttempts {
		qj.active = false
		qj.nextRunTime = time.Now().Add(q.backoffFor(job.Attempts))
		// keep the attempt count durable across restarts
		if perr := q.persistJob(ctx, job); perr != nil {
			log.Errorf("persist job %s after failed attempt failed: %v", job.ID, perr)
		}
		return
	}

	delete(q.jobs, job.ID)
	if rerr := q.store.Remove(ctx, QueueJobPath, job.ID); rerr != nil {
		log.Errorf("remove exhausted job %s from store failed: %v", job.ID, rerr)
	}

	record := &jobRecord{Job: job, Error: err.Error(), FinishedAt: time.Now()}
	q.failed = append(q.failed, record)
	if b, serr := utils.Serialize(record); serr == nil {
		if werr := q.store.Set(ctx, QueueFailedPath, job.ID, b); werr != nil {
			log.Errorf("persist failed job %s failed: %v", job.ID, werr)
		}
	}
	if len(q.failed) > q.opts.FailedHistory {
		pruned := q.failed[:len(q.failed)-q.opts.FailedHistory]
		q.failed = q.failed[len(q.failed)-q.opts.FailedHistory:]
		for _, old := range pruned {
			if rerr := q.store.Remove(ctx, QueueFailedPath, old.Job.ID); rerr != nil {
				log.Errorf("prune failed job %s failed: %v", old.Job.ID, rerr)
			}
		}
	}
}

// backoffFor returns the delay before the next attempt: the base
// backoff doubled per attempt already made (1s, 2s, 4s with the
// defaults).
func (q *queue) backoffFor(attempts int) time.Duration {
	backoff := q.opts.RetryBackoff
	for i := 1; i < attempts; i++ {
		backoff *= 2
	}
	return backoff
}

func (q *queue) stats() types.QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()

	stats := types.QueueStats{
		Completed: len(q.completed),
		Failed:    len(q.failed),
	}
	for _, qj := range q.jobs {
		if qj.active {
			stats.Active++
		} else {
			stats.Waiting++
		}
	}
	return stats
}

// close stops accepting jobs and waits for in-flight jobs to
// finish. Waiting jobs stay persisted for the next start.
func (q *queue) close(ctx context.Context) error {
	q.mu.Lock()
	q.accepting = false
	q.mu.Unlock()

	q.wp.StopWait()
	return nil
}
