package types

import (
	"context"
	"time"

	"github.com/mcuadros/go-defaults"
)

func NewEngineOptions() *EngineOptions {
	opts := &EngineOptions{Ctx: context.Background()}
	defaults.SetDefaults(opts)
	opts.TriggerTypes = DefaultTriggerTypes()
	return opts
}

type EngineOptions struct {
	Ctx context.Context
	/**
	 * default: true. A disabled engine starts no workers, registers
	 * no listeners and rejects triggers; only test runs work.
	 */
	Enabled bool `default:"true"`
	/**
	 * default: 5, the number of jobs processed concurrently.
	 */
	WorkerConcurrency int `default:"5"`
	/**
	 * default: 3 attempts total per job, backoff doubling from
	 * RetryBackoff (1s, 2s, 4s).
	 */
	MaxAttempts  int           `default:"3"`
	RetryBackoff time.Duration `default:"1s"`
	/**
	 * default: 50ms, how often the worker loop scans for ready jobs.
	 */
	PollInterval time.Duration `default:"50ms"`
	/**
	 * bounded history of finished jobs kept for operator inspection.
	 */
	CompletedHistory int `default:"100"`
	FailedHistory    int `default:"50"`
	/**
	 * default: 8s, per-call bound on the webhook action's outbound
	 * HTTP request.
	 */
	WebhookTimeout time.Duration `default:"8s"`
	/**
	 * default: true, can set it to false and *important*
	 * caller should call Engine.RunOnce() looply.
	 */
	AutoStart bool `default:"true"`
	/**
	 * default: true. If false a claimed job runs inline inside
	 * RunOnce instead of on the worker pool; only set it to false
	 * when doing debugging or developing.
	 */
	JobRunAsync bool `default:"true"`
	/**
	 * default: false, only set it to true when doing testing or
	 * developing.
	 */
	MemStore bool `default:"false"`

	// If both MemStore and PostgresConfig are set, PostgresConfig
	// takes precedence.
	PostgresConfig *PostgresConfig

	// Event types the engine subscribes to at startup. Defaults to
	// DefaultTriggerTypes().
	TriggerTypes []string

	// External collaborators for the built-in actions. Actions whose
	// collaborator is absent fail their step at run time.
	Mailer  Mailer
	Records RecordStore

	// Additional action executors registered on top of the built-in
	// set.
	Executors []Executor
}

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string // disable, require, verify-ca, verify-full
}

type EngineOption func(*EngineOptions)

func WithContext(ctx context.Context) EngineOption {
	return func(opts *EngineOptions) {
		opts.Ctx = ctx
	}
}

func DisableEngine() EngineOption {
	return func(opts *EngineOptions) {
		opts.Enabled = false
	}
}

func SetWorkerConcurrency(concurrency int) EngineOption {
	return func(opts *EngineOptions) {
		opts.WorkerConcurrency = concurrency
	}
}

func SetRetryPolicy(maxAttempts int, backoff time.Duration) EngineOption {
	return func(opts *EngineOptions) {
		opts.MaxAttempts = maxAttempts
		opts.RetryBackoff = backoff
	}
}

func DisableAutoStart() EngineOption {
	return func(opts *EngineOptions) {
		opts.AutoStart = false
	}
}

func DisableJobRunAsync() EngineOption {
	return func(opts *EngineOptions) {
		opts.JobRunAsync = false
	}
}

func EnableMemStore() EngineOption {
	return func(opts *EngineOptions) {
		opts.MemStore = true
	}
}

// WithPostgresConfig configures the engine to use the PostgreSQL
// store.
func WithPostgresConfig(config *PostgresConfig) EngineOption {
	return func(opts *EngineOptions) {
		opts.PostgresConfig = config
	}
}

func WithTriggerTypes(triggerTypes ...string) EngineOption {
	return func(opts *EngineOptions) {
		opts.TriggerTypes = triggerTypes
	}
}

func WithMailer(m Mailer) EngineOption {
	return func(opts *EngineOptions) {
		opts.Mailer = m
	}
}

func WithRecordStore(r RecordStore) EngineOption {
	return func(opts *EngineOptions) {
		opts.Records = r
	}
}

func WithExecutor(ex Executor) EngineOption {
	return func(opts *EngineOptions) {
		opts.Executors = append(opts.Executors, ex)
	}
}
