package types

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEngineOptionDefaults(t *testing.T) {
	opts := NewEngineOptions()

	assert.True(t, opts.Enabled)
	assert.Equal(t, 5, opts.WorkerConcurrency)
	assert.Equal(t, 3, opts.MaxAttempts)
	assert.Equal(t, time.Second, opts.RetryBackoff)
	assert.Equal(t, 50*time.Millisecond, opts.PollInterval)
	assert.Equal(t, 100, opts.CompletedHistory)
	assert.Equal(t, 50, opts.FailedHistory)
	assert.Equal(t, 8*time.Second, opts.WebhookTimeout)
	assert.True(t, opts.AutoStart)
	assert.True(t, opts.JobRunAsync)
	assert.False(t, opts.MemStore)
	assert.Nil(t, opts.PostgresConfig)
	assert.Equal(t, DefaultTriggerTypes(), opts.TriggerTypes)
	assert.NotNil(t, opts.Ctx)
}

func TestEngineOptionApply(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg := &PostgresConfig{Host: "localhost", Port: 5432}

	opts := NewEngineOptions()
	for _, opt := range []EngineOption{
		WithContext(ctx),
		DisableEngine(),
		SetWorkerConcurrency(2),
		SetRetryPolicy(5, 200*time.Millisecond),
		DisableAutoStart(),
		DisableJobRunAsync(),
		EnableMemStore(),
		WithPostgresConfig(pg),
		WithTriggerTypes("order.placed", "order.refunded"),
	} {
		opt(opts)
	}

	assert.Equal(t, ctx, opts.Ctx)
	assert.False(t, opts.Enabled)
	assert.Equal(t, 2, opts.WorkerConcurrency)
	assert.Equal(t, 5, opts.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, opts.RetryBackoff)
	assert.False(t, opts.AutoStart)
	assert.False(t, opts.JobRunAsync)
	assert.True(t, opts.MemStore)
	assert.Equal(t, pg, opts.PostgresConfig)
	assert.Equal(t, []string{"order.placed", "order.refunded"}, opts.TriggerTypes)
}
