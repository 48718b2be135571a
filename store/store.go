package store

import "context"

/**
 * Store is the engine's durable substrate: workflow snapshots,
 * queued jobs, executions and step records all serialize into it
 * under path-like prefixes. Individual operations are atomic;
 * the engine layers no additional locking on top.
 */
type Store interface {
	// Get returns nil for a missing prefix+key, not an error.
	Get(ctx context.Context, prefix, key string) ([]byte, error)
	Set(ctx context.Context, prefix, key string, value []byte) error
	/**
	 * Remove a prefix and key
	 * remove an unexists prefix + key would NOT return error
	 */
	Remove(ctx context.Context, prefix, key string) error

	/**
	 * List iterates keys under prefix in ascending key order; the
	 * execution log depends on this for step ordering.
	 */
	List(ctx context.Context, prefix string, iterator func(key string) bool) error
}
