package automation

import (
	"github.com/juju/errors"
	"github.com/storely/automation/actions"
	"github.com/storely/automation/engine"
	"github.com/storely/automation/store"
	"github.com/storely/automation/store/mem"
	"github.com/storely/automation/store/postgres"
	"github.com/storely/automation/types"
)

// NewEngine creates a new automation engine with the given options
func NewEngine(opts ...types.EngineOption) (types.Engine, error) {
	options := types.NewEngineOptions()
	for _, opt := range opts {
		opt(options)
	}

	var s store.Store
	var err error

	// PostgresConfig takes precedence over MemStore
	if options.PostgresConfig != nil {
		pgConfig := &postgres.Config{
			Host:     options.PostgresConfig.Host,
			Port:     options.PostgresConfig.Port,
			User:     options.PostgresConfig.User,
			Password: options.PostgresConfig.Password,
			Database: options.PostgresConfig.Database,
			SSLMode:  options.PostgresConfig.SSLMode,
		}

		s, err = postgres.NewPostgresStore(pgConfig)
		if err != nil {
			return nil, errors.Annotatef(err, "failed to create PostgreSQL store")
		}
	} else if options.MemStore {
		s = mem.NewMemStore()
	} else {
		// Default to mem store if not specified
		s = mem.NewMemStore()
	}

	registry := actions.NewDefaultRegistry(options.Mailer, options.Records, options.WebhookTimeout)
	for _, ex := range options.Executors {
		if err := registry.Register(ex); err != nil {
			return nil, errors.Trace(err)
		}
	}

	eng := engine.New(s, registry, options)
	if err := eng.Start(); err != nil {
		return nil, errors.Trace(err)
	}
	return eng, nil
}
