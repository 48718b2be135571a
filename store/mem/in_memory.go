package mem

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/storely/automation/store"
)

var (
	_ store.Store = &memStore{}
)

func NewMemStore() store.Store {
	return &memStore{
		m: make(map[string][]byte),
		// setup no error as default
		mockErrHandler: defaultNoErr,
	}
}

// NewMemStoreWithErrHandler injects a store-level fault for tests
// that exercise the queue's whole-walk error paths.
func NewMemStoreWithErrHandler(errHandler func() error) store.Store {
	return &memStore{
		m:              make(map[string][]byte),
		mockErrHandler: errHandler,
	}
}

func defaultNoErr() error {
	return nil
}

/**
 * memStore is a pure in-memory Store for debug & testing.
 * NEVER use it in the Production!
 */
type memStore struct {
	mu sync.Mutex

	mockErrHandler func() error

	m map[string][]byte
}

func (m *memStore) String() string {
	s := "\n----------\n"
	for key, value := range m.m {
		s += fmt.Sprintf("%s: %s\n", key, string(value))
	}
	s += "----------\n"
	return s
}

func (m *memStore) Get(ctx context.Context, prefix, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.m[prefix+"|"+key], m.mockErrHandler()
}

func (m *memStore) Set(ctx context.Context, prefix, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.m[prefix+"|"+key] = value
	return m.mockErrHandler()
}

func (m *memStore) Remove(ctx context.Context, prefix, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.m, prefix+"|"+key)
	return m.mockErrHandler()
}

func (m *memStore) List(ctx context.Context, prefix string, iterator func(key string) bool) error {
	m.mu.Lock()

	prefix += "|"
	matchedKeys := make([]string, 0)
	for key := range m.m {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		matchedKeys = append(matchedKeys, key)
	}
	m.mu.Unlock()

	// the Store contract promises ascending key order
	sort.Strings(matchedKeys)

	for _, key := range matchedKeys {
		key, _ = strings.CutPrefix(key, prefix)
		if !iterator(key) {
			break
		}
	}
	return m.mockErrHandler()
}
