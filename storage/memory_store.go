package storage

import "sync"

// memoryStore is a non-persistent SecureStore. Useful for tests and for
// ephemeral environments where nothing should outlive the process.
type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an in-memory SecureStore.
func NewMemoryStore() SecureStore {
	return &memoryStore{
		values: map[string]string{},
	}
}

func (m *memoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
