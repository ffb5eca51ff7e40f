package core

// PersistenceStore is a small string key/value store injected by the host.
// Games use it for scalars like the high score and theme choice.
// Missing keys report ok == false without an error.
type PersistenceStore interface {
	GetValue(key string) (value string, ok bool, err error)
	SetValue(key, value string) error
}

// MemoryStore is an in-process PersistenceStore, used when no database is
// available and in tests.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// GetValue implements PersistenceStore.
func (m *MemoryStore) GetValue(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// SetValue implements PersistenceStore.
func (m *MemoryStore) SetValue(key, value string) error {
	m.values[key] = value
	return nil
}

var _ PersistenceStore = (*MemoryStore)(nil)
