package settings

import (
	"context"
	"errors"
	"strings"
	"sync"

	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
)

const (
	KeyOpenAIAPIKey = "openai_api_key"
	KeyOpenAIModel  = "openai_model"
)

var ErrInvalidKey = errors.New("settings key is empty")

// Store is the device-scoped key-value surface for persisted configuration.
// A missing key is reported through ok=false, never as an error.
type Store = contractx.SettingsStore

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*UpstashStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string, 4)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	return key, nil
}
