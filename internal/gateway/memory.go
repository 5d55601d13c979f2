package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrUnavailable is returned by a Memory gateway that has been switched
// offline, to exercise fallback paths.
var ErrUnavailable = errors.New("gateway unavailable")

// Memory is an in-process Gateway used in tests and as a stand-in when
// no Redis instance is configured.
type Memory struct {
	mu      sync.RWMutex
	data    map[string][]byte
	subs    map[string][]func() // collection root → callbacks
	offline bool
}

func NewMemory() *Memory {
	return &Memory{
		data: make(map[string][]byte),
		subs: make(map[string][]func()),
	}
}

// SetOffline makes every subsequent operation fail with ErrUnavailable.
func (m *Memory) SetOffline(offline bool) {
	m.mu.Lock()
	m.offline = offline
	m.mu.Unlock()
}

func (m *Memory) check() error {
	if m.offline {
		return ErrUnavailable
	}
	return nil
}

func (m *Memory) Get(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(); err != nil {
		return nil, err
	}
	data, ok := m.data[path]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (m *Memory) Set(_ context.Context, path string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	m.mu.Lock()
	if err := m.check(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.data[path] = data
	callbacks := append([]func(){}, m.subs[root(path)]...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

func (m *Memory) Update(ctx context.Context, path string, partial map[string]any) error {
	existing, err := m.Get(ctx, path)
	if err != nil {
		return err
	}

	merged := map[string]any{}
	if existing != nil {
		if err := json.Unmarshal(existing, &merged); err != nil {
			return fmt.Errorf("update %s: existing value is not an object: %w", path, err)
		}
	}
	for k, v := range partial {
		merged[k] = v
	}
	return m.Set(ctx, path, merged)
}

func (m *Memory) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	if err := m.check(); err != nil {
		m.mu.Unlock()
		return err
	}
	delete(m.data, path)
	callbacks := append([]func(){}, m.subs[root(path)]...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

func (m *Memory) Push(_ context.Context, _ string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}

func (m *Memory) List(_ context.Context, path string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.check(); err != nil {
		return nil, err
	}

	prefix := path + "/"
	result := make(map[string][]byte)
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			result[k[len(prefix):]] = v
		}
	}
	return result, nil
}

func (m *Memory) Subscribe(_ context.Context, path string, onChange func()) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(); err != nil {
		return nil, err
	}

	r := root(path)
	m.subs[r] = append(m.subs[r], onChange)
	idx := len(m.subs[r]) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.subs[r]) {
			m.subs[r][idx] = func() {}
		}
	}, nil
}
