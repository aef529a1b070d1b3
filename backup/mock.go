package backup

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// Mock implements the Store interface in memory for testing.
type Mock struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMock creates an empty in-memory snapshot store.
func NewMock() *Mock {
	return &Mock{snapshots: make(map[string][]byte)}
}

func (m *Mock) Put(name string, reader io.Reader) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.snapshots[name] = data
	m.mu.Unlock()
	return name, nil
}

func (m *Mock) Get(name string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, exists := m.snapshots[name]
	if !exists {
		return nil, fmt.Errorf("snapshot not found: %s", name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Mock) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.snapshots[name]
	return exists
}

func (m *Mock) Size(name string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, exists := m.snapshots[name]; exists {
		return int64(len(data)), nil
	}
	return 0, fmt.Errorf("snapshot not found: %s", name)
}

func (m *Mock) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.snapshots))
	for name := range m.snapshots {
		names = append(names, name)
	}
	return names, nil
}

func (m *Mock) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.snapshots[name]; !exists {
		return fmt.Errorf("snapshot not found: %s", name)
	}
	delete(m.snapshots, name)
	return nil
}

func (m *Mock) SignedURL(name string, expiry time.Duration) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, exists := m.snapshots[name]; !exists {
		return "", fmt.Errorf("snapshot not found: %s", name)
	}
	return fmt.Sprintf("/backups/%s?signed=true&expires=%d", name, int(expiry.Seconds())), nil
}

func (m *Mock) Info() (map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var totalSize int64
	for _, data := range m.snapshots {
		totalSize += int64(len(data))
	}
	return map[string]interface{}{
		"type":      "mock",
		"count":     len(m.snapshots),
		"totalSize": totalSize,
	}, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	m.snapshots = make(map[string][]byte)
	m.mu.Unlock()
	return nil
}
