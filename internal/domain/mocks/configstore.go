package mocks

import "fmt"

// ConfigStore is a map-backed implementation of ports.ConfigStore.
// Overrides win over Values on Get, like environment variables over a file.
type ConfigStore struct {
	Values    map[string]string
	Overrides map[string]string
	SetErr    error

	SetCallCount int
}

// NewConfigStore creates a config store seeded with values.
func NewConfigStore(values map[string]string) *ConfigStore {
	v := make(map[string]string, len(values))
	for k, val := range values {
		v[k] = val
	}
	return &ConfigStore{Values: v}
}

// Get returns the override, the stored value or "".
func (m *ConfigStore) Get(key string) string {
	if v, ok := m.Overrides[key]; ok {
		return v
	}
	return m.Values[key]
}

// Set stores the formatted value.
func (m *ConfigStore) Set(key string, value any) error {
	m.SetCallCount++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Values[key] = fmt.Sprint(value)
	return nil
}
