package template

import (
	"bytes"
	"encoding/json"
	"strings"
)

// OverrideMap is an insertion-ordered mapping from override key to value.
// Setting an existing key replaces the value but keeps the original
// position, so serialization is deterministic across runs.
type OverrideMap struct {
	keys   []string
	values map[string]string
}

// NewOverrideMap returns an empty override mapping.
func NewOverrideMap() *OverrideMap {
	return &OverrideMap{values: make(map[string]string)}
}

// Set stores value under key. The last write wins on duplicate keys.
func (m *OverrideMap) Set(key, value string) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OverrideMap) Get(key string) (string, bool) {
	value, ok := m.values[key]
	return value, ok
}

// Len returns the number of stored overrides.
func (m *OverrideMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the override keys in insertion order.
func (m *OverrideMap) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Lines renders the mapping as key=value lines, one per override.
func (m *OverrideMap) Lines() string {
	var builder strings.Builder
	for _, key := range m.keys {
		builder.WriteString(key)
		builder.WriteByte('=')
		builder.WriteString(m.values[key])
		builder.WriteByte('\n')
	}
	return builder.String()
}

// MarshalJSON encodes the mapping as a flat JSON object in insertion order.
func (m *OverrideMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		encodedValue, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
