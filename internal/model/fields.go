package model

import (
	"bytes"
	"encoding/json"
)

// FieldMap keeps keys in first-seen order. Writing an existing key
// overwrites its value without changing its position.
type FieldMap struct {
	keys   []string
	values map[string]string
}

func NewFieldMap() *FieldMap {
	return &FieldMap{values: map[string]string{}}
}

func (m *FieldMap) Set(key, value string) {
	if m.values == nil {
		m.values = map[string]string{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *FieldMap) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	value, ok := m.values[key]
	return value, ok
}

func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *FieldMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *FieldMap) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
