package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/vango-dev/toolbox/pkg/deep"
)

// Entry is one key/value pair of a State.
type Entry struct {
	Key   string
	Value any
}

// E is shorthand for an Entry literal.
func E(key string, value any) Entry {
	return Entry{Key: key, Value: value}
}

// State is an ordered key/value record.
//
// Keys iterate the way object keys do in a browser: canonical array-index
// keys ("0", "1", ...) first in ascending numeric order, then every other key
// in insertion order. The zero value is an empty State ready to use.
type State struct {
	keys   []string
	values map[string]any
}

// Of builds a State from entries. A repeated key keeps its first position and
// its last value.
func Of(entries ...Entry) State {
	var s State
	for _, e := range entries {
		s.Set(e.Key, e.Value)
	}
	return s
}

// FromMap builds a State from m with non-index keys in lexical order.
func FromMap(m map[string]any) State {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var s State
	for _, k := range keys {
		s.Set(k, m[k])
	}
	return s
}

// Set assigns value to key, appending key if it is new.
func (s *State) Set(key string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value for key and whether it is present.
func (s State) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Value returns the value for key, or nil when absent.
func (s State) Value(key string) any {
	return s.values[key]
}

// Len returns the number of keys.
func (s State) Len() int {
	return len(s.keys)
}

// Keys returns the keys in iteration order.
func (s State) Keys() []string {
	var index []string
	var named []string
	for _, k := range s.keys {
		if isArrayIndex(k) {
			index = append(index, k)
		} else {
			named = append(named, k)
		}
	}
	sort.Slice(index, func(i, j int) bool {
		a, _ := strconv.ParseUint(index[i], 10, 32)
		b, _ := strconv.ParseUint(index[j], 10, 32)
		return a < b
	})
	return append(index, named...)
}

// Entries returns the pairs in iteration order.
func (s State) Entries() []Entry {
	keys := s.Keys()
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = Entry{Key: k, Value: s.values[k]}
	}
	return out
}

// Clone returns a shallow copy of s.
func (s State) Clone() State {
	c := State{
		keys:   append([]string(nil), s.keys...),
		values: make(map[string]any, len(s.values)),
	}
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// DeepClone returns a copy of s whose map[string]any and []any values are
// copied too.
func (s State) DeepClone() State {
	c := s.Clone()
	for k, v := range c.values {
		c.values[k] = deep.Clone(v)
	}
	return c
}

// Map returns the state as a plain map.
func (s State) Map() map[string]any {
	m := make(map[string]any, len(s.values))
	for k, v := range s.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the state as a JSON object in iteration order.
func (s State) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order.
// Nested values decode as map[string]any / []any.
func (s *State) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("store: state must be a JSON object")
	}

	*s = State{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("store: unexpected key token %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		s.Set(key, value)
	}
	_, err = dec.Token()
	return err
}

// isArrayIndex reports whether k is a canonical array index: a decimal
// integer below 2^32-1 without leading zeros.
func isArrayIndex(k string) bool {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return false
	}
	n, err := strconv.ParseUint(k, 10, 32)
	return err == nil && n < 1<<32-1
}
