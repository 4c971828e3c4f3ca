// Package store holds the named values a menu screen binds against: slider
// positions, toggle states, selection indices. Values are tagged cty values
// restricted to numbers, booleans, and strings. A Store is owned by exactly
// one screen and is only ever touched from the host's frame thread, so it
// carries no locking; change observation happens synchronously on that same
// thread.
package store

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Observer is notified synchronously after a key's value actually changes.
// The previous value is cty.NilVal when the key had never been written.
type Observer func(key string, from, to cty.Value)

// Store maps state keys to scalar cty values for a single screen's lifetime.
type Store struct {
	values    map[string]cty.Value
	revision  uint64
	observers []Observer
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[string]cty.Value)}
}

// IsScalar reports whether v is one of the value kinds a Store accepts:
// a non-null number, bool, or string.
func IsScalar(v cty.Value) bool {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return false
	}
	t := v.Type()
	return t.Equals(cty.Number) || t.Equals(cty.Bool) || t.Equals(cty.String)
}

// Get returns the value stored under key, or cty.NilVal if the key has never
// been written. Callers that want a typed default should use Number, Bool,
// or String instead.
func (s *Store) Get(key string) cty.Value {
	v, ok := s.values[key]
	if !ok {
		return cty.NilVal
	}
	return v
}

// Has reports whether key has been written at least once.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Set writes v under key, bumps the revision, and notifies observers. Writing
// a value equal to the current one is a no-op. Set panics if v is not a
// scalar; that is a contract violation by the host, not a runtime condition.
func (s *Store) Set(key string, v cty.Value) {
	if !IsScalar(v) {
		panic(fmt.Sprintf("store: value for key %q must be a number, bool, or string", key))
	}
	old, existed := s.values[key]
	if existed && old.RawEquals(v) {
		return
	}
	if !existed {
		old = cty.NilVal
	}
	s.values[key] = v
	s.revision++
	for _, fn := range s.observers {
		fn(key, old, v)
	}
}

// Seed bulk-writes initial values in sorted key order. Hosts call it once
// before the first render; later calls behave like ordinary Sets.
func (s *Store) Seed(values map[string]cty.Value) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.Set(k, values[k])
	}
}

// Number returns the value under key as a float64. Unset keys and values
// that cannot be read as a number yield 0.
func (s *Store) Number(key string) float64 {
	v, ok := s.values[key]
	if !ok || !v.Type().Equals(cty.Number) {
		return 0
	}
	f, _ := v.AsBigFloat().Float64()
	return f
}

// Bool returns the value under key as a bool. Unset keys and values that are
// not booleans yield false.
func (s *Store) Bool(key string) bool {
	v, ok := s.values[key]
	if !ok || !v.Type().Equals(cty.Bool) {
		return false
	}
	return v.True()
}

// String returns the value under key as a string. Unset keys and values that
// are not strings yield "".
func (s *Store) String(key string) string {
	v, ok := s.values[key]
	if !ok || !v.Type().Equals(cty.String) {
		return ""
	}
	return v.AsString()
}

// Snapshot returns a copy of the current key/value mapping, suitable for
// handing to the expression evaluator. Mutating the returned map does not
// affect the Store.
func (s *Store) Snapshot() map[string]cty.Value {
	out := make(map[string]cty.Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Keys returns all written keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of written keys.
func (s *Store) Len() int {
	return len(s.values)
}

// Revision returns a counter that increases by one for every effective write.
// A renderer can compare revisions to tell whether anything changed between
// two frames.
func (s *Store) Revision() uint64 {
	return s.revision
}

// Observe registers fn to run synchronously after every effective write.
// Observers cannot be removed; they live as long as the Store.
func (s *Store) Observe(fn Observer) {
	s.observers = append(s.observers, fn)
}
