package answer

import (
	"maps"
	"slices"
	"sort"
)

// Store maps question ids to answers plus the free-text companions of
// choice questions. A store is owned by a single wizard session.
type Store struct {
	values map[string]Value
	custom map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		values: make(map[string]Value),
		custom: make(map[string]string),
	}
}

// Get returns the answer for id.
func (s *Store) Get(id string) (Value, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Put stores v as the answer for id. A nil value clears the answer. Repeated
// members of a Set are dropped.
func (s *Store) Put(id string, v Value) {
	if v == nil {
		delete(s.values, id)
		return
	}
	if set, ok := v.(Set); ok {
		v = set.distinct()
	}
	s.values[id] = v
}

// Text returns the text answer for id, or "" if absent or not text.
func (s *Store) Text(id string) string {
	t, _ := s.values[id].(Text)
	return string(t)
}

// Number returns the numeric answer for id.
func (s *Store) Number(id string) (int, bool) {
	n, ok := s.values[id].(Number)
	return int(n), ok
}

// Members returns the multi choice answer for id.
func (s *Store) Members(id string) Set {
	set, _ := s.values[id].(Set)
	return slices.Clone(set)
}

// Custom returns the free-text companion of question id.
func (s *Store) Custom(id string) string {
	return s.custom[id]
}

// PutCustom sets the free-text companion of question id.
func (s *Store) PutCustom(id, text string) {
	if text == "" {
		delete(s.custom, id)
		return
	}
	s.custom[id] = text
}

// Len returns the number of answered questions.
func (s *Store) Len() int {
	return len(s.values)
}

// IDs returns the answered question ids in sorted order.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy.
func (s *Store) Clone() *Store {
	out := NewStore()
	for id, v := range s.values {
		out.Put(id, v)
	}
	maps.Copy(out.custom, s.custom)
	return out
}

// Equal reports whether both stores hold the same answers and companions.
func (s *Store) Equal(o *Store) bool {
	if len(s.values) != len(o.values) || !maps.Equal(s.custom, o.custom) {
		return false
	}
	for id, v := range s.values {
		w, ok := o.values[id]
		if !ok || !equalValue(v, w) {
			return false
		}
	}
	return true
}

func equalValue(a, b Value) bool {
	as, aok := a.(Set)
	bs, bok := b.(Set)
	if aok || bok {
		return aok && bok && slices.Equal(as, bs)
	}
	return a == b
}
