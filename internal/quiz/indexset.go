package quiz

import (
	"encoding/json"
)

// IndexSet is a set of pool indices that remembers insertion order, so the
// persisted array reads back in the order questions were answered.
type IndexSet struct {
	order []int
	seen  map[int]struct{}
}

// NewIndexSet builds a set from indices, ignoring duplicates and negatives
func NewIndexSet(indices ...int) IndexSet {
	var s IndexSet
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

// Add inserts i and reports whether it was new
func (s *IndexSet) Add(i int) bool {
	if i < 0 {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[int]struct{})
	}
	if _, ok := s.seen[i]; ok {
		return false
	}
	s.seen[i] = struct{}{}
	s.order = append(s.order, i)
	return true
}

// Has reports whether i is in the set
func (s IndexSet) Has(i int) bool {
	_, ok := s.seen[i]
	return ok
}

// Len returns the number of indices in the set
func (s IndexSet) Len() int {
	return len(s.order)
}

// CountWithin counts members inside [0, n). Stale cookies may carry indices
// from a larger pool.
func (s IndexSet) CountWithin(n int) int {
	count := 0
	for _, i := range s.order {
		if i < n {
			count++
		}
	}
	return count
}

// Slice returns the indices in insertion order
func (s IndexSet) Slice() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Clone returns an independent copy
func (s IndexSet) Clone() IndexSet {
	return NewIndexSet(s.order...)
}

func (s IndexSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *IndexSet) UnmarshalJSON(data []byte) error {
	var indices []int
	if err := json.Unmarshal(data, &indices); err != nil {
		return err
	}
	*s = NewIndexSet(indices...)
	return nil
}
