// Package setutil provides a small uint set used for ID membership checks.
package setutil

// UintSet is a set of uint values.
type UintSet struct {
	items map[uint]struct{}
}

// NewUintSet builds a set from ids.
func NewUintSet(ids ...uint) *UintSet {
	s := &UintSet{items: make(map[uint]struct{}, len(ids))}
	s.AddAll(ids)
	return s
}

func (s *UintSet) Add(id uint) {
	s.items[id] = struct{}{}
}

func (s *UintSet) AddAll(ids []uint) {
	for _, id := range ids {
		s.items[id] = struct{}{}
	}
}

func (s *UintSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

// Intersects reports whether any of ids is in the set.
func (s *UintSet) Intersects(ids []uint) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}

// ToSlice returns all ids as a slice. The order is not guaranteed.
func (s *UintSet) ToSlice() []uint {
	result := make([]uint, 0, len(s.items))
	for id := range s.items {
		result = append(result, id)
	}
	return result
}

func (s *UintSet) Len() int {
	return len(s.items)
}

// Dedupe returns ids without repeats, keeping first-seen order.
func Dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
