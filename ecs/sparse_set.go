package ecs

// SparseSet stores one component type for many entities, keyed by slot id.
// Values are held as `any`; the generic accessors in this package do the
// casting. Swap-remove keeps the dense arrays packed.
type SparseSet struct {
	denseIDs    []int
	denseValues []any
	sparse      []int
}

func (s *SparseSet) Has(id int) bool {
	if s == nil || id <= 0 || id >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id]
	return idx >= 0 && idx < len(s.denseIDs) && s.denseIDs[idx] == id
}

func (s *SparseSet) Get(id int) any {
	if !s.Has(id) {
		return nil
	}
	return s.denseValues[s.sparse[id]]
}

func (s *SparseSet) Set(id int, v any) {
	if s == nil || id <= 0 {
		return
	}
	for id >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(id) {
		s.denseValues[s.sparse[id]] = v
		return
	}
	s.denseIDs = append(s.denseIDs, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id] = len(s.denseIDs) - 1
}

func (s *SparseSet) Remove(id int) bool {
	if !s.Has(id) {
		return false
	}
	idx := s.sparse[id]
	last := len(s.denseIDs) - 1
	lastID := s.denseIDs[last]

	s.denseIDs[idx] = lastID
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID] = idx

	s.denseIDs = s.denseIDs[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id] = -1
	return true
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseIDs)
}

// IDs returns a copy of the dense slot id list, so callers can iterate
// while the set mutates underneath them.
func (s *SparseSet) IDs() []int {
	if s == nil || len(s.denseIDs) == 0 {
		return nil
	}
	return append([]int(nil), s.denseIDs...)
}
