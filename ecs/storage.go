package ecs

// entityStore tracks slot generations and the free list. Slot 0 is
// reserved so the zero Entity is always invalid.
type entityStore struct {
	gens  []generation
	alive []bool
	free  []entityID
	count int
}

func (s *entityStore) create() Entity {
	s.count++
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		s.alive[id] = true
		return makeEntity(id, s.gens[id])
	}
	if len(s.gens) == 0 {
		// reserve slot 0
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
	}
	id := entityID(len(s.gens))
	s.gens = append(s.gens, 0)
	s.alive = append(s.alive, true)
	return makeEntity(id, 0)
}

// release retires the slot. The generation bump invalidates every handle
// that still points at it.
func (s *entityStore) release(e Entity) {
	if !s.isAlive(e) {
		return
	}
	id := e.id()
	s.gens[id]++
	s.alive[id] = false
	s.free = append(s.free, id)
	s.count--
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(s.gens) {
		return false
	}
	return s.alive[id] && s.gens[id] == e.generation()
}

// handleFor reconstructs the live handle for a slot id, if any.
func (s *entityStore) handleFor(id int) (Entity, bool) {
	if id <= 0 || id >= len(s.gens) || !s.alive[id] {
		return 0, false
	}
	return makeEntity(entityID(id), s.gens[id]), true
}
