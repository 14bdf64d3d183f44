package ecs

// System is one per-tick simulation pass.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in a fixed order, which is what makes simultaneous
// multi-hit outcomes reproducible tick to tick.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	return &Scheduler{systems: append([]System(nil), systems...)}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}
