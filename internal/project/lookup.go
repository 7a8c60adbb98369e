package project

// ProjectForNumber finds the cached project that holds number.
func (s *Store) ProjectForNumber(number string) (Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if p := s.projects[id]; p.HasNumber(number) {
			return p.clone(), true
		}
	}
	return Project{}, false
}

// CatchAll returns the first project flagged as catch-all.
func (s *Store) CatchAll() (Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if p := s.projects[id]; p.IsCatchAll {
			return p.clone(), true
		}
	}
	return Project{}, false
}
