package graph

// idSet is a set of ids that remembers the order in which ids were first
// added. Relation maps, vulnerability attachments and attacker entry/exit
// sets are all backed by it, so every iteration the engine performs is in
// first-insertion order. That order is part of the enumeration contract.
type idSet struct {
	order []string
	index map[string]struct{}
}

func newIDSet() *idSet {
	return &idSet{index: make(map[string]struct{})}
}

func (s *idSet) add(id string) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

func (s *idSet) remove(id string) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *idSet) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *idSet) len() int {
	return len(s.order)
}

// items returns a copy; callers never see the backing slice.
func (s *idSet) items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *idSet) clone() *idSet {
	c := newIDSet()
	for _, id := range s.order {
		c.add(id)
	}
	return c
}
