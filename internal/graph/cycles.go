package graph

// Node colors for the cycle scan. White is unvisited, gray is on the current
// recursion stack, black is fully explored. An edge into a gray node is a
// back edge, which means the graph has a cycle.
type nodeColor uint8

const (
	white nodeColor = iota
	gray
	black
)

// HasCycle reports whether the policy-filtered relation graph contains a
// cycle. The same policy must be used for detection and for enumeration:
// acyclicity under one policy says nothing about another.
func (s *Store) HasCycle(pol Policy) bool {
	colors := make(map[string]nodeColor, len(s.targetOrder))
	for _, id := range s.targetOrder {
		if colors[id] == white && s.scanCycle(id, pol, colors) {
			return true
		}
	}
	return false
}

func (s *Store) scanCycle(id string, pol Policy, colors map[string]nodeColor) bool {
	colors[id] = gray
	for _, next := range s.Neighbors(id, pol) {
		switch colors[next] {
		case gray:
			return true
		case white:
			if s.scanCycle(next, pol, colors) {
				return true
			}
		}
	}
	colors[id] = black
	return false
}
