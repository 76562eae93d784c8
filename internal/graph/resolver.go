package graph

// Policy selects which relation kinds a traversal follows. Direct edges are
// always followed; lateral and contains edges are opt-in.
type Policy struct {
	IncludeLateral  bool
	IncludeContains bool
}

// Kinds returns the relation kinds the policy includes, in traversal order.
func (p Policy) Kinds() []RelationKind {
	kinds := []RelationKind{RelationDirect}
	if p.IncludeLateral {
		kinds = append(kinds, RelationLateral)
	}
	if p.IncludeContains {
		kinds = append(kinds, RelationContains)
	}
	return kinds
}

// Neighbors returns the deduplicated successors of id under the policy.
// Kinds are visited direct, then lateral, then contains; within a kind,
// destinations come out in insertion order of first addition. A destination
// reachable through several kinds appears once, at its earliest position.
// An id with no adjacency entry yields an empty slice, never an error, so
// traversal tolerates dangling references.
func (s *Store) Neighbors(id string, pol Policy) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, k := range pol.Kinds() {
		dsts, ok := s.relations[k][id]
		if !ok {
			continue
		}
		for _, dst := range dsts.order {
			if _, dup := seen[dst]; dup {
				continue
			}
			seen[dst] = struct{}{}
			out = append(out, dst)
		}
	}
	return out
}
