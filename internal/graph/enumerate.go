package graph

// enumerateAcyclic returns every path from the given start targets to their
// natural end points. It requires the policy-filtered graph to be acyclic;
// HasCycle must have returned false for the same policy.
//
// A target ends a path when it has no successors under the policy or when it
// is terminal. A terminal target with successors ends one path and still
// continues the others, so both the short and the extended routes come out.
//
// Path suffixes are memoized per target, so a sub-DAG shared between several
// starts or sibling branches is walked once. The memo belongs to a single
// call; reusing it across graph mutations would serve stale suffixes.
func (s *Store) enumerateAcyclic(starts []string, pol Policy) [][]string {
	memo := make(map[string][][]string)

	var suffixes func(id string) [][]string
	suffixes = func(id string) [][]string {
		if cached, ok := memo[id]; ok {
			return cached
		}
		t := s.targets[id]
		next := s.Neighbors(id, pol)

		var out [][]string
		if len(next) == 0 || (t != nil && t.Terminal) {
			out = append(out, []string{id})
		}
		for _, v := range next {
			for _, suffix := range suffixes(v) {
				path := make([]string, 0, len(suffix)+1)
				path = append(path, id)
				path = append(path, suffix...)
				out = append(out, path)
			}
		}
		memo[id] = out
		return out
	}

	var paths [][]string
	for _, start := range starts {
		paths = append(paths, suffixes(start)...)
	}
	return paths
}

// enumerateGeneral walks the graph depth-first from each start target,
// keeping an on-stack visited set so every emitted path is simple. It works
// on any graph shape, cyclic or not.
//
// A successor already on the current path flips the cycle flag for the whole
// run and is skipped; the branch itself goes on through its other
// successors. Emission follows the same rule as the acyclic walk: a target
// emits when it is terminal or has no successors, and a terminal target with
// successors emits and continues.
//
// maxPaths caps the total number of emitted paths across all starts; zero or
// negative means no cap. The cap is checked when a path is about to be
// emitted: the first emission that would exceed it flips the truncated flag
// and halts all remaining exploration, so a run whose true path count equals
// maxPaths completes exhaustively with truncated false.
func (s *Store) enumerateGeneral(starts []string, pol Policy, maxPaths int) (paths [][]string, cycleSeen, truncated bool) {
	onPath := make(map[string]struct{})
	prefix := make([]string, 0, len(s.targetOrder))
	halted := false

	emit := func() {
		if maxPaths > 0 && len(paths) >= maxPaths {
			truncated = true
			halted = true
			return
		}
		path := make([]string, len(prefix))
		copy(path, prefix)
		paths = append(paths, path)
	}

	var walk func(id string)
	walk = func(id string) {
		onPath[id] = struct{}{}
		prefix = append(prefix, id)

		t := s.targets[id]
		next := s.Neighbors(id, pol)
		if len(next) == 0 || (t != nil && t.Terminal) {
			emit()
		}
		for _, v := range next {
			if halted {
				break
			}
			if _, revisit := onPath[v]; revisit {
				cycleSeen = true
				continue
			}
			walk(v)
		}

		prefix = prefix[:len(prefix)-1]
		delete(onPath, id)
	}

	for _, start := range starts {
		if halted {
			break
		}
		walk(start)
	}
	return paths, cycleSeen, truncated
}
