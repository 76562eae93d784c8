package graph

// AttackPath is one fully resolved route: the attacker it belongs to, the
// target record at every hop, and the vulnerability names carried by each
// hop. NodeVulns always has the same length as Nodes.
type AttackPath struct {
	AttackerID   string     `json:"attacker_id"`
	AttackerName string     `json:"attacker_name"`
	Nodes        []Target   `json:"nodes"`
	NodeVulns    [][]string `json:"vulns_per_node"`
}

// Result is the outcome of one enumeration run. CyclesDetected reports that
// the traversal ran into at least one cycle (a single flag for the whole
// run, not per path); Truncated reports that the path ceiling stopped the
// run before it was exhaustive.
type Result struct {
	Paths          []AttackPath `json:"paths"`
	CyclesDetected bool         `json:"cycles_detected"`
	Truncated      bool         `json:"truncated"`
}

// ComputePathsForAttacker enumerates every qualifying path for one attacker
// under the given policy. The run is synchronous and reads the store without
// locking; the caller keeps mutation away while it runs, or passes a Clone.
//
// An unknown attacker id or an attacker with no entry targets yields an
// empty Result rather than an error. maxPaths bounds cyclic-mode output
// (zero or negative means unbounded); acyclic graphs are always enumerated
// exhaustively.
func ComputePathsForAttacker(s *Store, attackerID string, pol Policy, maxPaths int) Result {
	atk, ok := s.attackers[attackerID]
	if !ok {
		return Result{}
	}
	starts := atk.entries.items()
	if len(starts) == 0 {
		return Result{}
	}

	var (
		raw       [][]string
		cycleSeen bool
		truncated bool
	)
	if s.HasCycle(pol) {
		raw, cycleSeen, truncated = s.enumerateGeneral(starts, pol, maxPaths)
	} else {
		raw = s.enumerateAcyclic(starts, pol)
	}

	// Exit filtering happens after enumeration, never inside the walk: a
	// non-empty exit set narrows the results down to paths ending on one of
	// the attacker's objectives.
	if atk.exits.len() > 0 {
		kept := raw[:0:0]
		for _, path := range raw {
			if atk.exits.has(path[len(path)-1]) {
				kept = append(kept, path)
			}
		}
		raw = kept
	}

	res := Result{CyclesDetected: cycleSeen, Truncated: truncated}
	for _, path := range raw {
		res.Paths = append(res.Paths, s.normalize(atk, path))
	}
	return res
}

// ComputeAllPaths runs ComputePathsForAttacker for every attacker in
// creation order and concatenates the results. The cycle and truncation
// flags are true if true for any attacker.
func ComputeAllPaths(s *Store, pol Policy, maxPathsPerAttacker int) Result {
	var all Result
	for _, id := range s.attackerOrder {
		res := ComputePathsForAttacker(s, id, pol, maxPathsPerAttacker)
		all.Paths = append(all.Paths, res.Paths...)
		all.CyclesDetected = all.CyclesDetected || res.CyclesDetected
		all.Truncated = all.Truncated || res.Truncated
	}
	return all
}

// normalize resolves a raw id path into target records and per-hop
// vulnerability names. A dangling target id becomes a placeholder record and
// a dangling vulnerability id is dropped, keeping positions aligned.
func (s *Store) normalize(atk *Attacker, path []string) AttackPath {
	out := AttackPath{
		AttackerID:   atk.ID,
		AttackerName: atk.Name,
		Nodes:        make([]Target, 0, len(path)),
		NodeVulns:    make([][]string, 0, len(path)),
	}
	for _, id := range path {
		t, ok := s.targets[id]
		if !ok {
			out.Nodes = append(out.Nodes, Target{ID: id, Name: id, vulns: newIDSet()})
			out.NodeVulns = append(out.NodeVulns, []string{})
			continue
		}
		names := make([]string, 0, t.vulns.len())
		for _, vid := range t.vulns.order {
			if v, ok := s.vulns[vid]; ok {
				names = append(names, v.Name)
			}
		}
		out.Nodes = append(out.Nodes, *t)
		out.NodeVulns = append(out.NodeVulns, names)
	}
	return out
}
