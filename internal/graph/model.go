package graph

import "fmt"

// RelationKind identifies one of the three independent edge categories
// between targets. Direct edges are always traversed; lateral and contains
// edges are traversed only when the active Policy includes them.
type RelationKind uint8

const (
	RelationDirect RelationKind = iota
	RelationLateral
	RelationContains
)

// relationKinds is the fixed traversal order across kinds.
var relationKinds = [...]RelationKind{RelationDirect, RelationLateral, RelationContains}

func (k RelationKind) String() string {
	switch k {
	case RelationDirect:
		return "direct"
	case RelationLateral:
		return "lateral"
	case RelationContains:
		return "contains"
	}
	return fmt.Sprintf("relation(%d)", uint8(k))
}

// ParseRelationKind maps the wire names back to kinds.
func ParseRelationKind(s string) (RelationKind, error) {
	switch s {
	case "direct":
		return RelationDirect, nil
	case "lateral":
		return RelationLateral, nil
	case "contains":
		return RelationContains, nil
	}
	return 0, fmt.Errorf("unknown relation kind %q", s)
}

// Target is a node in the attack graph: a system component an attacker can
// occupy. Terminal marks it as a valid path end regardless of out-degree.
type Target struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`

	vulns *idSet
}

// VulnIDs returns the attached vulnerability ids in attachment order.
func (t *Target) VulnIDs() []string {
	return t.vulns.items()
}

// Vulnerability is a named weakness attachable to any number of targets.
type Vulnerability struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Attacker models one adversary: where they start and, optionally, which
// targets count as their objective. An empty exit set means any terminal or
// sink target ends a path.
type Attacker struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	entries *idSet
	exits   *idSet
}

// Entries returns the entry target ids in insertion order.
func (a *Attacker) Entries() []string { return a.entries.items() }

// Exits returns the exit target ids in insertion order.
func (a *Attacker) Exits() []string { return a.exits.items() }

// Store holds the whole model: targets, the vulnerability pool, attackers
// and the three relation maps. It is the single mutation authority; nothing
// it hands out lets a caller mutate it from the outside. The Store is not
// safe for concurrent use; callers serialize mutation against enumeration,
// or enumerate against a Clone.
type Store struct {
	targets     map[string]*Target
	targetOrder []string

	vulns     map[string]*Vulnerability
	vulnOrder []string

	attackers     map[string]*Attacker
	attackerOrder []string

	// one adjacency map per relation kind, source id -> destination set
	relations map[RelationKind]map[string]*idSet
}

// NewStore returns an empty model.
func NewStore() *Store {
	s := &Store{
		targets:   make(map[string]*Target),
		vulns:     make(map[string]*Vulnerability),
		attackers: make(map[string]*Attacker),
		relations: make(map[RelationKind]map[string]*idSet),
	}
	for _, k := range relationKinds {
		s.relations[k] = make(map[string]*idSet)
	}
	return s
}

// ========== Targets ==========

// AddTarget creates a target. The id must be unused and the name must not
// collide with an existing target's name.
func (s *Store) AddTarget(id, name string) (*Target, error) {
	if _, ok := s.targets[id]; ok {
		return nil, fmt.Errorf("%w: target %q", ErrDuplicateID, id)
	}
	for _, other := range s.targets {
		if other.Name == name {
			return nil, fmt.Errorf("%w: target name %q", ErrDuplicateName, name)
		}
	}
	t := &Target{ID: id, Name: name, vulns: newIDSet()}
	s.targets[id] = t
	s.targetOrder = append(s.targetOrder, id)
	for _, k := range relationKinds {
		s.relations[k][id] = newIDSet()
	}
	return t, nil
}

// RenameTarget changes a target's display name.
func (s *Store) RenameTarget(id, name string) error {
	t, ok := s.targets[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, id)
	}
	for _, other := range s.targets {
		if other.ID != id && other.Name == name {
			return fmt.Errorf("%w: target name %q", ErrDuplicateName, name)
		}
	}
	t.Name = name
	return nil
}

// SetTerminal flags or unflags a target as a valid path end.
func (s *Store) SetTerminal(id string, terminal bool) error {
	t, ok := s.targets[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, id)
	}
	t.Terminal = terminal
	return nil
}

// RemoveTarget deletes a target and cascades: the id disappears from all
// three relation maps as source and as destination, and from every
// attacker's entry and exit sets.
func (s *Store) RemoveTarget(id string) error {
	if _, ok := s.targets[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, id)
	}
	delete(s.targets, id)
	s.targetOrder = removeID(s.targetOrder, id)
	for _, k := range relationKinds {
		delete(s.relations[k], id)
		for _, dsts := range s.relations[k] {
			dsts.remove(id)
		}
	}
	for _, a := range s.attackers {
		a.entries.remove(id)
		a.exits.remove(id)
	}
	return nil
}

// Target looks up a target by id.
func (s *Store) Target(id string) (*Target, bool) {
	t, ok := s.targets[id]
	return t, ok
}

// Targets lists all targets in creation order.
func (s *Store) Targets() []*Target {
	out := make([]*Target, 0, len(s.targetOrder))
	for _, id := range s.targetOrder {
		out = append(out, s.targets[id])
	}
	return out
}

// ========== Vulnerabilities ==========

// AddVulnerability creates an entry in the global vulnerability pool.
func (s *Store) AddVulnerability(id, name string) (*Vulnerability, error) {
	if _, ok := s.vulns[id]; ok {
		return nil, fmt.Errorf("%w: vulnerability %q", ErrDuplicateID, id)
	}
	v := &Vulnerability{ID: id, Name: name}
	s.vulns[id] = v
	s.vulnOrder = append(s.vulnOrder, id)
	return v, nil
}

// RenameVulnerability changes a vulnerability's name.
func (s *Store) RenameVulnerability(id, name string) error {
	v, ok := s.vulns[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVulnerability, id)
	}
	v.Name = name
	return nil
}

// RemoveVulnerability deletes a vulnerability and detaches it from every
// target that carried it.
func (s *Store) RemoveVulnerability(id string) error {
	if _, ok := s.vulns[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVulnerability, id)
	}
	delete(s.vulns, id)
	s.vulnOrder = removeID(s.vulnOrder, id)
	for _, t := range s.targets {
		t.vulns.remove(id)
	}
	return nil
}

// Attach marks a target as carrying a vulnerability. Attaching twice is a
// no-op.
func (s *Store) Attach(targetID, vulnID string) error {
	t, ok := s.targets[targetID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, targetID)
	}
	if _, ok := s.vulns[vulnID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVulnerability, vulnID)
	}
	t.vulns.add(vulnID)
	return nil
}

// Detach removes a vulnerability from a target.
func (s *Store) Detach(targetID, vulnID string) error {
	t, ok := s.targets[targetID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, targetID)
	}
	if _, ok := s.vulns[vulnID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVulnerability, vulnID)
	}
	t.vulns.remove(vulnID)
	return nil
}

// Vulnerability looks up a pool entry by id.
func (s *Store) Vulnerability(id string) (*Vulnerability, bool) {
	v, ok := s.vulns[id]
	return v, ok
}

// Vulnerabilities lists the pool in creation order.
func (s *Store) Vulnerabilities() []*Vulnerability {
	out := make([]*Vulnerability, 0, len(s.vulnOrder))
	for _, id := range s.vulnOrder {
		out = append(out, s.vulns[id])
	}
	return out
}

// ========== Attackers ==========

// AddAttacker creates an attacker with empty entry and exit sets.
func (s *Store) AddAttacker(id, name string) (*Attacker, error) {
	if _, ok := s.attackers[id]; ok {
		return nil, fmt.Errorf("%w: attacker %q", ErrDuplicateID, id)
	}
	a := &Attacker{ID: id, Name: name, entries: newIDSet(), exits: newIDSet()}
	s.attackers[id] = a
	s.attackerOrder = append(s.attackerOrder, id)
	return a, nil
}

// RenameAttacker changes an attacker's name.
func (s *Store) RenameAttacker(id, name string) error {
	a, ok := s.attackers[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttacker, id)
	}
	a.Name = name
	return nil
}

// RemoveAttacker deletes an attacker.
func (s *Store) RemoveAttacker(id string) error {
	if _, ok := s.attackers[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttacker, id)
	}
	delete(s.attackers, id)
	s.attackerOrder = removeID(s.attackerOrder, id)
	return nil
}

// AddEntry marks a target as an entry point for an attacker.
func (s *Store) AddEntry(attackerID, targetID string) error {
	a, ok := s.attackers[attackerID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttacker, attackerID)
	}
	if _, ok := s.targets[targetID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, targetID)
	}
	a.entries.add(targetID)
	return nil
}

// RemoveEntry drops a target from an attacker's entry set.
func (s *Store) RemoveEntry(attackerID, targetID string) error {
	a, ok := s.attackers[attackerID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttacker, attackerID)
	}
	a.entries.remove(targetID)
	return nil
}

// AddExit marks a target as an objective for an attacker.
func (s *Store) AddExit(attackerID, targetID string) error {
	a, ok := s.attackers[attackerID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttacker, attackerID)
	}
	if _, ok := s.targets[targetID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, targetID)
	}
	a.exits.add(targetID)
	return nil
}

// RemoveExit drops a target from an attacker's exit set.
func (s *Store) RemoveExit(attackerID, targetID string) error {
	a, ok := s.attackers[attackerID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttacker, attackerID)
	}
	a.exits.remove(targetID)
	return nil
}

// Attacker looks up an attacker by id.
func (s *Store) Attacker(id string) (*Attacker, bool) {
	a, ok := s.attackers[id]
	return a, ok
}

// Attackers lists all attackers in creation order.
func (s *Store) Attackers() []*Attacker {
	out := make([]*Attacker, 0, len(s.attackerOrder))
	for _, id := range s.attackerOrder {
		out = append(out, s.attackers[id])
	}
	return out
}

// ========== Relations ==========

// Link adds a directed edge of the given kind between two existing targets.
// Linking the same pair twice under the same kind is a no-op.
func (s *Store) Link(kind RelationKind, src, dst string) error {
	if _, ok := s.targets[src]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, src)
	}
	if _, ok := s.targets[dst]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, dst)
	}
	s.relations[kind][src].add(dst)
	return nil
}

// Unlink removes a directed edge of the given kind.
func (s *Store) Unlink(kind RelationKind, src, dst string) error {
	if _, ok := s.targets[src]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, src)
	}
	s.relations[kind][src].remove(dst)
	return nil
}

// Linked reports whether an edge of the given kind exists.
func (s *Store) Linked(kind RelationKind, src, dst string) bool {
	dsts, ok := s.relations[kind][src]
	return ok && dsts.has(dst)
}

// Destinations returns the direct successors of src under a single relation
// kind, in insertion order. Unknown src yields an empty slice.
func (s *Store) Destinations(kind RelationKind, src string) []string {
	dsts, ok := s.relations[kind][src]
	if !ok {
		return nil
	}
	return dsts.items()
}

// Clone returns an independent deep copy of the model. Enumeration against a
// clone is immune to later mutation of the original.
func (s *Store) Clone() *Store {
	c := NewStore()
	for _, id := range s.targetOrder {
		t := s.targets[id]
		c.targets[id] = &Target{ID: t.ID, Name: t.Name, Terminal: t.Terminal, vulns: t.vulns.clone()}
		c.targetOrder = append(c.targetOrder, id)
	}
	for _, id := range s.vulnOrder {
		v := s.vulns[id]
		c.vulns[id] = &Vulnerability{ID: v.ID, Name: v.Name}
		c.vulnOrder = append(c.vulnOrder, id)
	}
	for _, id := range s.attackerOrder {
		a := s.attackers[id]
		c.attackers[id] = &Attacker{ID: a.ID, Name: a.Name, entries: a.entries.clone(), exits: a.exits.clone()}
		c.attackerOrder = append(c.attackerOrder, id)
	}
	for _, k := range relationKinds {
		for src, dsts := range s.relations[k] {
			c.relations[k][src] = dsts.clone()
		}
	}
	return c
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
