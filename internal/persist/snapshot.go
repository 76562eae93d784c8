// Package persist serializes the whole model to a versioned JSON snapshot
// and back. The engine never touches this layer; the CLI saves and loads
// snapshots around enumeration runs.
package persist

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/guillaumefe/menvuln-sub000/internal/graph"
)

// Version is the current snapshot format version. Loaders reject snapshots
// written with any other version.
const Version = 1

type Snapshot struct {
	Version         int                     `json:"version"`
	Targets         []TargetRecord          `json:"targets"`
	Vulnerabilities []VulnerabilityRecord   `json:"vulnerabilities"`
	Attackers       []AttackerRecord        `json:"attackers"`
	Relations       map[string][]EdgeRecord `json:"relations"`
}

type TargetRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Terminal bool     `json:"terminal,omitempty"`
	Vulns    []string `json:"vulnerabilities,omitempty"`
}

type VulnerabilityRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AttackerRecord struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Entries []string `json:"entries,omitempty"`
	Exits   []string `json:"exits,omitempty"`
}

type EdgeRecord struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// relationNames lists the snapshot keys in the order edges are written.
var relationNames = []graph.RelationKind{
	graph.RelationDirect,
	graph.RelationLateral,
	graph.RelationContains,
}

// Marshal flattens a store into a snapshot. Targets, vulnerabilities,
// attackers and edges all keep their insertion order, so a round trip
// preserves the enumeration order the engine documents.
func Marshal(s *graph.Store) *Snapshot {
	snap := &Snapshot{
		Version:   Version,
		Relations: make(map[string][]EdgeRecord),
	}
	for _, t := range s.Targets() {
		snap.Targets = append(snap.Targets, TargetRecord{
			ID:       t.ID,
			Name:     t.Name,
			Terminal: t.Terminal,
			Vulns:    t.VulnIDs(),
		})
	}
	for _, v := range s.Vulnerabilities() {
		snap.Vulnerabilities = append(snap.Vulnerabilities, VulnerabilityRecord{ID: v.ID, Name: v.Name})
	}
	for _, a := range s.Attackers() {
		snap.Attackers = append(snap.Attackers, AttackerRecord{
			ID:      a.ID,
			Name:    a.Name,
			Entries: a.Entries(),
			Exits:   a.Exits(),
		})
	}
	for _, k := range relationNames {
		var edges []EdgeRecord
		for _, t := range s.Targets() {
			for _, dst := range s.Destinations(k, t.ID) {
				edges = append(edges, EdgeRecord{From: t.ID, To: dst})
			}
		}
		snap.Relations[k.String()] = edges
	}
	return snap
}

// Build reconstructs a store from a snapshot, going through the store's own
// edit boundary so every reference is validated.
func (snap *Snapshot) Build() (*graph.Store, error) {
	if snap.Version != Version {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, Version)
	}
	s := graph.NewStore()
	for _, v := range snap.Vulnerabilities {
		if _, err := s.AddVulnerability(v.ID, v.Name); err != nil {
			return nil, fmt.Errorf("failed to restore vulnerability: %w", err)
		}
	}
	for _, t := range snap.Targets {
		if _, err := s.AddTarget(t.ID, t.Name); err != nil {
			return nil, fmt.Errorf("failed to restore target: %w", err)
		}
		if t.Terminal {
			if err := s.SetTerminal(t.ID, true); err != nil {
				return nil, err
			}
		}
		for _, vid := range t.Vulns {
			if err := s.Attach(t.ID, vid); err != nil {
				return nil, fmt.Errorf("failed to restore attachment: %w", err)
			}
		}
	}
	for _, a := range snap.Attackers {
		if _, err := s.AddAttacker(a.ID, a.Name); err != nil {
			return nil, fmt.Errorf("failed to restore attacker: %w", err)
		}
		for _, id := range a.Entries {
			if err := s.AddEntry(a.ID, id); err != nil {
				return nil, fmt.Errorf("failed to restore entry set: %w", err)
			}
		}
		for _, id := range a.Exits {
			if err := s.AddExit(a.ID, id); err != nil {
				return nil, fmt.Errorf("failed to restore exit set: %w", err)
			}
		}
	}
	for name, edges := range snap.Relations {
		kind, err := graph.ParseRelationKind(name)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if err := s.Link(kind, e.From, e.To); err != nil {
				return nil, fmt.Errorf("failed to restore %s relation: %w", name, err)
			}
		}
	}
	return s, nil
}

// Encode writes a store as indented JSON.
func Encode(w io.Writer, s *graph.Store) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Marshal(s))
}

// Decode reads a snapshot and rebuilds the store.
func Decode(r io.Reader) (*graph.Store, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return snap.Build()
}

// Save writes the model to a file.
func Save(s *graph.Store, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, s)
}

// Load reads a model back from a file.
func Load(filename string) (*graph.Store, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
