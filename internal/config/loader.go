package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/guillaumefe/menvuln-sub000/internal/embedded"
	"github.com/guillaumefe/menvuln-sub000/internal/graph"
	"gopkg.in/yaml.v3"
)

// ========== Scenario Model ==========

// Model is the YAML authoring format for a whole scenario: the target
// estate, the vulnerability pool, the attackers and an enumeration policy.
type Model struct {
	Policy          PolicySpec     `yaml:"policy"`
	Vulnerabilities []VulnSpec     `yaml:"vulnerabilities"`
	Targets         []TargetSpec   `yaml:"targets"`
	Relations       RelationsSpec  `yaml:"relations"`
	Attackers       []AttackerSpec `yaml:"attackers"`
}

type PolicySpec struct {
	IncludeLateral  bool `yaml:"include_lateral"`
	IncludeContains bool `yaml:"include_contains"`
	MaxPaths        int  `yaml:"max_paths"`
}

type VulnSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type TargetSpec struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Terminal bool     `yaml:"terminal"`
	Vulns    []string `yaml:"vulnerabilities"`
}

type AttackerSpec struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Entries []string `yaml:"entries"`
	Exits   []string `yaml:"exits"`
}

type RelationsSpec struct {
	Direct   []EdgeSpec `yaml:"direct"`
	Lateral  []EdgeSpec `yaml:"lateral"`
	Contains []EdgeSpec `yaml:"contains"`
}

type EdgeSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ========== Loader Functions ==========

func loadConfigData(configPath, defaultName string) ([]byte, error) {
	// 1. Try the filesystem first
	if configPath == "" {
		configPath = filepath.Join("config", defaultName)
	}

	if _, err := os.Stat(configPath); err == nil {
		return os.ReadFile(configPath)
	}

	// 2. Fall back to the embedded scenario
	// Note: embed always uses forward slashes
	embedPath := "config/" + defaultName
	return embedded.Content.ReadFile(embedPath)
}

// LoadModel reads a scenario from configPath, or from the embedded default
// when the path is empty or missing.
func LoadModel(configPath string) (*Model, error) {
	data, err := loadConfigData(configPath, "model.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	return ParseModel(data)
}

// ParseModel decodes a scenario document.
func ParseModel(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return &m, nil
}

// GraphPolicy converts the policy section into the engine's policy type.
func (m *Model) GraphPolicy() graph.Policy {
	return graph.Policy{
		IncludeLateral:  m.Policy.IncludeLateral,
		IncludeContains: m.Policy.IncludeContains,
	}
}

// Build compiles the scenario into a store. Every cross-reference goes
// through the store's edit boundary, so a dangling id in the document is
// rejected here instead of surfacing later during enumeration. Entries that
// omit an id get a generated one.
func (m *Model) Build() (*graph.Store, error) {
	s := graph.NewStore()

	for _, v := range m.Vulnerabilities {
		if _, err := s.AddVulnerability(orNewID(v.ID), v.Name); err != nil {
			return nil, fmt.Errorf("invalid vulnerability %q: %w", v.Name, err)
		}
	}
	for _, t := range m.Targets {
		id := orNewID(t.ID)
		if _, err := s.AddTarget(id, t.Name); err != nil {
			return nil, fmt.Errorf("invalid target %q: %w", t.Name, err)
		}
		if t.Terminal {
			if err := s.SetTerminal(id, true); err != nil {
				return nil, err
			}
		}
		for _, vid := range t.Vulns {
			if err := s.Attach(id, vid); err != nil {
				return nil, fmt.Errorf("invalid vulnerability reference on target %q: %w", t.Name, err)
			}
		}
	}

	links := []struct {
		kind  graph.RelationKind
		edges []EdgeSpec
	}{
		{graph.RelationDirect, m.Relations.Direct},
		{graph.RelationLateral, m.Relations.Lateral},
		{graph.RelationContains, m.Relations.Contains},
	}
	for _, l := range links {
		for _, e := range l.edges {
			if err := s.Link(l.kind, e.From, e.To); err != nil {
				return nil, fmt.Errorf("invalid %s relation %s -> %s: %w", l.kind, e.From, e.To, err)
			}
		}
	}

	for _, a := range m.Attackers {
		id := orNewID(a.ID)
		if _, err := s.AddAttacker(id, a.Name); err != nil {
			return nil, fmt.Errorf("invalid attacker %q: %w", a.Name, err)
		}
		for _, tid := range a.Entries {
			if err := s.AddEntry(id, tid); err != nil {
				return nil, fmt.Errorf("invalid entry on attacker %q: %w", a.Name, err)
			}
		}
		for _, tid := range a.Exits {
			if err := s.AddExit(id, tid); err != nil {
				return nil, fmt.Errorf("invalid exit on attacker %q: %w", a.Name, err)
			}
		}
	}
	return s, nil
}

func orNewID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
