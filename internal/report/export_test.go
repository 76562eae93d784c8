package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guillaumefe/menvuln-sub000/internal/graph"
)

func samplePath(t *testing.T) graph.AttackPath {
	t.Helper()
	s := graph.NewStore()
	for _, id := range []string{"a", "b"} {
		_, err := s.AddTarget(id, "Target "+id)
		require.NoError(t, err)
	}
	require.NoError(t, s.SetTerminal("b", true))
	require.NoError(t, s.Link(graph.RelationDirect, "a", "b"))
	_, err := s.AddVulnerability("v1", "SQL injection")
	require.NoError(t, err)
	require.NoError(t, s.Attach("b", "v1"))
	_, err = s.AddAttacker("atk", "Red team")
	require.NoError(t, err)
	require.NoError(t, s.AddEntry("atk", "a"))

	res := graph.ComputePathsForAttacker(s, "atk", graph.Policy{}, 0)
	require.Len(t, res.Paths, 1)
	return res.Paths[0]
}

// TestRoute verifies the arrow-joined rendering of a path.
func TestRoute(t *testing.T) {
	p := samplePath(t)
	assert.Equal(t, "Target a -> Target b", Route(p))
}

// TestVulnSummary verifies only hops with vulnerabilities appear in the
// flattened cell.
func TestVulnSummary(t *testing.T) {
	p := samplePath(t)
	assert.Equal(t, "Target b: SQL injection", vulnSummary(p))
}
