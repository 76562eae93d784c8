package persist

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guillaumefe/menvuln-sub000/internal/graph"
)

func buildModel(t *testing.T) *graph.Store {
	t.Helper()
	s := graph.NewStore()
	_, err := s.AddVulnerability("v1", "SQL injection")
	require.NoError(t, err)
	for _, id := range []string{"a", "b", "c"} {
		_, err := s.AddTarget(id, "Target "+id)
		require.NoError(t, err)
	}
	require.NoError(t, s.SetTerminal("c", true))
	require.NoError(t, s.Attach("b", "v1"))
	require.NoError(t, s.Link(graph.RelationDirect, "a", "c"))
	require.NoError(t, s.Link(graph.RelationDirect, "a", "b"))
	require.NoError(t, s.Link(graph.RelationLateral, "b", "a"))
	require.NoError(t, s.Link(graph.RelationContains, "a", "b"))
	_, err = s.AddAttacker("atk", "Red team")
	require.NoError(t, err)
	require.NoError(t, s.AddEntry("atk", "a"))
	require.NoError(t, s.AddExit("atk", "c"))
	return s
}

// TestSaveLoad_RoundTrip verifies a snapshot restores the whole model,
// including flags, attachments, entry/exit sets and edge insertion order.
func TestSaveLoad_RoundTrip(t *testing.T) {
	s := buildModel(t)
	path := filepath.Join(t.TempDir(), "state.json")

	require.NoError(t, Save(s, path))
	got, err := Load(path)
	require.NoError(t, err)

	tgt, ok := got.Target("c")
	require.True(t, ok)
	assert.True(t, tgt.Terminal)

	tgt, ok = got.Target("b")
	require.True(t, ok)
	assert.Equal(t, []string{"v1"}, tgt.VulnIDs())

	// Insertion order of a's direct successors must survive the round trip.
	assert.Equal(t, []string{"c", "b"}, got.Destinations(graph.RelationDirect, "a"))
	assert.Equal(t, []string{"a"}, got.Destinations(graph.RelationLateral, "b"))
	assert.Equal(t, []string{"b"}, got.Destinations(graph.RelationContains, "a"))

	atk, ok := got.Attacker("atk")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, atk.Entries())
	assert.Equal(t, []string{"c"}, atk.Exits())

	// The restored model must enumerate identically.
	res := graph.ComputePathsForAttacker(got, "atk", graph.Policy{}, 0)
	require.Len(t, res.Paths, 1)
	assert.Equal(t, "c", res.Paths[0].Nodes[len(res.Paths[0].Nodes)-1].ID)
}

// TestDecode_RejectsUnknownVersion verifies the version gate.
func TestDecode_RejectsUnknownVersion(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version": 99}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

// TestDecode_RejectsDanglingEdge verifies a snapshot referencing a missing
// target is rejected at load time.
func TestDecode_RejectsDanglingEdge(t *testing.T) {
	doc := `{
	  "version": 1,
	  "targets": [{"id": "a", "name": "Target a"}],
	  "relations": {"direct": [{"from": "a", "to": "ghost"}]}
	}`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrUnknownTarget)
}

// TestDecode_RejectsMalformedJSON verifies parse failures come back as
// errors, not panics.
func TestDecode_RejectsMalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader("{not json"))
	assert.Error(t, err)
}
