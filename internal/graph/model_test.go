package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddTarget_DuplicateID verifies that reusing a target id is rejected.
func TestAddTarget_DuplicateID(t *testing.T) {
	s := NewStore()
	_, err := s.AddTarget("a", "Web server")
	require.NoError(t, err)

	_, err = s.AddTarget("a", "Other name")
	assert.ErrorIs(t, err, ErrDuplicateID)
}

// TestAddTarget_DuplicateName verifies the edit boundary rejects a second
// target with the same display name.
func TestAddTarget_DuplicateName(t *testing.T) {
	s := NewStore()
	_, err := s.AddTarget("a", "Web server")
	require.NoError(t, err)

	_, err = s.AddTarget("b", "Web server")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

// TestRenameTarget verifies renames land and name collisions are rejected.
func TestRenameTarget(t *testing.T) {
	s := NewStore()
	_, err := s.AddTarget("a", "Web server")
	require.NoError(t, err)
	_, err = s.AddTarget("b", "Database")
	require.NoError(t, err)

	require.NoError(t, s.RenameTarget("a", "Edge proxy"))
	got, ok := s.Target("a")
	require.True(t, ok)
	assert.Equal(t, "Edge proxy", got.Name)

	assert.ErrorIs(t, s.RenameTarget("b", "Edge proxy"), ErrDuplicateName)
	assert.ErrorIs(t, s.RenameTarget("zz", "anything"), ErrUnknownTarget)
}

// TestAttachDetach verifies vulnerability attachment, idempotence of a
// double attach, and reference validation on both sides.
func TestAttachDetach(t *testing.T) {
	s := NewStore()
	_, err := s.AddTarget("a", "Web server")
	require.NoError(t, err)
	_, err = s.AddVulnerability("v1", "SQL injection")
	require.NoError(t, err)

	require.NoError(t, s.Attach("a", "v1"))
	require.NoError(t, s.Attach("a", "v1")) // no-op
	tgt, _ := s.Target("a")
	assert.Equal(t, []string{"v1"}, tgt.VulnIDs())

	assert.ErrorIs(t, s.Attach("a", "nope"), ErrUnknownVulnerability)
	assert.ErrorIs(t, s.Attach("nope", "v1"), ErrUnknownTarget)

	require.NoError(t, s.Detach("a", "v1"))
	assert.Empty(t, tgt.VulnIDs())
}

// TestRemoveVulnerability_DetachesEverywhere verifies pool removal strips
// the label from every target carrying it.
func TestRemoveVulnerability_DetachesEverywhere(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b"} {
		_, err := s.AddTarget(id, "Target "+id)
		require.NoError(t, err)
	}
	_, err := s.AddVulnerability("v1", "SQL injection")
	require.NoError(t, err)
	require.NoError(t, s.Attach("a", "v1"))
	require.NoError(t, s.Attach("b", "v1"))

	require.NoError(t, s.RemoveVulnerability("v1"))

	for _, id := range []string{"a", "b"} {
		tgt, _ := s.Target(id)
		assert.Empty(t, tgt.VulnIDs())
	}
	_, ok := s.Vulnerability("v1")
	assert.False(t, ok)
}

// TestRemoveTarget_Cascades verifies target removal clears the id from all
// three relation maps in both directions and from every attacker's entry
// and exit sets.
func TestRemoveTarget_Cascades(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		_, err := s.AddTarget(id, "Target "+id)
		require.NoError(t, err)
	}
	require.NoError(t, s.Link(RelationDirect, "a", "b"))
	require.NoError(t, s.Link(RelationLateral, "b", "a"))
	require.NoError(t, s.Link(RelationContains, "c", "b"))
	require.NoError(t, s.Link(RelationDirect, "b", "c"))

	_, err := s.AddAttacker("atk", "Attacker")
	require.NoError(t, err)
	require.NoError(t, s.AddEntry("atk", "b"))
	require.NoError(t, s.AddExit("atk", "b"))

	require.NoError(t, s.RemoveTarget("b"))

	_, ok := s.Target("b")
	assert.False(t, ok)
	assert.Empty(t, s.Destinations(RelationDirect, "a"))
	assert.Empty(t, s.Destinations(RelationLateral, "b"))
	assert.Empty(t, s.Destinations(RelationContains, "c"))

	atk, _ := s.Attacker("atk")
	assert.Empty(t, atk.Entries())
	assert.Empty(t, atk.Exits())
}

// TestLink_ValidatesEndpoints verifies both ends of an edge must exist.
func TestLink_ValidatesEndpoints(t *testing.T) {
	s := NewStore()
	_, err := s.AddTarget("a", "Target a")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Link(RelationDirect, "a", "ghost"), ErrUnknownTarget)
	assert.ErrorIs(t, s.Link(RelationDirect, "ghost", "a"), ErrUnknownTarget)
}

// TestDestinations_InsertionOrder verifies neighbor sets iterate in first-
// insertion order and relinking an existing pair does not move it.
func TestDestinations_InsertionOrder(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := s.AddTarget(id, "Target "+id)
		require.NoError(t, err)
	}
	require.NoError(t, s.Link(RelationDirect, "a", "c"))
	require.NoError(t, s.Link(RelationDirect, "a", "b"))
	require.NoError(t, s.Link(RelationDirect, "a", "d"))
	require.NoError(t, s.Link(RelationDirect, "a", "c")) // no-op

	assert.Equal(t, []string{"c", "b", "d"}, s.Destinations(RelationDirect, "a"))
}

// TestEntryExitEdits verifies attacker entry/exit management and its
// reference validation.
func TestEntryExitEdits(t *testing.T) {
	s := NewStore()
	_, err := s.AddTarget("a", "Target a")
	require.NoError(t, err)
	_, err = s.AddAttacker("atk", "Attacker")
	require.NoError(t, err)

	require.NoError(t, s.AddEntry("atk", "a"))
	require.NoError(t, s.AddExit("atk", "a"))
	assert.ErrorIs(t, s.AddEntry("atk", "ghost"), ErrUnknownTarget)
	assert.ErrorIs(t, s.AddEntry("ghost", "a"), ErrUnknownAttacker)

	atk, _ := s.Attacker("atk")
	assert.Equal(t, []string{"a"}, atk.Entries())
	assert.Equal(t, []string{"a"}, atk.Exits())

	require.NoError(t, s.RemoveEntry("atk", "a"))
	require.NoError(t, s.RemoveExit("atk", "a"))
	assert.Empty(t, atk.Entries())
	assert.Empty(t, atk.Exits())
}

// TestClone_Independent verifies mutating the original never shows through
// a clone.
func TestClone_Independent(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b"} {
		_, err := s.AddTarget(id, "Target "+id)
		require.NoError(t, err)
	}
	_, err := s.AddVulnerability("v1", "SQL injection")
	require.NoError(t, err)
	require.NoError(t, s.Attach("a", "v1"))
	require.NoError(t, s.Link(RelationDirect, "a", "b"))

	c := s.Clone()
	require.NoError(t, s.RemoveTarget("b"))
	require.NoError(t, s.Detach("a", "v1"))

	assert.Equal(t, []string{"b"}, c.Destinations(RelationDirect, "a"))
	tgt, ok := c.Target("a")
	require.True(t, ok)
	assert.Equal(t, []string{"v1"}, tgt.VulnIDs())
}

// TestParseRelationKind verifies the wire-name round trip for all kinds.
func TestParseRelationKind(t *testing.T) {
	for _, k := range relationKinds {
		got, err := ParseRelationKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseRelationKind("sideways")
	assert.Error(t, err)
}
