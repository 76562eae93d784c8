package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildResolverStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := s.AddTarget(id, "Target "+id)
		require.NoError(t, err)
	}
	require.NoError(t, s.Link(RelationDirect, "a", "b"))
	require.NoError(t, s.Link(RelationLateral, "a", "c"))
	require.NoError(t, s.Link(RelationContains, "a", "d"))
	require.NoError(t, s.Link(RelationLateral, "a", "b")) // duplicate via second kind
	return s
}

// TestNeighbors_DirectOnly verifies only direct edges come back under the
// default policy.
func TestNeighbors_DirectOnly(t *testing.T) {
	s := buildResolverStore(t)
	assert.Equal(t, []string{"b"}, s.Neighbors("a", Policy{}))
}

// TestNeighbors_PolicyToggles verifies lateral and contains edges are only
// traversed when the policy includes them.
func TestNeighbors_PolicyToggles(t *testing.T) {
	s := buildResolverStore(t)

	assert.Equal(t, []string{"b", "c"},
		s.Neighbors("a", Policy{IncludeLateral: true}))
	assert.Equal(t, []string{"b", "d"},
		s.Neighbors("a", Policy{IncludeContains: true}))
	assert.Equal(t, []string{"b", "c", "d"},
		s.Neighbors("a", Policy{IncludeLateral: true, IncludeContains: true}))
}

// TestNeighbors_Deduplicates verifies a destination reachable through two
// kinds appears once, at its earliest position.
func TestNeighbors_Deduplicates(t *testing.T) {
	s := buildResolverStore(t)

	got := s.Neighbors("a", Policy{IncludeLateral: true})
	assert.Equal(t, []string{"b", "c"}, got, "b is reachable via direct and lateral but must appear once")
}

// TestNeighbors_UnknownID verifies a dangling id yields an empty set, not
// an error or a panic.
func TestNeighbors_UnknownID(t *testing.T) {
	s := buildResolverStore(t)
	assert.Empty(t, s.Neighbors("ghost", Policy{IncludeLateral: true, IncludeContains: true}))
}

// TestPolicyKinds verifies the traversal order of included kinds.
func TestPolicyKinds(t *testing.T) {
	assert.Equal(t, []RelationKind{RelationDirect}, Policy{}.Kinds())
	assert.Equal(t,
		[]RelationKind{RelationDirect, RelationLateral, RelationContains},
		Policy{IncludeLateral: true, IncludeContains: true}.Kinds())
}
