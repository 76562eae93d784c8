package discover

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLooksUntrustedPath verifies the world-writable prefix heuristic.
func TestLooksUntrustedPath(t *testing.T) {
	assert.True(t, looksUntrustedPath("/tmp/payload"))
	assert.True(t, looksUntrustedPath("/dev/shm/x"))
	assert.False(t, looksUntrustedPath("/usr/bin/sshd"))
	assert.False(t, looksUntrustedPath(""))
}

// TestIsPrivileged verifies the privileged-port boundary.
func TestIsPrivileged(t *testing.T) {
	assert.True(t, isPrivileged(22))
	assert.True(t, isPrivileged(1023))
	assert.False(t, isPrivileged(1024))
	assert.False(t, isPrivileged(0))
}

// TestSnapshot_LiveHost exercises a real capture: the process running this
// test must appear as a target, and the seeded attacker must exist.
func TestSnapshot_LiveHost(t *testing.T) {
	s, err := Snapshot(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, s.Targets())
	_, ok := s.Attacker(AttackerID)
	assert.True(t, ok)
}
