package process

// Notes:
// - Real termination is covered by the browser integration tests; unit tests
//   only check that guarded and unknown pids are handled without panicking.

import "testing"

func TestKillTree_IgnoresNonPositivePID(t *testing.T) {
	t.Parallel()

	// Must return without signalling: -0 would be our own process group.
	KillTree(0)
	KillTree(-1)
}

func TestKillTree_UnknownPID(t *testing.T) {
	t.Parallel()

	KillTree(999999999)
}
