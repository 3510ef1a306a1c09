//go:build integration && !windows

package mdexport

import (
	"errors"
	"syscall"
	"testing"
	"time"
)

// assertProcessGone polls until pid no longer exists. An orphaned helper
// can take a moment to be reaped after the group is killed.
func assertProcessGone(t *testing.T, pid int) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for {
		err := syscall.Kill(pid, 0)
		if errors.Is(err, syscall.ESRCH) {
			return
		}
		if time.Now().After(deadline) {
			t.Errorf("browser process %d still exists after export (kill -0: %v)", pid, err)
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
