//go:build integration && windows

package mdexport

import (
	"os"
	"testing"
	"time"
)

// assertProcessGone polls until pid can no longer be opened.
func assertProcessGone(t *testing.T, pid int) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for {
		p, err := os.FindProcess(pid)
		if err != nil {
			return
		}
		_ = p.Release()
		if time.Now().After(deadline) {
			t.Errorf("browser process %d still exists after export", pid)
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
