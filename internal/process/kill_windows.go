//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree force-kills pid and its children with taskkill (/F force, /T tree).
// Non-positive pids are ignored.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the browser may already have exited after Close.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
