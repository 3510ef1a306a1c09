//go:build !windows

package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid, which takes the
// browser's renderer and GPU helpers down with it.
// Non-positive pids are ignored: -0 would target our own process group.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the browser may already have exited after Close.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
