//go:build unix

package runner

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		// New process group to manage children as a unit
		Setpgid: true,
	}
}

// killProcessGroup sends SIGKILL to the process group led by pid. A group that no longer
// exists counts as killed.
func killProcessGroup(pid int) error {
	// Kill the process group (negative PID means process group)
	err := unix.Kill(-pid, unix.SIGKILL)
	if errors.Is(err, unix.ESRCH) {
		return nil
	}
	return err
}
