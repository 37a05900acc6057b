//go:build linux

package hal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ExecReset replaces the running process with a fresh copy of itself.
type ExecReset struct {
	// BeforeExec releases anything the new process must be able to reopen.
	BeforeExec func()
}

func (r ExecReset) Reset() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if r.BeforeExec != nil {
		r.BeforeExec()
	}
	if err := unix.Exec(exe, os.Args, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", exe, err)
	}
	return nil
}

// RebootReset restarts the whole machine. Needs CAP_SYS_BOOT.
type RebootReset struct{}

func (RebootReset) Reset() error {
	unix.Sync()
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_RESTART); err != nil {
		return fmt.Errorf("reboot: %w", err)
	}
	return nil
}
