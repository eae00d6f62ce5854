//go:build unix

package sat

import (
	"os/exec"
	"syscall"
)

// killProcessTree puts the worker in its own process group so that cancellation also kills
// any engine binary the worker spawned
func killProcessTree(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
