//go:build !unix

package sat

import "os/exec"

func killProcessTree(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
}
