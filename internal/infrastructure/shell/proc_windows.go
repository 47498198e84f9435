//go:build windows

package shell

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}

func signalTerm(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

func signalKill(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}
