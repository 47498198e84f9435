//go:build !windows

package shell

import (
	"os/exec"
	"syscall"
)

// setProcessGroup gives the child its own process group so signals reach
// every process in a shell pipeline, not just the shell.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func signalTerm(cmd *exec.Cmd) { signalGroup(cmd, syscall.SIGTERM) }

func signalKill(cmd *exec.Cmd) { signalGroup(cmd, syscall.SIGKILL) }

func signalGroup(cmd *exec.Cmd, sig syscall.Signal) {
	if cmd.Process == nil {
		return
	}
	if pgid, err := syscall.Getpgid(cmd.Process.Pid); err == nil {
		_ = syscall.Kill(-pgid, sig)
		return
	}
	// Group lookup fails once the child is gone; best effort on the pid.
	_ = cmd.Process.Kill()
}
