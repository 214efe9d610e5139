//go:build linux

// Package procattr provides platform-specific subprocess configuration so
// a Gemini CLI child (and anything it spawns) is never orphaned.
package procattr

import (
	"os/exec"
	"syscall"
)

// Set configures a dedicated process group and parent-death signal for the
// CLI child. On Linux, Pdeathsig delivers SIGTERM to the child if this
// server dies unexpectedly (OOM kill, SIGKILL), so a stuck CLI run cannot
// outlive its invocation.
func Set(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGTERM,
	}
}
