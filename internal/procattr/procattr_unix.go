//go:build unix && !linux

// Package procattr provides platform-specific subprocess configuration so
// a Gemini CLI child (and anything it spawns) is never orphaned.
package procattr

import (
	"os/exec"
	"syscall"
)

// Set configures a dedicated process group for the CLI child. Pdeathsig is
// Linux-only; Setpgid still lets the parent clean up the whole group with
// a single negative-PID signal.
func Set(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
