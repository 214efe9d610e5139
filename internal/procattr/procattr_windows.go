//go:build windows

// Package procattr provides platform-specific subprocess configuration so
// a Gemini CLI child (and anything it spawns) is never orphaned.
package procattr

import "os/exec"

// Set is a no-op on Windows; there are no POSIX process groups to
// configure, and termination falls back to killing the direct child.
func Set(cmd *exec.Cmd) {}
