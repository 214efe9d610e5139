//go:build windows

package procattr

import (
	"os"
	"syscall"
)

// SignalGroup on Windows falls back to terminating the direct child; group
// signaling is a POSIX concept.
func SignalGroup(p *os.Process, _ syscall.Signal) error {
	if p == nil {
		return nil
	}
	return p.Kill()
}

// KillGroup forcefully terminates the direct child process.
func KillGroup(p *os.Process) error {
	return SignalGroup(p, syscall.Signal(0))
}
