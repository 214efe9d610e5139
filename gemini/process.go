package gemini

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/pdxxxx/gemini-mcp/internal/procattr"
)

// reapTimeout bounds the post-kill wait so a stuck reap can never hang the
// caller.
const reapTimeout = time.Second

// processManager manages one Gemini CLI process. The CLI operates in
// one-shot mode: the prompt is passed on the command line and stdin is
// never attached.
type processManager struct {
	stdout   io.ReadCloser
	cmd      *exec.Cmd
	config   Config
	prompt   string
	workDir  string
	mu       sync.Mutex
	started  bool
	stopping bool
}

// newProcessManager creates a new process manager.
func newProcessManager(prompt, workDir string, config Config) *processManager {
	return &processManager{
		config:  config,
		prompt:  prompt,
		workDir: workDir,
	}
}

// BuildCLIArgs builds the CLI arguments from the config and prompt.
//
// The Gemini CLI uses: gemini --prompt <text> -o stream-json [options]
func (pm *processManager) BuildCLIArgs() []string {
	args := []string{
		"--prompt", escapePrompt(pm.prompt),
		"-o", "stream-json",
	}

	if pm.config.Sandbox {
		args = append(args, "--sandbox")
	}

	if pm.config.Model != "" {
		args = append(args, "--model", pm.config.Model)
	}

	if pm.config.ResumeSessionID != "" {
		args = append(args, "--resume", pm.config.ResumeSessionID)
	}

	return args
}

// resolveCLI locates the CLI binary on PATH. The lookup runs fresh on
// every invocation; PATH can change between calls.
func (pm *processManager) resolveCLI() (string, error) {
	name := pm.config.CLIPath
	if name == "" {
		name = "gemini"
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", &CLINotFoundError{Path: name, Cause: err}
	}
	return path, nil
}

// Start verifies the workspace, resolves the CLI, and spawns the process.
func (pm *processManager) Start(ctx context.Context) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.started {
		return ErrAlreadyStarted
	}

	if info, err := os.Stat(pm.workDir); err != nil || !info.IsDir() {
		return &WorkspaceNotFoundError{Path: pm.workDir}
	}

	cliPath, err := pm.resolveCLI()
	if err != nil {
		return err
	}

	pm.cmd = exec.CommandContext(ctx, cliPath, pm.BuildCLIArgs()...)
	pm.cmd.Dir = pm.workDir

	pm.cmd.Env = os.Environ()
	for k, v := range pm.config.Env {
		pm.cmd.Env = append(pm.cmd.Env, k+"="+v)
	}

	// Configure process group for orphan prevention
	procattr.Set(pm.cmd)

	// Stdin stays unattached and stderr is discarded rather than piped: a
	// filled stderr buffer would stall the child while we only drain stdout.
	pm.cmd.Stdin = nil
	pm.cmd.Stderr = nil

	pm.stdout, err = pm.cmd.StdoutPipe()
	if err != nil {
		return &ProcessError{Message: "failed to create stdout pipe", Cause: err}
	}

	if err := pm.cmd.Start(); err != nil {
		return &ProcessError{Message: "failed to start gemini process", Cause: err}
	}

	pm.started = true
	return nil
}

// Stdout returns the child's stdout stream.
func (pm *processManager) Stdout() io.Reader {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.stdout
}

// Stop reaps the CLI process. It waits for a voluntary exit within the
// configured grace window, then escalates to killing the process group and
// performs a bounded final reap. Stop runs on every exit route from the
// read stage; some CLI versions do not exit promptly on stream end, so the
// graceful wait comes first.
func (pm *processManager) Stop() error {
	pm.mu.Lock()
	if !pm.started || pm.stopping {
		pm.mu.Unlock()
		return nil
	}
	pm.stopping = true
	pm.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- pm.cmd.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-time.After(pm.config.WaitTimeout):
		// Process didn't exit on its own, force kill
	}

	if pm.cmd.Process != nil {
		_ = procattr.KillGroup(pm.cmd.Process)
	}

	select {
	case <-done:
	case <-time.After(reapTimeout):
		// Even SIGKILL did not reap in time. Close the pipe ourselves so a
		// reader blocked on it cannot hang the caller.
		if pm.stdout != nil {
			_ = pm.stdout.Close()
		}
	}

	return nil
}

// errProcessDone reports whether the error is the normal end of a reaped
// process rather than a genuine I/O fault.
func errProcessDone(err error) bool {
	return errors.Is(err, os.ErrClosed) || errors.Is(err, io.EOF)
}
