package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCLIArgs_Default(t *testing.T) {
	pm := newProcessManager("hello world", "/tmp", defaultConfig())
	args := pm.BuildCLIArgs()

	expected := []string{
		"--prompt", "hello world",
		"-o", "stream-json",
	}
	assert.Equal(t, expected, args)
}

func TestBuildCLIArgs_WithSandbox(t *testing.T) {
	config := defaultConfig()
	config.Sandbox = true
	pm := newProcessManager("test", "/tmp", config)

	assert.Contains(t, pm.BuildCLIArgs(), "--sandbox")
}

func TestBuildCLIArgs_WithModel(t *testing.T) {
	config := defaultConfig()
	config.Model = "gemini-2.5-pro"
	pm := newProcessManager("test", "/tmp", config)
	args := pm.BuildCLIArgs()

	assert.Contains(t, args, "--model")
	assert.Contains(t, args, "gemini-2.5-pro")
}

func TestBuildCLIArgs_EmptyModelOmitted(t *testing.T) {
	pm := newProcessManager("test", "/tmp", defaultConfig())

	assert.NotContains(t, pm.BuildCLIArgs(), "--model")
}

func TestBuildCLIArgs_WithResume(t *testing.T) {
	config := defaultConfig()
	config.ResumeSessionID = "abc123"
	pm := newProcessManager("test", "/tmp", config)
	args := pm.BuildCLIArgs()

	assert.Contains(t, args, "--resume")
	assert.Contains(t, args, "abc123")
}

func TestBuildCLIArgs_Order(t *testing.T) {
	config := defaultConfig()
	config.Sandbox = true
	config.Model = "gemini-2.5-flash"
	config.ResumeSessionID = "s1"
	pm := newProcessManager("do the thing", "/tmp", config)

	expected := []string{
		"--prompt", "do the thing",
		"-o", "stream-json",
		"--sandbox",
		"--model", "gemini-2.5-flash",
		"--resume", "s1",
	}
	assert.Equal(t, expected, pm.BuildCLIArgs())
}

func TestStart_WorkspaceNotFound(t *testing.T) {
	pm := newProcessManager("test", "/nonexistent/workspace/path", defaultConfig())

	err := pm.Start(context.Background())
	require.Error(t, err)

	var wsErr *WorkspaceNotFoundError
	require.ErrorAs(t, err, &wsErr)
	assert.Equal(t, "/nonexistent/workspace/path", wsErr.Path)
	assert.False(t, pm.started, "no process should be launched for a missing workspace")
}

func TestStart_WorkspaceCheckedBeforeCLILookup(t *testing.T) {
	// Both the workspace and the CLI are missing; the workspace error wins.
	config := defaultConfig()
	config.CLIPath = "definitely-not-a-real-binary"
	pm := newProcessManager("test", "/nonexistent/workspace/path", config)

	err := pm.Start(context.Background())
	var wsErr *WorkspaceNotFoundError
	require.ErrorAs(t, err, &wsErr)
}

func TestStart_CLINotFound(t *testing.T) {
	config := defaultConfig()
	config.CLIPath = "definitely-not-a-real-binary"
	pm := newProcessManager("test", t.TempDir(), config)

	err := pm.Start(context.Background())
	require.Error(t, err)

	var cliErr *CLINotFoundError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, "definitely-not-a-real-binary", cliErr.Path)
	assert.Error(t, errors.Unwrap(err))
}

func TestStop_NotStarted(t *testing.T) {
	pm := newProcessManager("test", "/tmp", defaultConfig())
	assert.NoError(t, pm.Stop())
}
