// Package gemini wraps the Gemini CLI as a one-shot subprocess.
//
// The package spawns the CLI with a prompt, streams its NDJSON output,
// extracts the session identifier and assistant text, and guarantees the
// child process is reaped before returning. The CLI operates in one-shot
// mode only: there is no interactive stdin conversation, and conversation
// continuity is handled by resuming with a previously returned session id.
//
// # Quick Start
//
//	result, err := gemini.Execute(ctx, "What is 2+2?", "/path/to/project")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Success {
//	    fmt.Println(result.AgentMessages)
//	}
//
// # Resuming a Conversation
//
//	result, err := gemini.Execute(ctx, "Continue from there", workDir,
//	    gemini.WithResume(previous.SessionID),
//	)
//
// Execute returns a hard error only when the invocation could not run at
// all (missing workspace, missing CLI binary, spawn failure). Everything
// that happens after the process starts, including a timeout, is folded
// into the returned Result with Success set to false and an explanatory
// Error string.
package gemini
