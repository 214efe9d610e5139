package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdxxxx/gemini-mcp/gemini"
	"github.com/pdxxxx/gemini-mcp/internal/config"
)

const geminiToolDescription = `Invokes the Gemini CLI to execute AI-driven tasks, returning structured JSON events and a session identifier for conversation continuity.

**Return structure:**
- success: boolean indicating execution status
- SESSION_ID: unique identifier for resuming this conversation in future calls
- agent_messages: concatenated assistant response text
- all_messages: (optional) complete array of JSON events when return_all_messages=true
- error: error description when success=false

**Best practices:**
- Always capture and reuse SESSION_ID for multi-turn interactions
- Enable sandbox mode when file modifications should be isolated
- Use return_all_messages only when detailed execution traces are necessary (increases payload size)
- Only pass model when the user has explicitly requested a specific model`

// geminiToolInput is the tools/call argument schema for the gemini tool.
type geminiToolInput struct {
	Prompt            string `json:"PROMPT" jsonschema:"required,description=The prompt/instruction to send to Gemini"`
	CD                string `json:"cd" jsonschema:"required,description=Working directory for Gemini to execute in"`
	Sandbox           bool   `json:"sandbox,omitempty" jsonschema:"description=Run in sandbox mode (default: false)"`
	SessionID         string `json:"SESSION_ID,omitempty" jsonschema:"description=Session ID to resume a previous conversation"`
	ReturnAllMessages bool   `json:"return_all_messages,omitempty" jsonschema:"description=Return all messages including reasoning and tool calls (default: false)"`
	Model             string `json:"model,omitempty" jsonschema:"description=Model to use (only specify if user explicitly requests)"`
}

// geminiHandler returns the tool handler bound to the server config. The
// handler always returns a serialized Result; execution failures become
// {"success":false,...} payloads instead of protocol errors.
func geminiHandler(cfg *config.Config, logger *slog.Logger) func(context.Context, geminiToolInput) (string, error) {
	return func(ctx context.Context, input geminiToolInput) (string, error) {
		start := time.Now()
		result := executeGemini(ctx, cfg, input)
		logger.Debug("gemini execution finished",
			"success", result.Success,
			"session_id", result.SessionID,
			"duration", time.Since(start),
		)
		return marshalResult(result), nil
	}
}

func executeGemini(ctx context.Context, cfg *config.Config, input geminiToolInput) *gemini.Result {
	if input.Prompt == "" {
		return &gemini.Result{Success: false, Error: "PROMPT must not be empty"}
	}

	opts := []gemini.Option{
		gemini.WithCLIPath(cfg.CLIPath),
		gemini.WithTimeout(cfg.Timeout()),
		gemini.WithWaitTimeout(cfg.WaitTimeout()),
	}
	if input.Sandbox {
		opts = append(opts, gemini.WithSandbox())
	}
	if input.Model != "" {
		opts = append(opts, gemini.WithModel(input.Model))
	} else if cfg.Model != "" {
		opts = append(opts, gemini.WithModel(cfg.Model))
	}
	if input.SessionID != "" {
		opts = append(opts, gemini.WithResume(input.SessionID))
	}
	if input.ReturnAllMessages {
		opts = append(opts, gemini.WithReturnAllMessages())
	}

	result, err := gemini.Execute(ctx, input.Prompt, input.CD, opts...)
	if err != nil {
		// Hard failures (missing workspace, missing CLI, refused spawn)
		// still surface as a well-formed payload.
		return &gemini.Result{Success: false, Error: err.Error()}
	}
	return result
}

// marshalResult serializes a Result, degrading to an error payload rather
// than ever returning invalid JSON.
func marshalResult(result *gemini.Result) string {
	data, err := json.Marshal(result)
	if err == nil {
		return string(data)
	}

	fallback := gemini.Result{
		Success: false,
		Error:   fmt.Sprintf("JSON serialization error: %v", err),
	}
	if data, err := json.Marshal(&fallback); err == nil {
		return string(data)
	}
	return `{"success":false,"error":"Unknown error"}`
}
