package gemini

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// deprecatedPromptWarning is noise some CLI versions emit as assistant
// content; it is filtered out of the accumulated text.
const deprecatedPromptWarning = "The --prompt (-p) flag has been deprecated"

// maxLineBytes is the scanner buffer ceiling for a single NDJSON line.
const maxLineBytes = 10 * 1024 * 1024

// Result is the classified outcome of one Gemini CLI execution. Optional
// fields are omitted from JSON rather than serialized as null.
type Result struct {
	Success       bool              `json:"success"`
	SessionID     string            `json:"SESSION_ID,omitempty"`
	AgentMessages string            `json:"agent_messages,omitempty"`
	AllMessages   []json.RawMessage `json:"all_messages,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// Execute runs the Gemini CLI with the given prompt in workDir and streams
// its output until the turn completes, the stream ends, or the deadline
// elapses. The child process is always reaped before Execute returns.
//
// A hard error is returned only when the invocation could not run at all:
// missing workspace, missing CLI binary, or a refused spawn. Every later
// condition, including a timeout, is classified into the Result.
func Execute(ctx context.Context, prompt, workDir string, opts ...Option) (*Result, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	pm := newProcessManager(prompt, workDir, config)
	if err := pm.Start(ctx); err != nil {
		return nil, err
	}

	c := newCollector(config)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.run(pm.Stdout())
	}()

	timer := time.NewTimer(config.Timeout)
	defer timer.Stop()

	timedOut := false
	select {
	case <-done:
	case <-timer.C:
		timedOut = true
	}

	// The sequencer runs on every exit route. Reaping closes the stdout
	// pipe, which also unblocks the reader when the deadline won the race.
	pm.Stop()
	<-done

	return c.classify(timedOut), nil
}

// collector folds the event stream into an accumulating result. It is
// owned by the single reader goroutine; its state is read only after that
// goroutine has finished.
type collector struct {
	config      Config
	agentText   strings.Builder
	sessionID   *string
	backlog     errorBacklog
	allMessages []json.RawMessage
}

func newCollector(config Config) *collector {
	return &collector{config: config}
}

// run consumes the stream line by line until turn completion or stream
// end. I/O faults are recorded in the backlog, never escalated; the
// classifier decides overall success from what was accumulated.
func (c *collector) run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if c.handleLine(line) {
			// Let trailing buffered output flush before we stop reading.
			time.Sleep(c.config.FlushDelay)
			return
		}
	}

	if err := scanner.Err(); err != nil && !errProcessDone(err) {
		c.backlog.Add(fmt.Sprintf("[io error] %v", err))
	}
}

// handleLine processes one non-blank line and reports whether the turn
// completed.
func (c *collector) handleLine(line string) bool {
	var event Event
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		// A single malformed line never aborts the run.
		c.backlog.Add(fmt.Sprintf("[json decode error] %v: %s", err, line))
		return false
	}

	if c.config.ReturnAllMessages {
		raw := json.RawMessage(append([]byte(nil), line...))
		c.allMessages = append(c.allMessages, raw)
	}

	// Any event may carry the session id; the latest one wins.
	if event.SessionID != nil {
		c.sessionID = event.SessionID
	}

	if event.isAssistantMessage() && event.Content != nil {
		if !strings.Contains(*event.Content, deprecatedPromptWarning) {
			c.agentText.WriteString(*event.Content)
		}
	}

	return event.isTurnCompleted()
}

// classify converts the accumulated state plus the timeout flag into the
// terminal Result. Precedence: timeout, then missing session id, then
// empty assistant text, then success.
func (c *collector) classify(timedOut bool) *Result {
	result := &Result{Success: true}
	if c.sessionID != nil {
		result.SessionID = *c.sessionID
	}

	suffix := c.backlog.Join()

	switch {
	case timedOut:
		result.Success = false
		result.Error = "Process timeout. " + suffix
	case c.sessionID == nil:
		result.Success = false
		result.Error = fmt.Sprintf("Failed to get `SESSION_ID` from the gemini session.\n\n%s", suffix)
	case c.agentText.Len() == 0:
		// The session id is still returned so the caller can continue the
		// conversation.
		result.Success = false
		result.Error = fmt.Sprintf(
			"Failed to retrieve `agent_messages` data from the Gemini session. "+
				"This might be due to Gemini performing a tool call. "+
				"You can continue using the `SESSION_ID` to proceed with the conversation.\n\n%s",
			suffix)
	default:
		result.AgentMessages = c.agentText.String()
	}

	if c.config.ReturnAllMessages {
		result.AllMessages = c.allMessages
	}

	return result
}
