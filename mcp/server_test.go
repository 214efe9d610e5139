package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveLines(t *testing.T, lines ...string) []Response {
	t.Helper()

	registry := newEchoRegistry()
	server := NewServer("test-server", "0.0.1", registry,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithInstructions("test instructions"),
	)

	var out bytes.Buffer
	input := strings.Join(lines, "\n") + "\n"
	require.NoError(t, server.Serve(context.Background(), strings.NewReader(input), &out))

	var responses []Response
	decoder := json.NewDecoder(&out)
	for decoder.More() {
		var resp Response
		require.NoError(t, decoder.Decode(&resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServe_Initialize(t *testing.T) {
	responses := serveLines(t, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)

	require.Len(t, responses, 1)
	require.Nil(t, responses[0].Error)

	result, err := json.Marshal(responses[0].Result)
	require.NoError(t, err)
	assert.Contains(t, string(result), `"protocolVersion":"2024-11-05"`)
	assert.Contains(t, string(result), `"test-server"`)
	assert.Contains(t, string(result), "test instructions")
}

func TestServe_InitializedNotificationIsSilent(t *testing.T) {
	responses := serveLines(t,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	)

	require.Len(t, responses, 1, "notifications must not produce responses")
	assert.EqualValues(t, 2, responses[0].ID)
}

func TestServe_ToolsList(t *testing.T) {
	responses := serveLines(t, `{"jsonrpc":"2.0","id":3,"method":"tools/list"}`)

	require.Len(t, responses, 1)
	result, err := json.Marshal(responses[0].Result)
	require.NoError(t, err)
	assert.Contains(t, string(result), `"echo"`)
	assert.Contains(t, string(result), `"inputSchema"`)
}

func TestServe_ToolsCall(t *testing.T) {
	responses := serveLines(t,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hi"}}}`)

	require.Len(t, responses, 1)
	require.Nil(t, responses[0].Error)

	result, err := json.Marshal(responses[0].Result)
	require.NoError(t, err)
	assert.Contains(t, string(result), "Echo: hi")
}

func TestServe_UnknownMethod(t *testing.T) {
	responses := serveLines(t, `{"jsonrpc":"2.0","id":5,"method":"resources/list"}`)

	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, CodeMethodNotFound, responses[0].Error.Code)
}

func TestServe_ParseErrorDoesNotStopLoop(t *testing.T) {
	responses := serveLines(t,
		`{garbage`,
		`{"jsonrpc":"2.0","id":6,"method":"ping"}`,
	)

	require.Len(t, responses, 2)
	require.NotNil(t, responses[0].Error)
	assert.Equal(t, CodeParseError, responses[0].Error.Code)
	assert.Nil(t, responses[1].Error)
}

func TestServe_BlankLinesSkipped(t *testing.T) {
	responses := serveLines(t,
		``,
		`   `,
		`{"jsonrpc":"2.0","id":7,"method":"ping"}`,
	)

	require.Len(t, responses, 1)
}
