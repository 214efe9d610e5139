// Package mcp implements a minimal Model Context Protocol server over
// newline-delimited JSON-RPC 2.0 on a byte stream, typically the process's
// own stdin/stdout.
//
// The server exposes registered tools via the standard MCP handshake:
// initialize, tools/list, and tools/call. Tools are registered through a
// typed registry that generates their input schemas from Go struct tags.
//
//	registry := mcp.NewToolRegistry()
//	mcp.AddTool(registry, "echo", "Echo back the input text",
//	    func(ctx context.Context, params EchoParams) (string, error) {
//	        return params.Text, nil
//	    })
//
//	server := mcp.NewServer("echo-server", "1.0.0", registry)
//	err := server.Serve(ctx, os.Stdin, os.Stdout)
package mcp
