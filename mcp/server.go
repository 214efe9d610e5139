package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// maxRequestBytes bounds a single request line.
const maxRequestBytes = 16 * 1024 * 1024

// Server speaks MCP over newline-delimited JSON-RPC on a byte stream.
type Server struct {
	registry     *ToolRegistry
	logger       *slog.Logger
	name         string
	version      string
	instructions string
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger. The default discards nothing and
// writes through slog's default handler.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithInstructions sets the instructions string advertised on initialize.
func WithInstructions(instructions string) ServerOption {
	return func(s *Server) {
		s.instructions = instructions
	}
}

// NewServer creates a server that exposes the registry's tools.
func NewServer(name, version string, registry *ToolRegistry, opts ...ServerOption) *Server {
	s := &Server{
		registry: registry,
		logger:   slog.Default(),
		name:     name,
		version:  version,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Serve reads requests from r and writes responses to w until r is
// exhausted or ctx is canceled. Malformed request lines produce JSON-RPC
// parse errors rather than terminating the loop.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Debug("unparseable request line", "error", err)
			if err := encoder.Encode(newErrorResponse(nil, CodeParseError, "failed to parse request", err.Error())); err != nil {
				return err
			}
			continue
		}

		resp := s.dispatch(ctx, &req)
		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// dispatch routes one request to its handler. Notifications return nil.
func (s *Server) dispatch(ctx context.Context, req *Request) *Response {
	switch req.Method {
	case "initialize":
		s.logger.Info("client connected", "server", s.name, "version", s.version)
		return newResponse(req.ID, &InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: ServerCapabilities{
				Tools: &ToolsCapability{},
			},
			ServerInfo: ServerInfo{
				Name:    s.name,
				Version: s.version,
			},
			Instructions: s.instructions,
		})

	case "notifications/initialized", "notifications/cancelled":
		return nil

	case "ping":
		return newResponse(req.ID, struct{}{})

	case "tools/list":
		return newResponse(req.ID, &ToolsListResult{Tools: s.registry.Tools()})

	case "tools/call":
		return s.handleToolCall(ctx, req)

	default:
		if req.IsNotification() {
			return nil
		}
		return newErrorResponse(req.ID, CodeMethodNotFound, "method not found: "+req.Method, nil)
	}
}

func (s *Server) handleToolCall(ctx context.Context, req *Request) *Response {
	var params ToolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return newErrorResponse(req.ID, CodeInvalidParams, "invalid tools/call params", err.Error())
	}

	invocation := uuid.NewString()
	log := s.logger.With("tool", params.Name, "invocation", invocation)
	log.Info("tool call started")

	result, err := s.registry.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		log.Error("tool call failed", "error", err)
		return newErrorResponse(req.ID, CodeInternalError, err.Error(), nil)
	}

	log.Info("tool call finished", "is_error", result.IsError)
	return newResponse(req.ID, result)
}
