package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// ToolRegistry holds registered tools and dispatches calls to their
// handlers. Tools are registered with AddTool, which generates the input
// schema from the handler's parameter type.
type ToolRegistry struct {
	tools []toolRegistration
}

// toolRegistration stores one tool's metadata and type-erased handler.
type toolRegistration struct {
	name        string
	description string
	schema      json.RawMessage
	invoke      func(context.Context, json.RawMessage) (*ToolCallResult, error)
}

// NewToolRegistry creates an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{}
}

// AddTool registers a type-safe tool handler. The parameter type T should
// be a struct with json and jsonschema struct tags; its schema is derived
// by reflection.
//
//	type EchoParams struct {
//	    Text string `json:"text" jsonschema:"required,description=Text to echo back"`
//	}
//
//	AddTool(registry, "echo", "Echo back the input text",
//	    func(ctx context.Context, params EchoParams) (string, error) {
//	        return params.Text, nil
//	    })
func AddTool[T any](
	registry *ToolRegistry,
	name, description string,
	handler func(context.Context, T) (string, error),
) *ToolRegistry {
	schema := generateSchema[T]()

	invoke := func(ctx context.Context, args json.RawMessage) (*ToolCallResult, error) {
		var params T
		if len(args) > 0 {
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid arguments for tool %s: %w", name, err)
			}
		}

		text, err := handler(ctx, params)
		if err != nil {
			return ErrorResult(err.Error()), nil
		}
		return TextResult(text), nil
	}

	registry.tools = append(registry.tools, toolRegistration{
		name:        name,
		description: description,
		schema:      schema,
		invoke:      invoke,
	})

	return registry
}

// Tools returns the definitions of all registered tools.
func (r *ToolRegistry) Tools() []ToolDefinition {
	defs := make([]ToolDefinition, len(r.tools))
	for i, tool := range r.tools {
		defs[i] = ToolDefinition{
			Name:        tool.name,
			Description: tool.description,
			InputSchema: tool.schema,
		}
	}
	return defs
}

// Call invokes the named tool. Unknown tool names yield an error result,
// not a protocol failure.
func (r *ToolRegistry) Call(ctx context.Context, name string, args json.RawMessage) (*ToolCallResult, error) {
	for _, tool := range r.tools {
		if tool.name == name {
			return tool.invoke(ctx, args)
		}
	}
	return ErrorResult(fmt.Sprintf("Unknown tool: %s", name)), nil
}

// generateSchema creates a JSON schema from a Go struct type using the
// jsonschema struct tags.
func generateSchema[T any]() json.RawMessage {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	var zero T
	schema := reflector.Reflect(zero)

	data, err := json.Marshal(schema)
	if err != nil {
		// Only reachable with a type the reflector cannot walk.
		panic(fmt.Sprintf("failed to generate schema for type %T: %v", zero, err))
	}

	return json.RawMessage(data)
}
