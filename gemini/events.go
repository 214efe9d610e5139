package gemini

import (
	"encoding/json"
	"fmt"
)

// Event is one parsed line of Gemini CLI stream-json output.
//
// The wire format is an evolving NDJSON protocol; only the fields this
// package interprets are typed, and every other field is preserved
// verbatim in Extra. A nil pointer means the field was absent from the
// line, which is distinct from an empty string.
type Event struct {
	Type      *string
	Role      *string
	Content   *string
	SessionID *string
	Extra     map[string]json.RawMessage
}

// UnmarshalJSON decodes a single NDJSON line, splitting recognized fields
// from the open-ended remainder.
func (e *Event) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("event is not a JSON object")
	}

	for key, value := range fields {
		var dst **string
		switch key {
		case "type":
			dst = &e.Type
		case "role":
			dst = &e.Role
		case "content":
			dst = &e.Content
		case "session_id":
			dst = &e.SessionID
		default:
			if e.Extra == nil {
				e.Extra = make(map[string]json.RawMessage)
			}
			e.Extra[key] = value
			continue
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}

	return nil
}

// Kind returns the event type tag, or "" if absent.
func (e *Event) Kind() string {
	if e.Type == nil {
		return ""
	}
	return *e.Type
}

// isTurnCompleted reports whether the event is the end-of-turn signal.
func (e *Event) isTurnCompleted() bool {
	return e.Kind() == "turn.completed"
}

// isAssistantMessage reports whether the event carries assistant text.
func (e *Event) isAssistantMessage() bool {
	return e.Kind() == "message" && e.Role != nil && *e.Role == "assistant"
}
