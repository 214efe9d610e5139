package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeSpecials(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
	}{
		{"plain", "hello world", "hello world"},
		{"backslash", `C:\Users\dev`, `C:\\Users\\dev`},
		{"double quote", `say "hi"`, `say \"hi\"`},
		{"newline", "line1\nline2", `line1\nline2`},
		{"carriage return", "a\rb", `a\rb`},
		{"tab", "a\tb", `a\tb`},
		{"backspace", "a\bb", `a\bb`},
		{"form feed", "a\fb", `a\fb`},
		{"single quote", "it's", `it\'s`},
		{"mixed", "path \"C:\\x\"\n", `path \"C:\\x\"\n`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.output, escapeSpecials(tt.input))
		})
	}
}
