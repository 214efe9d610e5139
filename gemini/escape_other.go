//go:build !windows

package gemini

// escapePrompt is a no-op outside Windows; exec passes the prompt as a
// single argv entry without further parsing.
func escapePrompt(prompt string) string {
	return prompt
}
