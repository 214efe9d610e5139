//go:build windows

package gemini

// escapePrompt escapes the prompt for the Windows command line. The CLI
// receives the prompt as a single argument, and without this rewriting
// quotes and control characters are corrupted in transit.
func escapePrompt(prompt string) string {
	return escapeSpecials(prompt)
}
