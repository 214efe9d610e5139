package gemini

import "strings"

// promptEscaper rewrites characters that the Windows command line mangles
// when passed through CreateProcess argument quoting.
var promptEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\b", `\b`,
	"\f", `\f`,
	"'", `\'`,
)

// escapeSpecials applies the Windows command-line escaping rules.
func escapeSpecials(prompt string) string {
	return promptEscaper.Replace(prompt)
}
