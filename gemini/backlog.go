package gemini

import "strings"

// backlogCap bounds the diagnostic backlog so a pathological stream of
// malformed lines cannot grow memory without limit.
const backlogCap = 10

// errorBacklog is an insertion-ordered FIFO of diagnostic strings.
// Inserting past capacity evicts the oldest entry.
type errorBacklog struct {
	entries []string
}

// Add appends a diagnostic, evicting the oldest entry when full.
func (b *errorBacklog) Add(msg string) {
	b.entries = append(b.entries, msg)
	if len(b.entries) > backlogCap {
		b.entries = b.entries[1:]
	}
}

// Join returns the surviving diagnostics separated by newlines.
func (b *errorBacklog) Join() string {
	return strings.Join(b.entries, "\n")
}

// Len returns the number of retained diagnostics.
func (b *errorBacklog) Len() int {
	return len(b.entries)
}
