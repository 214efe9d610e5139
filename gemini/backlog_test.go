package gemini

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBacklog_FIFOEviction(t *testing.T) {
	var b errorBacklog
	for i := 1; i <= 15; i++ {
		b.Add(fmt.Sprintf("diag-%d", i))
	}

	assert.Equal(t, backlogCap, b.Len())

	// The survivors are exactly the last 10, in insertion order.
	var expected []string
	for i := 6; i <= 15; i++ {
		expected = append(expected, fmt.Sprintf("diag-%d", i))
	}
	assert.Equal(t, strings.Join(expected, "\n"), b.Join())
}

func TestBacklog_Empty(t *testing.T) {
	var b errorBacklog
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "", b.Join())
}
