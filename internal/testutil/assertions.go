package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertFileContains asserts that the file at path contains expected.
func AssertFileContains(t testing.TB, path, expected string, msgAndArgs ...interface{}) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), expected, msgAndArgs...)
}

// AssertLinesContain asserts that some line of out contains each expected string, in order.
func AssertLinesContain(t testing.TB, out string, expected ...string) {
	t.Helper()

	lines := strings.Split(out, "\n")
	pos := 0
	for _, want := range expected {
		found := false
		for pos < len(lines) {
			line := lines[pos]
			pos++
			if strings.Contains(line, want) {
				found = true
				break
			}
		}
		if !found {
			assert.Failf(t, "missing line", "expected a line containing %q (in order) in:\n%s", want, out)
			return
		}
	}
}
