// FILE: tracekit/src/internal/format/raw_test.go
package format

import (
	"testing"

	"tracekit/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawFormatter_Format(t *testing.T) {
	f, err := NewRawFormatter(newTestLogger())
	require.NoError(t, err)

	t.Run("MessageOnly", func(t *testing.T) {
		entry := core.LogEntry{
			Level:    core.LevelError,
			Category: "ignored",
			Message:  "plain message",
		}

		out, err := f.Format(entry)
		require.NoError(t, err)
		assert.Equal(t, "plain message\n", string(out))
	})

	t.Run("EmptyMessage", func(t *testing.T) {
		out, err := f.Format(core.LogEntry{})
		require.NoError(t, err)
		assert.Equal(t, "\n", string(out))
	})
}
