package logbuf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredWriter(t *testing.T) {
	t.Run("flush replays writes in order", func(t *testing.T) {
		var w DeferredWriter

		_, _ = w.Write([]byte("first\n"))
		_, _ = w.Write([]byte("second\n"))

		var out bytes.Buffer
		require.NoError(t, w.Flush(&out))
		assert.Equal(t, "first\nsecond\n", out.String())
	})

	t.Run("flush resets the buffer", func(t *testing.T) {
		var w DeferredWriter
		_, _ = w.Write([]byte("once\n"))

		var out bytes.Buffer
		require.NoError(t, w.Flush(&out))
		out.Reset()
		require.NoError(t, w.Flush(&out))
		assert.Empty(t, out.String())
	})

	t.Run("flush on empty buffer is a no-op", func(t *testing.T) {
		var w DeferredWriter
		var out bytes.Buffer
		require.NoError(t, w.Flush(&out))
		assert.Empty(t, out.String())
	})
}
