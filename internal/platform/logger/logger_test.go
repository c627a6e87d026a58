package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json handler honours level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWithWriter(&buf, "warn", "json")
		require.NoError(t, err)

		logger.Info("dropped")
		logger.Warn("kept", "session_id", "abc")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "kept", line["msg"])
		assert.Equal(t, "abc", line["session_id"])
	})

	t.Run("text is the default format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWithWriter(&buf, "debug", "")
		require.NoError(t, err)
		logger.Debug("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewWithWriter(&bytes.Buffer{}, "loud", "text")
		assert.Error(t, err)
		_, err = NewWithWriter(&bytes.Buffer{}, "info", "xml")
		assert.Error(t, err)
	})
}
