package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOutput(t *testing.T) {
	t.Run("json format uses field map", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := NewWithOutput(&buf, "debug", "json")
		require.NoError(t, err)

		l.WithField("index", 3).Debug("item succeeded")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "item succeeded", entry["message"])
		assert.Equal(t, "debug", entry["level"])
		assert.Equal(t, float64(3), entry["index"])
		assert.Contains(t, entry, "timestamp")
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := NewWithOutput(&buf, "warn", "text")
		require.NoError(t, err)

		l.Info("hidden")
		assert.Empty(t, buf.String())

		l.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
		assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := NewWithOutput(&bytes.Buffer{}, "loud", "text")
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewWithOutput(&bytes.Buffer{}, "info", "xml")
		assert.Error(t, err)
	})
}
