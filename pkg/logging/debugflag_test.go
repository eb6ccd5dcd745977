package logging

import (
	"bytes"
	"testing"

	log "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDebugLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SilentMode = false
		SetLevel(log.WarnLevel)
	})

	lg := GetLogger("test")
	other := GetLogger("other")

	t.Run("global level", func(t *testing.T) {
		require.NoError(t, ParseDebugLevels("info"))
		assert.Equal(t, log.InfoLevel, lg.GetLevel())
		assert.Equal(t, log.InfoLevel, other.GetLevel())
	})

	t.Run("unit level", func(t *testing.T) {
		require.NoError(t, ParseDebugLevels("warn,test=debug"))
		assert.Equal(t, log.DebugLevel, lg.GetLevel())
		assert.Equal(t, log.WarnLevel, other.GetLevel())
		delete(loggerLevels, "test")
	})

	t.Run("unknown level", func(t *testing.T) {
		assert.ErrorIs(t, ParseDebugLevels("loud"), ErrUnknownLevel)
		assert.ErrorIs(t, ParseDebugLevels("warn,test=loud"), ErrUnknownLevel)
		assert.ErrorIs(t, ParseDebugLevels("warn,test"), ErrParseSubLevel)
	})

	t.Run("silent", func(t *testing.T) {
		buf.Reset()
		SetSilent()
		other.Warn("hidden")
		assert.Empty(t, buf.String())
	})
}

func TestGetLoggerReusesUnit(t *testing.T) {
	assert.Same(t, GetLogger("reuse"), GetLogger("reuse"))
}
