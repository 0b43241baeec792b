package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
		assert.True(t, handler.ContainsAttr("code", 500))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug")
		logger.Warn("warn one")
		logger.Warn("warn two")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 2)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelDebug), 1)
		AssertLogContains(t, handler, slog.LevelWarn, "warn two")
	})

	t.Run("keeps attrs from With and groups", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("job", "report")).WithGroup("step").Info("done", slog.String("id", "x"))

		records := handler.GetRecords()
		require.Len(t, records, 1)
		assert.Equal(t, "report", records[0].Attrs["job"])
		assert.Equal(t, "x", records[0].Attrs["step.id"])
	})

	t.Run("slice attrs compare by string form", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Warn("Step skipped", slog.String("step", "a"), slog.Any("missing", []string{"IDH"}))

		assert.True(t, handler.ContainsAttr("missing", []string{"IDH"}))
		assert.Len(t, handler.FindRecords("skipped", "step", "a"), 1)
		assert.Empty(t, handler.FindRecords("skipped", "step", "b"))
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("x")
		handler.Clear()
		assert.Zero(t, handler.Count())
		AssertNoErrors(t, handler)
	})
}
