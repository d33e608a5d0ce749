package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

type recordingHandler struct {
	level slog.Level
	msgs  *[]string
}

func (h recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }
func (h recordingHandler) Handle(_ context.Context, r slog.Record) error {
	*h.msgs = append(*h.msgs, r.Message)
	return nil
}
func (h recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandler_FansOutRespectingLevels(t *testing.T) {
	var all, warnings []string
	prev := logger.L.Handler()
	defer logger.SetHandler(prev)

	logger.SetHandler(logger.NewMultiHandler(
		recordingHandler{level: slog.LevelDebug, msgs: &all},
		recordingHandler{level: slog.LevelWarn, msgs: &warnings},
	))

	logger.Info("order status updated")
	logger.Warn("backend unreachable")

	assert.Equal(t, []string{"order status updated", "backend unreachable"}, all)
	assert.Equal(t, []string{"backend unreachable"}, warnings, "the second sink only sees WARN and above")
}
