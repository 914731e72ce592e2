package log

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesTypedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewWithCore(core)

	l.With(Agent("a-1")).Info("episode finished",
		Episode(3),
		Float64("reward", 0.75),
		Duration("elapsed", time.Second),
		Error(errors.New("boom")),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	require.Equal(t, "a-1", ctx["agent"])
	require.Equal(t, uint64(3), ctx["episode"])
	require.Equal(t, 0.75, ctx["reward"])
	require.Equal(t, "boom", ctx["error"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewWithCore(core)
	l.SetLevel(LevelWarn)

	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept")

	require.Equal(t, LevelWarn, l.GetLevel())
	require.Equal(t, 1, logs.Len())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"error":   LevelError,
		"off":     LevelSilent,
		"unknown": LevelInfo,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNopLoggerIsSilent(t *testing.T) {
	l := NewNop()
	l.Error("nothing happens")
	require.Equal(t, LevelSilent, l.GetLevel())
}
