package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsNoop(t *testing.T) {
	require.NotNil(t, Default())
	require.False(t, Default().Enabled(t.Context(), slog.LevelError))
}

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	l := New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetDefault(l)
	defer SetDefault(nil)

	Default().WithComponent("stl").LogOutOfBounds("get", 5, 3)
	require.Contains(t, buf.String(), "component=stl")
	require.Contains(t, buf.String(), "index=5")

	buf.Reset()
	Default().LogMalformed("text", "V{", errors.New("boom"))
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "codec=text")
}

func TestSetDefaultNilRestoresNoop(t *testing.T) {
	SetDefault(nil)
	require.False(t, Default().Enabled(t.Context(), slog.LevelError))
}

func TestDecodeProgress(t *testing.T) {
	var buf bytes.Buffer
	l := New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	require.True(t, l.DebugEnabled())
	require.False(t, Noop().DebugEnabled())

	l.LogDecodeHeader("text", slog.LevelInfo, 2)
	l.LogDecodeElement("text", 1, "Kim")

	out := buf.String()
	require.Contains(t, out, "msg=\"header decoded\"")
	require.Contains(t, out, "kind=INFO")
	require.Contains(t, out, "count=2")
	require.Contains(t, out, "index=1")
	require.Contains(t, out, "value=Kim")
}
