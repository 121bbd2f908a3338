package log

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLog_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	Warn(CatAsset, "missing dependency", "handle", "child", "dep")

	out := buf.String()
	require.Contains(t, out, "[WARN] [asset] missing dependency")
	require.Contains(t, out, "handle=child")
	require.Contains(t, out, "dep=<missing>")
}

func TestLog_RespectsLevelAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	SetMinLevel(LevelWarn)
	Info(CatRender, "hidden")
	require.Empty(t, buf.String())

	SetEnabled(false)
	Error(CatRender, "also hidden")
	require.Empty(t, buf.String())
}

func TestLog_PublishesToSubscribers(t *testing.T) {
	InitWriter(&bytes.Buffer{})
	t.Cleanup(func() { defaultLogger = nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := Subscribe(ctx)
	require.NotNil(t, ch)

	Info(CatServer, "listening", "addr", ":8080")

	select {
	case ev := <-ch:
		require.Contains(t, ev.Payload, "listening addr=:8080")
	case <-time.After(time.Second):
		t.Fatal("expected log event")
	}
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, LevelWarn, ParseLevel("warning"))
	require.Equal(t, LevelError, ParseLevel("error"))
	require.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	defaultLogger = nil
	require.NotPanics(t, func() { Info(CatConfig, "nothing") })
	require.Nil(t, Subscribe(context.Background()))
}
