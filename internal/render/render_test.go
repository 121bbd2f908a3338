package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/patii/workcity/internal/asset"
	"github.com/patii/workcity/internal/hook"
	"github.com/patii/workcity/internal/theme"
)

const (
	childDir  = "https://example.com/wp-content/themes/workcity"
	parentDir = "https://example.com/wp-content/themes/astra"
)

func TestLinks_Format(t *testing.T) {
	var buf bytes.Buffer
	err := Links(&buf, []asset.Style{
		{Handle: "a", Src: "/a.css", Version: "1", Media: "all"},
		{Handle: "b", Src: "/b.css?x=1", Version: "2", Media: "print"},
	})
	require.NoError(t, err)
	require.Equal(t,
		"<link rel='stylesheet' id='a-css' href='/a.css?ver=1' media='all' />\n"+
			"<link rel='stylesheet' id='b-css' href='/b.css?x=1&amp;ver=2' media='print' />\n",
		buf.String())
}

func TestLinks_EscapesAttributes(t *testing.T) {
	var buf bytes.Buffer
	err := Links(&buf, []asset.Style{{Handle: "x' onload='alert(1)", Src: "/x.css", Media: "all"}})
	require.NoError(t, err)
	require.NotContains(t, buf.String(), "onload='alert")
}

// TestHead_EndToEnd renders the child theme on top of the parent theme.
func TestHead_EndToEnd(t *testing.T) {
	actions := hook.NewActions()
	theme.InstallParent(actions, parentDir, "4.8.0")
	theme.Install(actions, childDir)

	res, err := New(actions).Head(context.Background())
	require.NoError(t, err)

	handles := res.Resolution.Handles()
	parentIdx := res.Resolution.Index(theme.ParentHandle)
	childIdx := res.Resolution.Index(theme.Handle)
	require.GreaterOrEqual(t, parentIdx, 0)
	require.Equal(t, parentIdx+1, childIdx, "handles: %v", handles)

	child := res.Resolution.Order[childIdx]
	require.True(t, strings.HasSuffix(child.URI(), "/style.css?ver=1.0.0"), child.URI())

	require.Equal(t, 1, strings.Count(res.HTML, "id='"+theme.Handle+"-css'"))
	require.Less(t,
		strings.Index(res.HTML, "id='"+theme.ParentHandle+"-css'"),
		strings.Index(res.HTML, "id='"+theme.Handle+"-css'"))
}

func TestHead_WithoutParent(t *testing.T) {
	actions := hook.NewActions()
	theme.Install(actions, childDir)

	res, err := New(actions).Head(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{theme.Handle}, res.Resolution.Handles())
	require.Contains(t, res.HTML, childDir+"/style.css?ver=1.0.0")
}

func TestHead_FreshRegistryPerRender(t *testing.T) {
	actions := hook.NewActions()
	theme.Install(actions, childDir)
	r := New(actions)

	first, err := r.Head(context.Background())
	require.NoError(t, err)
	second, err := r.Head(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.HTML, second.HTML)
	require.Len(t, second.Resolution.Order, 1)
}

func TestHead_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	actions := hook.NewActions()
	theme.Install(actions, childDir)
	_, err := New(actions, WithTracer(tp.Tracer("test"))).Head(context.Background())
	require.NoError(t, err)

	var names []string
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	require.ElementsMatch(t, []string{"render.Head", "hook.Do", "asset.Resolve"}, names)
}

func TestHead_CancelledContext(t *testing.T) {
	actions := hook.NewActions()
	theme.Install(actions, childDir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(actions).Head(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPage_WrapsHead(t *testing.T) {
	actions := hook.NewActions()
	theme.InstallParent(actions, parentDir, "4.8.0")
	theme.Install(actions, childDir)

	var buf bytes.Buffer
	err := New(actions, WithEvent(hook.EnqueueScripts)).Page(context.Background(), &buf, PageData{
		Title:     "workcity",
		BodyClass: "home",
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `<html lang="en">`)
	require.Contains(t, out, "<title>workcity</title>")
	require.Contains(t, out, "<link rel='stylesheet' id='"+theme.Handle+"-css'")
	require.Less(t, strings.Index(out, "<link"), strings.Index(out, "</head>"))
}
