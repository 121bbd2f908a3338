// Package render turns the styles registered by hook callbacks into HTML.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/patii/workcity/internal/asset"
	"github.com/patii/workcity/internal/hook"
	"github.com/patii/workcity/internal/log"
)

var linkTmpl = template.Must(template.New("links").Parse(
	`{{range .}}<link rel='stylesheet' id='{{.Handle}}-css' href='{{.URI}}' media='{{.Media}}' />
{{end}}`))

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{.Head}}</head>
<body class="{{.BodyClass}}">
{{.Body}}
</body>
</html>
`))

// Links writes one stylesheet link tag per style, in the given order.
func Links(w io.Writer, styles []asset.Style) error {
	if err := linkTmpl.Execute(w, styles); err != nil {
		return fmt.Errorf("rendering link tags: %w", err)
	}
	return nil
}

// Renderer collects styles through an action registry and renders them.
type Renderer struct {
	actions *hook.Actions
	event   string
	tracer  trace.Tracer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTracer records spans for hook dispatch, resolution and rendering.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) { r.tracer = t }
}

// WithEvent overrides the event fired to collect styles.
func WithEvent(event string) Option {
	return func(r *Renderer) { r.event = event }
}

// New creates a Renderer firing hook.EnqueueScripts on actions.
func New(actions *hook.Actions, opts ...Option) *Renderer {
	r := &Renderer{
		actions: actions,
		event:   hook.EnqueueScripts,
		tracer:  noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is a rendered head fragment and the resolution it came from.
type Result struct {
	HTML       string
	Resolution asset.Resolution
}

// Head builds a fresh registry, runs the enqueue callbacks, orders the
// styles and renders their link tags.
func (r *Renderer) Head(ctx context.Context) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "render.Head",
		trace.WithAttributes(attribute.String("hook.event", r.event)))
	defer span.End()

	reg := asset.NewRegistry()
	_, hookSpan := r.tracer.Start(ctx, "hook.Do")
	err := r.actions.Do(ctx, r.event, reg)
	hookSpan.End()
	if err != nil {
		span.RecordError(err)
		return Result{}, fmt.Errorf("running %s callbacks: %w", r.event, err)
	}

	_, resolveSpan := r.tracer.Start(ctx, "asset.Resolve")
	res := reg.Resolve()
	resolveSpan.SetAttributes(
		attribute.Int("asset.count", len(res.Order)),
		attribute.Int("asset.missing", len(res.Missing)),
		attribute.Int("asset.cyclic", len(res.Cyclic)),
	)
	resolveSpan.End()

	for handle, deps := range res.Missing {
		log.Warn(log.CatAsset, "dependency not registered", "handle", handle, "deps", strings.Join(deps, ","))
	}
	if len(res.Cyclic) > 0 {
		log.Warn(log.CatAsset, "dependency cycle", "handles", strings.Join(res.Cyclic, ","))
	}

	var buf bytes.Buffer
	if err := Links(&buf, res.Order); err != nil {
		span.RecordError(err)
		return Result{}, err
	}
	log.Debug(log.CatRender, "rendered head", "styles", len(res.Order))
	return Result{HTML: buf.String(), Resolution: res}, nil
}

// PageData fills the demo page template.
type PageData struct {
	Title     string
	Lang      string
	BodyClass string
	Body      template.HTML
}

// Page writes a complete HTML document with the rendered styles in its head.
func (r *Renderer) Page(ctx context.Context, w io.Writer, data PageData) error {
	head, err := r.Head(ctx)
	if err != nil {
		return err
	}
	return WritePage(w, head.HTML, data)
}

// WritePage writes a complete HTML document around an already rendered head.
func WritePage(w io.Writer, head string, data PageData) error {
	if data.Lang == "" {
		data.Lang = "en"
	}
	err := pageTmpl.Execute(w, struct {
		PageData
		Head template.HTML
	}{
		PageData: data,
		Head:     template.HTML(head), //nolint:gosec // G203: produced by linkTmpl, already escaped
	})
	if err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
