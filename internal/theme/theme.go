// Package theme registers the workcity child theme's stylesheet on top of the
// Astra parent theme.
package theme

import (
	"context"
	"embed"
	"io/fs"
	"strings"

	"github.com/patii/workcity/internal/asset"
	"github.com/patii/workcity/internal/hook"
	"github.com/patii/workcity/internal/log"
)

// Version is bumped on every release so browsers refetch style.css.
const Version = "1.0.0"

const (
	// Slug is the child theme directory name.
	Slug = "workcity"
	// Handle identifies the child stylesheet in an asset.Registry.
	Handle = "workcity-landing-page-by-patii-theme-css"
	// ParentSlug is the parent theme directory name, matching the
	// Template field of style.css.
	ParentSlug = "astra"
	// ParentHandle is the stylesheet handle the Astra parent theme registers.
	ParentHandle = "astra-theme-css"
	// Stylesheet is the child stylesheet file name, relative to the theme dir.
	Stylesheet = "style.css"
	// Media is the media scope of the child stylesheet.
	Media = "all"
)

// ParentPriority is the hook priority Astra registers its styles at.
const ParentPriority = hook.DefaultPriority

// ChildPriority runs the child registrar after the parent's.
const ChildPriority = ParentPriority + 5

const registrarName = "workcity_enqueue_styles"

//go:embed static/style.css
var staticFS embed.FS

// StaticFS returns the stylesheet shipped with the binary, rooted at the theme
// directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embed pattern above guarantees the directory exists.
		panic(err)
	}
	return sub
}

// RegisterStyles enqueues the child stylesheet. stylesheetDirURI is the public
// URI of the child theme directory, without trailing slash.
//
// It never fails when the parent handle is absent; the stylesheet is still
// emitted, just without a guaranteed position.
func RegisterStyles(reg *asset.Registry, stylesheetDirURI string) {
	added, err := reg.Enqueue(asset.Style{
		Handle:   Handle,
		Src:      strings.TrimRight(stylesheetDirURI, "/") + "/" + Stylesheet,
		Deps:     []string{ParentHandle},
		Version:  Version,
		Media:    Media,
		Priority: ChildPriority,
	})
	if err != nil {
		log.ErrorErr(log.CatTheme, "enqueue child stylesheet", err)
		return
	}
	if !added {
		log.Debug(log.CatTheme, "child stylesheet already enqueued", "handle", Handle)
		return
	}
	if !reg.Registered(ParentHandle) {
		log.Warn(log.CatTheme, "parent stylesheet not registered", "handle", Handle, "dep", ParentHandle)
	}
}

// Install subscribes RegisterStyles to the enqueue event at ChildPriority.
func Install(actions *hook.Actions, stylesheetDirURI string) {
	actions.Add(hook.EnqueueScripts, ChildPriority, registrarName,
		func(_ context.Context, reg *asset.Registry) {
			RegisterStyles(reg, stylesheetDirURI)
		})
}
