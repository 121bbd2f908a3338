package theme

import (
	"context"
	"strings"

	"github.com/patii/workcity/internal/asset"
	"github.com/patii/workcity/internal/hook"
	"github.com/patii/workcity/internal/log"
)

// ParentStylesheet is the path of Astra's main stylesheet under its template
// directory.
const ParentStylesheet = "assets/css/minified/main.min.css"

// InstallParent subscribes a stand-in for the Astra parent theme's own style
// registration. The demo server and tests use it as the host's base styles.
func InstallParent(actions *hook.Actions, templateDirURI, parentVersion string) {
	src := strings.TrimRight(templateDirURI, "/") + "/" + ParentStylesheet
	actions.Add(hook.EnqueueScripts, ParentPriority, "astra_enqueue_styles",
		func(_ context.Context, reg *asset.Registry) {
			if _, err := reg.Enqueue(asset.Style{
				Handle:   ParentHandle,
				Src:      src,
				Version:  parentVersion,
				Media:    "all",
				Priority: ParentPriority,
			}); err != nil {
				log.ErrorErr(log.CatTheme, "enqueue parent stylesheet", err)
			}
		})
}
