package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/patii/workcity/internal/hook"
	"github.com/patii/workcity/internal/render"
	"github.com/patii/workcity/internal/theme"
	"github.com/patii/workcity/internal/tracing"
)

// errRenderDiffers is returned by render --diff when output changed.
var errRenderDiffers = errors.New("rendered output differs")

var (
	renderPage bool
	renderDiff string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the stylesheet link tags",
	Long: `Run the enqueue callbacks of the parent and child theme and print the
resulting <link> tags in dependency order.

Examples:
  # Link tags only
  workcity render

  # Full demo page
  workcity render --page

  # Fail if the output no longer matches a committed snapshot
  workcity render --diff testdata/head.html`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderPage, "page", false, "render a complete HTML page")
	renderCmd.Flags().StringVar(&renderDiff, "diff", "", "compare output against a previously rendered file")
	rootCmd.AddCommand(renderCmd)
}

func newActions() *hook.Actions {
	actions := hook.NewActions()
	theme.InstallParent(actions, cfg.TemplateDirURI(), cfg.ParentVersion)
	theme.Install(actions, cfg.StylesheetDirURI())
	return actions
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	provider, err := tracing.NewProvider(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	r := render.New(newActions(), render.WithTracer(provider.Tracer()))

	var out bytes.Buffer
	if renderPage {
		err = r.Page(ctx, &out, render.PageData{Title: "workcity landing page"})
	} else {
		var res render.Result
		res, err = r.Head(ctx)
		out.WriteString(res.HTML)
	}
	if err != nil {
		return err
	}

	if renderDiff == "" {
		_, err = cmd.OutOrStdout().Write(out.Bytes())
		return err
	}

	previous, err := os.ReadFile(renderDiff)
	if err != nil {
		return fmt.Errorf("reading %s: %w", renderDiff, err)
	}
	patch, changed := diffText(string(previous), out.String())
	if !changed {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", renderDiff)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), patch)
	return fmt.Errorf("%s: %w", renderDiff, errRenderDiffers)
}

// diffText returns a line diff turning previous into current, each line
// prefixed with "+", "-" or " ", and whether they differ at all.
func diffText(previous, current string) (string, bool) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(previous, current)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	changed := false
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, changed = "+", true
		case diffmatchpatch.DiffDelete:
			prefix, changed = "-", true
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	if !changed {
		return "", false
	}
	return out.String(), true
}
