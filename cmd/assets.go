package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/patii/workcity/internal/asset"
	"github.com/patii/workcity/internal/hook"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List registered stylesheets in output order",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := asset.NewRegistry()
		if err := newActions().Do(cmd.Context(), hook.EnqueueScripts, reg); err != nil {
			return err
		}
		res := reg.Resolve()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-3s %-42s %-6s %s", "#", "HANDLE", "MEDIA", "URI")))
		for i, s := range res.Order {
			fmt.Fprintf(out, "%-3d %-42s %-6s %s\n", i+1, s.Handle, s.Media, s.URI())
		}
		for _, s := range res.Order {
			if missing := res.Missing[s.Handle]; len(missing) > 0 {
				fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("warning: %s depends on unregistered %s", s.Handle, strings.Join(missing, ", "))))
			}
		}
		if len(res.Cyclic) > 0 {
			fmt.Fprintln(out, warnStyle.Render("warning: dependency cycle through "+strings.Join(res.Cyclic, ", ")))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assetsCmd)
}
