package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patii/workcity/internal/server"
	"github.com/patii/workcity/internal/theme"
)

var errCheckFailed = errors.New("theme check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify style.css matches the registrar",
	Long: `Check that style.css exists in the theme directory, that its Version header
equals the version the registrar appends to the stylesheet URI, and that its
Template header names the parent theme.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		problems, err := theme.Check(server.ThemeFS(cfg))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(problems) == 0 {
			fmt.Fprintf(out, "ok: %s %s (parent %s)\n", theme.Handle, theme.Version, theme.ParentSlug)
			return nil
		}
		for _, p := range problems {
			fmt.Fprintln(out, p.String())
		}
		return errCheckFailed
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
