package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/patii/workcity/internal/config"
)

const defaultConfigPath = ".workcity/config.yaml"

var initForce bool

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write a commented default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		if siteURL := viper.GetString("site_url"); cmd.Flags().Changed("site-url") {
			if err := config.SaveValue(path, "site_url", siteURL); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	initConfigCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	rootCmd.AddCommand(initConfigCmd)
}
