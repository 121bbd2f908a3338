package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindFlag binds a command-local flag to a viper key.
func bindFlag(c *cobra.Command, key, flag string) error {
	return viper.BindPFlag(key, c.Flags().Lookup(flag))
}
