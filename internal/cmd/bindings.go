package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBindingsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bindings",
		Short: "Print the effective key bindings",
		Long:  "Print every key binding in effect, built-in ones first, after applying the config file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, km, err := loadKeymap(opts.configPath)
			if err != nil {
				return err
			}
			for _, line := range km.Describe() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}
