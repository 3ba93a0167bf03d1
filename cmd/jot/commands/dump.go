package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/jot/internal/adapters/config"
)

func (c *CLI) newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the loaded recipe file as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.ResolveSettings(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Dump(cmd.Context(), settings)
		},
	}
}
