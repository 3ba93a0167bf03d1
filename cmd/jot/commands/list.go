package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/jot/internal/adapters/config"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available recipes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.ResolveSettings(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.List(cmd.Context(), settings)
		},
	}
}
