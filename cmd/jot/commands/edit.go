package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/jot/internal/adapters/config"
)

func (c *CLI) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the recipe file with $VISUAL or $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.ResolveSettings(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Edit(cmd.Context(), settings)
		},
	}
}
