package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/jot/internal/adapters/config"
)

func (c *CLI) newChooseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "choose",
		Short: "Select recipes to run with an interactive chooser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.ResolveSettings(cmd.Flags())
			if err != nil {
				return err
			}
			chooser, _ := cmd.Flags().GetString("chooser")
			return c.app.Choose(cmd.Context(), settings, chooser)
		},
	}
	cmd.Flags().String("chooser", "", "Override the chooser command (default $JOT_CHOOSER or fzf)")
	return cmd
}
