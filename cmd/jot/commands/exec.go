package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/jot/internal/adapters/config"
)

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec command [args...]",
		Short: "Run a command with the recipe file's exported variables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.ResolveSettings(cmd.Flags())
			if err != nil {
				return err
			}
			return c.app.Exec(cmd.Context(), settings, args)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}
