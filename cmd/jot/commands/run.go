package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [NAME=VALUE...] [recipe [args...]]...",
		Short: "Run recipes and their dependencies",
		Long: "Run recipes and their dependencies. Each recipe consumes the arguments after it,\n" +
			"up to its parameter count. With no recipe, the default recipe runs.",
		Args: cobra.ArbitraryArgs,
		RunE: c.runRecipes,
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}
