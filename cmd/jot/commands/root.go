// Package commands implements the CLI commands for jot.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/jot/internal/adapters/config"
	"go.trai.ch/jot/internal/build"
	"go.trai.ch/jot/internal/core/domain"
)

// CLI represents the command line interface for jot.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, words []string, settings domain.Settings) error
	List(ctx context.Context, settings domain.Settings) error
	Dump(ctx context.Context, settings domain.Settings) error
	Edit(ctx context.Context, settings domain.Settings) error
	Choose(ctx context.Context, settings domain.Settings, chooser string) error
	Exec(ctx context.Context, settings domain.Settings, command []string) error
}

// New creates a new CLI instance with the given app.
// Words that do not name a subcommand are recipes, so `jot build` is `jot run build`.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "jot [NAME=VALUE...] [recipe [args...]]...",
		Short:         "A command runner for project recipes",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runRecipes,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	// Recipe arguments may look like flags.
	rootCmd.Flags().SetInterspersed(false)
	config.RegisterFlags(rootCmd.PersistentFlags())

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newDumpCmd())
	rootCmd.AddCommand(c.newEditCmd())
	rootCmd.AddCommand(c.newChooseCmd())
	rootCmd.AddCommand(c.newExecCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) runRecipes(cmd *cobra.Command, args []string) error {
	settings, err := config.ResolveSettings(cmd.Flags())
	if err != nil {
		return err
	}
	return c.app.Run(cmd.Context(), args, settings)
}
