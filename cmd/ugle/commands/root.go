// Package commands implements the CLI commands for the ugle tool.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/ugle/internal/app"
	"go.trai.ch/ugle/internal/build"
	"go.trai.ch/ugle/internal/core/ports"
)

// CLI represents the command line interface for ugle.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ugle",
		Short:         "Snapshot and restore development environments",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	// The verbose shorthand must be claimed before the version flag is
	// initialized, otherwise cobra would hand -v to --version.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if v, ok := logger.(interface{ SetVerbose(bool) }); ok {
			v.SetVerbose(verbose)
		}
	}

	rootCmd.AddCommand(c.newSnapshotCmd())
	rootCmd.AddCommand(c.newCheckoutCmd())
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
