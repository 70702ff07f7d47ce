// Package commands implements the CLI commands for cargo-odra.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/odra/internal/app"
	"go.trai.ch/odra/internal/build"
	"go.trai.ch/odra/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for cargo-odra.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Test(ctx context.Context, opts app.TestOptions) error
	Generate(ctx context.Context, opts app.GenerateOptions) error
	Init(ctx context.Context, opts app.ProjectOptions) error
	New(ctx context.Context, opts app.ProjectOptions) error
	Clean(ctx context.Context) error
	Update(ctx context.Context, opts app.UpdateOptions) error
	SetVerbosity(v domain.Verbosity)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cargo-odra",
		Short:         "Build, test and scaffold odra smart contract projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// -v belongs to --verbose, so --version is registered without a shorthand.
	rootCmd.Flags().Bool("version", false, "Print the application version")
	rootCmd.InitDefaultVersionFlag()

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug output and run cargo with --verbose")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Print only warnings and run cargo with --quiet")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(domain.ErrArgumentInvalid, err)
	})

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		v, err := verbosity(cmd)
		if err != nil {
			return err
		}
		c.app.SetVerbosity(v)
		return nil
	}

	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newNewCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newTestCmd())
	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
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

func verbosity(cmd *cobra.Command) (domain.Verbosity, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	switch {
	case verbose && quiet:
		return domain.VerbosityNormal, errors.Join(
			domain.ErrArgumentInvalid,
			zerr.New("--verbose and --quiet cannot be used together"),
		)
	case verbose:
		return domain.VerbosityVerbose, nil
	case quiet:
		return domain.VerbosityQuiet, nil
	default:
		return domain.VerbosityNormal, nil
	}
}

// positional tags cobra's argument validation errors as invalid arguments.
func positional(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Join(domain.ErrArgumentInvalid, err)
		}
		return nil
	}
}
