package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/odra/internal/app"
)

func (c *CLI) newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [-- args...]",
		Short: "Run the project tests on the mock VM or against a backend",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, _ := cmd.Flags().GetString("backend")
			skipBuild, _ := cmd.Flags().GetBool("skip-build")

			return c.app.Test(cmd.Context(), app.TestOptions{
				Backend:   backend,
				SkipBuild: skipBuild,
				Args:      args,
			})
		},
	}
	cmd.Flags().StringP("backend", "b", "", "Backend to test against (default mock VM)")
	cmd.Flags().BoolP("skip-build", "s", false, "Skip building wasm files before testing")
	return cmd
}
