package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/odra/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the registered contracts to wasm for a backend",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, _ := cmd.Flags().GetString("backend")
			contracts, _ := cmd.Flags().GetString("contracts")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				Backend:   backend,
				Contracts: contracts,
			})
		},
	}
	cmd.Flags().StringP("backend", "b", "", "Backend to build for, e.g. casper (required)")
	cmd.Flags().StringP("contracts", "c", "", "Space separated list of contracts to build (default all)")
	return cmd
}
