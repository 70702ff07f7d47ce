package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/odra/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Add a new contract to the project",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("contract-name")
			module, _ := cmd.Flags().GetString("module")

			return c.app.Generate(cmd.Context(), app.GenerateOptions{
				ContractName: name,
				Module:       module,
			})
		},
	}
	cmd.Flags().StringP("contract-name", "c", "", "Name of the contract (required)")
	cmd.Flags().StringP("module", "m", "", "Module to place the contract in")
	return cmd
}
