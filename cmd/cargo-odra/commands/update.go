package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/odra/internal/app"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Run cargo update in the backend builders and the project",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, _ := cmd.Flags().GetString("backend")
			return c.app.Update(cmd.Context(), app.UpdateOptions{Backend: backend})
		},
	}
	cmd.Flags().StringP("backend", "b", "", "Update only this backend's builder")
	return cmd
}
