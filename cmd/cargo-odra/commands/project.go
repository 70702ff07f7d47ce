package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/odra/internal/app"
)

func (c *CLI) newInitCmd() *cobra.Command {
	return c.projectCmd("init", "Create a new odra project in the current directory", c.app.Init)
}

func (c *CLI) newNewCmd() *cobra.Command {
	return c.projectCmd("new", "Create a new odra project in a new directory", c.app.New)
}

func (c *CLI) projectCmd(
	use, short string,
	create func(context.Context, app.ProjectOptions) error,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			repo, _ := cmd.Flags().GetString("repo-uri")
			branch, _ := cmd.Flags().GetString("git-branch")
			template, _ := cmd.Flags().GetString("template")
			source, _ := cmd.Flags().GetString("source")

			return create(cmd.Context(), app.ProjectOptions{
				Name:     name,
				Repo:     repo,
				Branch:   branch,
				Template: template,
				Source:   source,
			})
		},
	}
	cmd.Flags().StringP("name", "n", "", "Name of the project (required)")
	cmd.Flags().StringP("repo-uri", "r", "", "Template repository, owner/repo or a git URL")
	cmd.Flags().StringP("git-branch", "g", "", "Branch of the template repository")
	cmd.Flags().StringP("template", "t", "", "Template to use from the repository")
	cmd.Flags().StringP("source", "s", "", "Odra source: a version, a local path or a branch (default latest release)")
	return cmd
}
