package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/medibook/internal/config"
)

// NewConfigInitCmd creates the config init command, which writes the default configuration.
func NewConfigInitCmd() *cobra.Command {
	var force, project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at $MEDIBOOK_CONFIG,
~/.medibook/config.yaml, or the path given with --config.

With --project the file is written to .medibook/config.yaml in the directory given by
--project-dir, $MEDIBOOK_PROJECT_DIR or the working directory, together with a .gitignore
that keeps logs out of version control.`,
		Example: `  # Create the default configuration
  medibook config init

  # Create a project-local configuration in the current directory
  medibook config init --project

  # Overwrite an existing configuration
  medibook config init --force`,
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				projectDir, _ := cmd.Flags().GetString("project-dir")
				return initProjectConfig(cmd, config.ProjectConfigPath(cmd.Context(), projectDir), force)
			}
			path := configPath(cmd)
			if err := config.Default().WriteFile(path, force); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create a project-local .medibook/config.yaml")

	return cmd
}

// initProjectConfig writes the defaults to path and a .gitignore next to it.
func initProjectConfig(cmd *cobra.Command, path string, force bool) error {
	if err := config.Default().WriteFile(path, force); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	created, err := config.EnsureGitignore(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	if created {
		cmd.Printf("Created .gitignore to keep logs out of version control\n")
	}
	return nil
}
