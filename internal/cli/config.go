package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/medibook/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(NewConfigInitCmd(), newConfigShowCmd(), newConfigValidateCmd(), newConfigPathCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration, including environment overrides",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := configFromContext(cmd.Context()).YAML()
			if err != nil {
				return fmt.Errorf("rendering configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Check the configuration file and environment overrides",
		Annotations: map[string]string{annotationSkipConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths := configPaths(cmd)
			if _, err := config.Load(paths...); err != nil {
				return fmt.Errorf("configuration %s is invalid: %w", strings.Join(paths, ", "), err)
			}
			cmd.Printf("Configuration %s is valid\n", strings.Join(paths, ", "))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration files in load order: global, then project-local",
		Annotations: map[string]string{annotationSkipConfig: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			for _, path := range configPaths(cmd) {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
		},
	}
}
