package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/nativebridge/configs"
	"github.com/Aman-CERP/nativebridge/internal/config"
	"github.com/Aman-CERP/nativebridge/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage nativebridge configuration.

Configuration precedence (lowest to highest):
  1. Defaults
  2. User config (~/.config/nativebridge/config.yaml)
  3. Project config (.nativebridge.yaml)
  4. Environment variables (NATIVEBRIDGE_*)`,
		Example: `  nativebridge config init
  nativebridge config show --json
  nativebridge config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file from the template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := output.New(cmd.OutOrStdout())
			if project {
				return runProjectConfigInit(out, force)
			}
			return runUserConfigInit(out, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file (the user config is backed up first)")
	cmd.Flags().BoolVar(&project, "project", false, "Create .nativebridge.yaml in the current directory instead")

	return cmd
}

func runUserConfigInit(out *output.Writer, force bool) error {
	path := config.GetUserConfigPath()
	if config.UserConfigExists() && !force {
		out.Warning("User configuration already exists")
		out.KeyValue("location", path)
		out.Status("", "Use --force to replace it with the template")
		return nil
	}

	backup, err := config.WriteUserConfig([]byte(configs.UserConfigTemplate))
	if err != nil {
		return err
	}

	out.Success("Created user configuration")
	out.KeyValue("location", path)
	if backup != "" {
		out.KeyValue("backup", backup)
	}
	return nil
}

func runProjectConfigInit(out *output.Writer, force bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	path := filepath.Join(cwd, config.ProjectFileYAML)

	if existing := config.ProjectConfigPath(cwd); existing != "" && !force {
		out.Warning("Project configuration already exists")
		out.KeyValue("location", existing)
		return nil
	}

	if err := os.WriteFile(path, []byte(configs.ProjectConfigTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	out.Success("Created project configuration")
	out.KeyValue("location", path)
	return nil
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the user config file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}
