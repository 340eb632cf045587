package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lieyanc/czai/internal/config"
	"github.com/lieyanc/czai/internal/tui/setup"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open interactive configuration editor",
	RunE:  runConfigEdit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration as YAML",
	RunE:  runConfigShow,
}

var configSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Re-run the setup wizard",
	RunE:  runConfigSetup,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetupCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	store := config.DefaultStore()
	if !store.Exists() {
		fmt.Fprintln(cmd.OutOrStdout(), "No configuration found. Running setup wizard...")
		_, err := setup.RunWizard(store)
		return err
	}

	cfg, err := store.Get()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	_, err = setup.RunConfigEditor(store, cfg)
	return err
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	store := config.DefaultStore()
	if !store.Exists() {
		fmt.Fprintln(cmd.OutOrStdout(), "No configuration found. Run 'czai config setup' to create one.")
		return nil
	}

	cfg, err := store.Get()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return showConfig(cmd, store.Path(), cfg)
}

// showConfig prints cfg as YAML. API keys are never part of Config, so there
// is nothing to mask.
func showConfig(cmd *cobra.Command, path string, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s\n\n", path)
	_, err = out.Write(data)
	return err
}

func runConfigSetup(cmd *cobra.Command, args []string) error {
	_, err := setup.RunWizard(config.DefaultStore())
	return err
}
