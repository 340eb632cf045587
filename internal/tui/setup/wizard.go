// Package setup holds the interactive first-run wizard, the config editor
// and the config migration prompts.
package setup

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lieyanc/czai/internal/config"
	"github.com/lieyanc/czai/internal/llm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#018EEE"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52B0FF"))
)

// RunWizard runs the first-time setup and saves the result to store.
func RunWizard(store *config.Store) (*config.Config, error) {
	fmt.Println()
	fmt.Println(titleStyle.Render("Welcome to czai!"))
	fmt.Println(subtitleStyle.Render("   Let's pick how commit messages are written."))
	fmt.Println()

	cfg := config.DefaultConfig()
	if err := editProviderSettings(cfg); err != nil {
		return nil, err
	}

	cfg.ConfigVersion = config.CurrentConfigVersion
	if err := store.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("✓ Configuration saved to " + store.Path()))
	fmt.Println(subtitleStyle.Render("  " + summary(cfg)))
	fmt.Println()
	return cfg, nil
}

func summary(cfg *config.Config) string {
	if cfg.Mode == string(llm.ModeManual) {
		return "Mode: manual"
	}
	id := llm.ProviderID(cfg.Provider)
	model := cfg.Model
	if model == "" {
		model = llm.DefaultModel(id)
	}
	line := fmt.Sprintf("Provider: %s | Model: %s", llm.ProviderDisplayNames()[id], model)
	if config.NeedsAPIKey(id) {
		line += " | Key from $" + strings.Join(config.KeyEnvVars(id), " or $")
	}
	return line
}
