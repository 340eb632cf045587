package setup

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/lieyanc/czai/internal/config"
)

// RunMigration asks about options added since cfg was saved and stores the
// upgraded config.
func RunMigration(store *config.Store, cfg *config.Config) (*config.Config, error) {
	fromVersion := cfg.ConfigVersion

	fmt.Println()
	fmt.Println(titleStyle.Render("New configuration options available!"))
	fmt.Println(subtitleStyle.Render("   Your config will be updated to the latest version."))
	fmt.Println()

	useDefaults := true
	confirm := huh.NewConfirm().
		Title("Use defaults for all new options?").
		Description("Select No to review the generation settings.").
		Value(&useDefaults)
	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return cfg, err
	}

	config.ApplyDefaults(cfg, fromVersion)
	if !useDefaults {
		if err := editGenerationSettings(cfg); err != nil {
			return cfg, err
		}
	}

	if err := store.Set(cfg); err != nil {
		return cfg, fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("✓ Configuration updated!"))
	fmt.Println()
	return cfg, nil
}
