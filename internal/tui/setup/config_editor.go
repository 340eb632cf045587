package setup

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/lieyanc/czai/internal/config"
	"github.com/lieyanc/czai/internal/llm"
)

// RunConfigEditor edits cfg with every field prefilled and saves it to
// store.
func RunConfigEditor(store *config.Store, cfg *config.Config) (*config.Config, error) {
	fmt.Println()
	fmt.Println(titleStyle.Render("czai configuration"))
	fmt.Println(subtitleStyle.Render("   " + store.Path()))
	fmt.Println()

	if err := editProviderSettings(cfg); err != nil {
		return cfg, err
	}
	if err := editGenerationSettings(cfg); err != nil {
		return cfg, err
	}

	cfg.ConfigVersion = config.CurrentConfigVersion
	if err := store.Set(cfg); err != nil {
		return cfg, fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("✓ Configuration saved!"))
	fmt.Println(subtitleStyle.Render("  " + summary(cfg)))
	fmt.Println()
	return cfg, nil
}

// editProviderSettings asks for mode, provider, model and base URL.
func editProviderSettings(cfg *config.Config) error {
	mode := cfg.Mode
	modeSelect := huh.NewSelect[string]().
		Title("How should commit messages be written?").
		Options(
			huh.NewOption("Generate with an LLM, fall back to manual entry", string(llm.ModeAuto)),
			huh.NewOption("Always enter them manually", string(llm.ModeManual)),
		).
		Value(&mode)
	if err := huh.NewForm(huh.NewGroup(modeSelect)).Run(); err != nil {
		return err
	}
	cfg.Mode = mode
	if mode == string(llm.ModeManual) {
		return nil
	}

	providerName := cfg.Provider
	names := llm.ProviderNames()
	displayNames := llm.ProviderDisplayNames()
	providerOptions := make([]huh.Option[string], len(names))
	for i, name := range names {
		providerOptions[i] = huh.NewOption(displayNames[name], string(name))
	}
	providerSelect := huh.NewSelect[string]().
		Title("LLM Provider").
		Options(providerOptions...).
		Value(&providerName)
	if err := huh.NewForm(huh.NewGroup(providerSelect)).Run(); err != nil {
		return err
	}

	id := llm.ProviderID(providerName)
	model := cfg.Model
	baseURL := cfg.BaseURL
	if providerName != cfg.Provider {
		model, baseURL = "", ""
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Model name").
			Description("Leave empty for the provider default.").
			Placeholder(llm.DefaultModel(id)).
			Value(&model),
	}
	baseURLInput := huh.NewInput().
		Title("API Base URL").
		Placeholder("https://api.example.com/v1").
		Value(&baseURL)
	if id == llm.ProviderCustom {
		baseURLInput = baseURLInput.Validate(func(s string) error {
			if s == "" {
				return errors.New("base URL is required for custom provider")
			}
			return nil
		})
	} else {
		baseURLInput = baseURLInput.Description("Optional override of the provider endpoint.")
	}
	fields = append(fields, baseURLInput)

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}

	cfg.Provider = providerName
	cfg.Model = model
	cfg.BaseURL = baseURL
	return nil
}

// editGenerationSettings asks for language, retry budgets and diff limit.
func editGenerationSettings(cfg *config.Config) error {
	language := cfg.Language
	maxRetries := strconv.Itoa(cfg.MaxRetries)
	validationRetries := strconv.Itoa(cfg.ValidationMaxRetries)
	maxDiff := strconv.Itoa(cfg.MaxDiffChars)

	languageSelect := huh.NewSelect[string]().
		Title("Commit message language").
		Options(
			huh.NewOption("English", "en"),
			huh.NewOption("中文", "zh"),
			huh.NewOption("日本語", "ja"),
			huh.NewOption("한국어", "ko"),
		).
		Value(&language)

	form := huh.NewForm(huh.NewGroup(
		languageSelect,
		positiveInput("Generation attempts", &maxRetries),
		positiveInput("Lint repair attempts", &validationRetries),
		huh.NewInput().
			Title("Max diff characters").
			Description("0 sends the whole staged diff.").
			Value(&maxDiff).
			Validate(nonNegative),
	))
	if err := form.Run(); err != nil {
		return err
	}

	cfg.Language = language
	cfg.MaxRetries, _ = strconv.Atoi(maxRetries)
	cfg.ValidationMaxRetries, _ = strconv.Atoi(validationRetries)
	cfg.MaxDiffChars, _ = strconv.Atoi(maxDiff)
	return nil
}

func positiveInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		})
}

func nonNegative(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be zero or a positive integer")
	}
	return nil
}
