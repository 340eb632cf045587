package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lieyanc/czai/internal/lint"
	"github.com/lieyanc/czai/internal/prompt"
)

// CommitlintFiles are the file names searched in the repository root, in
// order.
var CommitlintFiles = []string{
	".commitlintrc.yaml",
	".commitlintrc.yml",
	".commitlintrc.json",
	".commitlintrc.toml",
	"commitlint.config.yaml",
}

// Commitlint is the lint rule table and prompt settings for one repository.
type Commitlint struct {
	Rules  lint.Rules
	Prompt prompt.Config
	// Path is the file the settings came from, empty for the defaults.
	Path string
}

// commitlintFile is the on-disk schema shared by every format.
type commitlintFile struct {
	Rules  map[string]any `yaml:"rules" json:"rules" toml:"rules"`
	Prompt prompt.Config  `yaml:"prompt" json:"prompt" toml:"prompt"`
}

// DefaultCommitlint returns the conventional rules with no prompt settings.
func DefaultCommitlint() Commitlint {
	return Commitlint{Rules: lint.ConventionalRules()}
}

// FindCommitlint returns the first commit-lint file present in dir, or ""
// when there is none.
func FindCommitlint(dir string) string {
	for _, name := range CommitlintFiles {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// LoadCommitlint reads the commit-lint file in dir. Rules in the file
// override the conventional defaults by name; a missing file yields the
// defaults unchanged.
func LoadCommitlint(dir string) (Commitlint, error) {
	path := FindCommitlint(dir)
	if path == "" {
		return DefaultCommitlint(), nil
	}
	return ReadCommitlint(path)
}

// ReadCommitlint decodes the file at path, choosing the format by extension.
func ReadCommitlint(path string) (Commitlint, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Commitlint{}, fmt.Errorf("commitlint config %s: %w", path, err)
	}
	if err != nil {
		return Commitlint{}, fmt.Errorf("read commitlint config: %w", err)
	}

	var file commitlintFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &file)
	case ".toml":
		_, err = toml.Decode(string(data), &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return Commitlint{}, fmt.Errorf("parse commitlint config %s: %w", path, err)
	}

	rules := lint.ConventionalRules()
	for name, rule := range lint.RulesFromRaw(file.Rules) {
		rules[name] = rule
	}
	return Commitlint{Rules: rules, Prompt: file.Prompt, Path: path}, nil
}
