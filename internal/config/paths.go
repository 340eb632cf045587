package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName    = "czai"
	configFile = "config.yaml"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "CZAI_CONFIG"
)

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, appName, configFile)
}
