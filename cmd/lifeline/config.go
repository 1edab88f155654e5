// Config loading for the lifeline CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend = "backend"
	cfgKeyDataDir = "data_dir"
	cfgKeyRules   = "minimum_duration_by_layer"

	// Default backend.
	defaultBackend = "sqlite"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Lifeline CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Minimum block duration in years, keyed by layer number. Entries here
# override the seeded rule table on startup.
# minimum_duration_by_layer:
#   1: 4.0
#   2: 2.0
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ruleOverridesFromConfig parses the minimum_duration_by_layer mapping.
// YAML keys arrive as strings; they must parse as positive integers.
func ruleOverridesFromConfig(v *viper.Viper) (map[int]float64, error) {
	raw := v.GetStringMapString(cfgKeyRules)
	if len(raw) == 0 {
		return nil, nil
	}

	overrides := make(map[int]float64, len(raw))
	for key, value := range raw {
		layerNumber, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("config %s: layer number %q is not an integer", cfgKeyRules, key)
		}
		minimum, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("config %s: minimum %q for layer %d is not a number", cfgKeyRules, value, layerNumber)
		}
		overrides[layerNumber] = minimum
	}
	return overrides, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
