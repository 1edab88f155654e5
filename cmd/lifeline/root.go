// Root command for the lifeline CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/lifeline/internal/paths"
	"github.com/mesh-intelligence/lifeline/pkg/lifeline"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

// configRuleOverrides holds the minimum_duration_by_layer mapping loaded
// from config.yaml.
var configRuleOverrides map[int]float64

var rootCmd = &cobra.Command{
	Use:     "lifeline",
	Short:   "Lifeline stores constraint-checked life-planning timelines",
	Long: `Lifeline persists a three-level planning hierarchy (timelines,
layers, blocks) in SQLite, enforcing age-range nesting and per-layer
minimum block durations on every write.`,
	Version:       lifeline.Version,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configRuleOverrides, err = ruleOverridesFromConfig(cfg)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.lifeline-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(layerCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > LIFELINE_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > LIFELINE_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
