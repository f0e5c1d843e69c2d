// Package cmdutil holds helpers shared by the readlog commands: output path
// resolution, struct flattening and Datasette publishing.
package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// OutputConfig holds the output locations for an export command
type OutputConfig struct {
	// OutputDir is a subdirectory of markdownoutputdir, or an absolute path
	OutputDir string
	// ConfigKey names the exporter; it is the default subdirectory and JSON file name
	ConfigKey  string
	JSONOutput string
	WriteJSON  bool
	Overwrite  bool
}

// SetupOutputDir resolves the markdown and JSON paths against the configured
// base directories and creates them.
func SetupOutputDir(cfg *OutputConfig) error {
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = viper.GetString(cfg.ConfigKey + ".output")
	}
	if outputDir == "" {
		outputDir = cfg.ConfigKey
	}

	if filepath.IsAbs(outputDir) {
		cfg.OutputDir = filepath.Clean(outputDir)
	} else {
		baseDir := viper.GetString("markdownoutputdir")
		if baseDir == "" {
			baseDir = "markdown"
		}
		cfg.OutputDir = filepath.Clean(filepath.Join(baseDir, outputDir))
	}

	if cfg.WriteJSON && cfg.JSONOutput == "" {
		jsonBaseDir := viper.GetString("jsonoutputdir")
		if jsonBaseDir == "" {
			jsonBaseDir = "json"
		}
		cfg.JSONOutput = filepath.Clean(filepath.Join(jsonBaseDir, cfg.ConfigKey+".json"))
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if cfg.WriteJSON {
		if err := os.MkdirAll(filepath.Dir(cfg.JSONOutput), 0o755); err != nil {
			return fmt.Errorf("failed to create JSON output directory: %w", err)
		}
	}

	return nil
}

// JSONOutputPath returns flagValue, or <jsonoutputdir>/<name>.json when it is empty
func JSONOutputPath(flagValue, name string) string {
	if flagValue != "" {
		return flagValue
	}
	jsonBaseDir := viper.GetString("jsonoutputdir")
	if jsonBaseDir == "" {
		jsonBaseDir = "json"
	}
	return filepath.Clean(filepath.Join(jsonBaseDir, name+".json"))
}
