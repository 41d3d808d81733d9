package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is the default extraction rules file name.
const DefaultRulesFile = ".uwstats"

// ErrRulesNotFound is returned when the rules file does not exist.
// Callers should treat this as fatal only when the path was explicitly
// specified by the user.
var ErrRulesNotFound = errors.New("rules file not found")

// LoadRulesFile loads extraction rules from a YAML file and merges them
// over the built-in defaults, so a rules file only needs to list the
// tables it overrides.
func LoadRulesFile(path string) (*Rules, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided rules path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRulesNotFound
		}
		return nil, err
	}

	var overrides Rules
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, err
	}

	rules := DefaultRules()
	rules.merge(&overrides)
	return rules, nil
}

// FindRulesFile searches for the extraction rules file in the following
// order:
//  1. If rulesPath is specified, use it directly
//  2. Look for .uwstats in the current directory
//  3. Look for .uwstats in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindRulesFile(rulesPath string) string {
	if rulesPath != "" {
		if _, err := os.Stat(rulesPath); err == nil {
			return rulesPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdRules := filepath.Join(cwd, DefaultRulesFile)
		if _, err := os.Stat(cwdRules); err == nil {
			return cwdRules
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeRules := filepath.Join(home, DefaultRulesFile)
		if _, err := os.Stat(homeRules); err == nil {
			return homeRules
		}
	}

	return ""
}
