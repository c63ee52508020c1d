package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".reimage.yml"

// File is the on-disk configuration file format.
// All fields are optional; empty values leave the built-in defaults
// untouched.
type File struct {
	// APIKeyEnv names the environment variable holding the API key.
	// Defaults to GEMINI_API_KEY. The key itself never lives in the
	// config file.
	APIKeyEnv string `yaml:"api_key_env"`

	// TextModel overrides the analysis model name.
	TextModel string `yaml:"text_model"`

	// ImageModel overrides the synthesis model name.
	ImageModel string `yaml:"image_model"`

	// Concurrency overrides the batch concurrency.
	Concurrency int `yaml:"concurrency"`

	// Prompts overrides the analysis prompt wording per method.
	Prompts PromptOverrides `yaml:"prompts"`
}

// PromptOverrides holds optional analysis prompt replacements.
type PromptOverrides struct {
	// JSON replaces the JSON-method analysis prompt.
	JSON string `yaml:"json"`

	// JSONSVG replaces the JSON+SVG-method analysis prompt.
	JSONSVG string `yaml:"json_svg"`
}

// LoadConfigFile loads configuration overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should handle this based on whether the path was explicitly specified
// by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply merges the file's overrides into the config. Empty fields leave
// the existing values untouched.
func (f *File) Apply(cfg *Config) {
	if f.TextModel != "" {
		cfg.TextModel = f.TextModel
	}
	if f.ImageModel != "" {
		cfg.ImageModel = f.ImageModel
	}
	if f.Concurrency > 0 {
		cfg.Concurrency = f.Concurrency
	}
	if f.Prompts.JSON != "" {
		cfg.JSONPrompt = f.Prompts.JSON
	}
	if f.Prompts.JSONSVG != "" {
		cfg.JSONSVGPrompt = f.Prompts.JSONSVG
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .reimage.yml in the current directory
//  3. Look for it in the XDG config directory
//  4. Look for it in the user's home directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)

	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), DefaultConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
