package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTextModel is the model used for image analysis.
	// gemini-2.0-flash handles multimodal input and is the current
	// recommended general-purpose model.
	DefaultTextModel = "gemini-2.0-flash"

	// DefaultImageModel is the model used for image synthesis.
	DefaultImageModel = "gemini-2.0-flash"

	// DefaultTimeout is generous because image synthesis calls routinely
	// take tens of seconds. A short timeout would turn slow generations
	// into spurious failures.
	DefaultTimeout = 120 * time.Second

	// DefaultConcurrency of 1 processes batch images strictly one at a
	// time. Images share no state, so this can be raised safely, but
	// sequential processing keeps API rate usage predictable.
	DefaultConcurrency = 1

	// DefaultAPIKeyEnv is the environment variable holding the API key.
	DefaultAPIKeyEnv = "GEMINI_API_KEY"

	// AppName is the application name used for XDG directory paths.
	AppName = "reimage"

	// DefaultReportFile is the per-image report file name.
	DefaultReportFile = "report.html"

	// DefaultIndexFile is the batch index file name.
	DefaultIndexFile = "index.html"

	// DefaultSummaryFile is the batch Markdown summary file name.
	DefaultSummaryFile = "SUMMARY.md"
)

// Config holds all configuration options for reimage.
// This struct is populated from CLI flags and the optional config file,
// then passed through the application via dependency injection rather
// than global state. In particular the API key is injected once into the
// model client at startup, keeping the extractor, prompt builder, and
// report assembler fully pure.
type Config struct {
	// APIKey is the generative model API credential. Required for the
	// analyze, generate, and batch commands; never logged.
	APIKey string

	// TextModel is the model name used for analysis calls.
	TextModel string

	// ImageModel is the model name used for synthesis calls.
	ImageModel string

	// Timeout is the per-request timeout for model API calls.
	Timeout time.Duration

	// Concurrency is the number of images processed in parallel during
	// batch runs. Manifest order is independent of this value.
	Concurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches for .reimage.yml in the current directory, the
	// XDG config directory, and the user's home directory.
	ConfigFilePath string

	// JSONPrompt overrides the JSON-method analysis prompt when non-empty.
	JSONPrompt string

	// JSONSVGPrompt overrides the JSON+SVG-method analysis prompt when non-empty.
	JSONSVGPrompt string

	// SaveToDB indicates whether to record runs in the history database.
	SaveToDB bool

	// DBDir is the directory path for the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults; users can override
// specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeout, model names).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		TextModel:   DefaultTextModel,
		ImageModel:  DefaultImageModel,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		SaveToDB:    true,
		DBDir:       XDGDataDir(),
	}
}

// LoadAPIKey reads the API key from the environment. The variable name
// defaults to DefaultAPIKeyEnv and can be redirected via the config
// file for users who keep multiple credentials.
func (c *Config) LoadAPIKey(envName string) {
	if envName == "" {
		envName = DefaultAPIKeyEnv
	}
	c.APIKey = os.Getenv(envName)
}

// XDGDataDir returns the XDG data directory for reimage.
// On Linux: ~/.local/share/reimage
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for reimage.
// On Linux: ~/.config/reimage
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for reimage.
// On Linux: ~/.cache/reimage
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid and returns a specific
// error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast with a clear message before any work begins.
// The API key check in particular must run before the first model call:
// a missing credential is a startup error, not a per-call error.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	return nil
}
