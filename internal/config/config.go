package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/jsonenv/json_env/internal/storage"
)

// FileName is the config file's base name inside the json_env config dir.
const FileName = "config.toml"

// Defaults for the settings json_env always needs.
const (
	DefaultFileName  = ".env.json"
	DefaultPath      = "$"
	DefaultThemeName = "default"
	DefaultThemeMode = "auto"
)

// HookConfig holds settings for the shell hook.
type HookConfig struct {
	// Notify prints a one-line notice when an untrusted file is skipped.
	Notify *bool `toml:"notify" json:"notify" env:"JSON_ENV_HOOK_NOTIFY"`
}

// ThemeConfig selects colors for interactive output.
type ThemeConfig struct {
	Name string `toml:"name" json:"name" env:"JSON_ENV_THEME"`
	Mode string `toml:"mode" json:"mode" env:"JSON_ENV_THEME_MODE"` // "auto", "light" or "dark"
}

// Config holds the json_env configuration.
// Pointer fields distinguish "not set" from false so that each layer only
// overrides what it actually sets.
type Config struct {
	FileName    string      `toml:"file_name" json:"file_name" env:"JSON_ENV_FILE_NAME"`
	DefaultPath string      `toml:"default_path" json:"default_path" env:"JSON_ENV_DEFAULT_PATH"`
	Expand      *bool       `toml:"expand" json:"expand" env:"JSON_ENV_EXPAND"`
	TrustFile   string      `toml:"trust_file" json:"trust_file" env:"JSON_ENV_TRUST_FILE"`
	Hook        HookConfig  `toml:"hook" json:"hook"`
	Theme       ThemeConfig `toml:"theme" json:"theme"`
}

// ExpandEnabled reports whether $NAME expansion is on by default.
func (c *Config) ExpandEnabled() bool {
	return c.Expand != nil && *c.Expand
}

// NotifyEnabled reports whether the hook announces skipped files.
func (c *Config) NotifyEnabled() bool {
	return c.Hook.Notify == nil || *c.Hook.Notify
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		FileName:    DefaultFileName,
		DefaultPath: DefaultPath,
		Theme: ThemeConfig{
			Name: DefaultThemeName,
			Mode: DefaultThemeMode,
		},
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := storage.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the config file at path and applies environment overrides
// from environ (the process environment when environ is nil).
// A missing file is not an error.
func Load(path string, environ map[string]string) (Config, error) {
	fileCfg, err := loadFile(path)
	if err != nil {
		return Default(), err
	}

	var envCfg Config
	if err := env.ParseWithOptions(&envCfg, env.Options{Environment: environ}); err != nil {
		return Default(), fmt.Errorf("failed to read environment overrides: %w", err)
	}

	cfg := envCfg
	if err := mergo.Merge(&cfg, fileCfg, mergo.WithoutDereference); err != nil {
		return Default(), fmt.Errorf("failed to merge config: %w", err)
	}
	if err := mergo.Merge(&cfg, Default(), mergo.WithoutDereference); err != nil {
		return Default(), fmt.Errorf("failed to merge config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}

	if cfg.TrustFile != "" {
		expanded, err := expandPath(cfg.TrustFile)
		if err != nil {
			return Default(), fmt.Errorf("expand trust_file: %w", err)
		}
		cfg.TrustFile = expanded
	}

	return cfg, nil
}

func loadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown setting %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

const defaultConfig = `# json_env configuration

# Name of the config file looked up from the working directory upwards
# file_name = ".env.json"

# Path expression applied when no --path is given
# default_path = "$"

# Substitute $NAME references in values with the caller's environment
# expand = false

# Where trusted files are recorded
# Must be an absolute path or start with ~
# trust_file = "~/.config/json_env/trusted.json"

# Shell hook
# [hook]
# notify = true   # print a notice when an untrusted file is skipped

# Colors for interactive output
# [theme]
# name = "default"   # default, nord or none
# mode = "auto"      # auto, light or dark
`

// DefaultConfig returns the commented template written by Init.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at path.
// If force is true, overwrites an existing file.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
