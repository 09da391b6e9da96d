// Package config handles loading and validation of json_env's own settings.
//
// Settings are read from $XDG_CONFIG_HOME/json_env/config.toml
// (~/.config/json_env/config.toml) with environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - command-line flags (applied by the caller)
//   - JSON_ENV_* environment variables
//   - config file settings
//   - default values
//
// # Key Settings
//
//   - file_name: config file searched for from the working directory (default ".env.json")
//   - default_path: path expression used when none is given (default "$")
//   - expand: substitute $NAME references by default
//   - trust_file: location of the trust record (must be absolute or start with ~)
//   - [hook] notify: print a notice when the hook skips an untrusted file
//   - [theme] name and mode: colors for interactive output
//
// The resolved config, working directory and environment snapshot travel
// through the command context; see WithConfig, WithWorkDir and WithEnv.
package config
