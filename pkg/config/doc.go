// Package config loads stamp's application configuration.
//
// Layers are applied in order, each overriding the previous one:
//
//  1. built-in defaults (embedded/defaults.toml)
//  2. the user config, $XDG_CONFIG_HOME/stamp/config.toml
//  3. the project config, .stamp.toml in the working directory
//  4. STAMP_* environment variables; a double underscore separates
//     nested keys (STAMP_PERMISSIONS__FILE=0600)
//
// Missing config files are not an error.
package config
