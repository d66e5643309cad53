// Package config loads the program settings from three layers: built-in
// defaults, an optional YAML file and COURSEPLAN_* environment variables,
// which may also come from a .env file. Command-line flags are applied on
// top of the result by package cli.
package config
