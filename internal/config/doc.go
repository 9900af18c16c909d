// Package config provides configuration loading for the account record
// merger tools.
//
// Configuration comes from three layers, lowest to highest precedence:
// struct defaults, an optional YAML file (config.yaml in the working
// directory, or the path in UAR_CONFIG_PATH), and environment variables
// with the UAR_ prefix (e.g. UAR_LOGGING_LEVEL).
//
// Only ambient concerns live here: logging and optional ingestion knobs.
// The input and output directories are always CLI positional arguments.
package config
