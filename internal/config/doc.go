// Package config provides the babbot configuration: built-in defaults, the
// optional YAML configuration file, environment variables for the Discord
// gateway, and validation.
//
// Precedence, lowest first: defaults, configuration file, command line flags.
// Discord credentials are only read from the environment.
package config
