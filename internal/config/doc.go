// Package config loads the application configuration for both binaries.
//
// Values are gathered from three sources and merged with mergo in priority
// order (earlier sources win for non-zero fields): environment variables,
// command-line flags, and an optional JSON file whose path comes from the
// first two sources. After merging, defaults are applied and the result is
// validated.
package config
