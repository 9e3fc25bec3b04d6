// Package config provides configuration loading for edgesentry.
//
// Configuration is loaded from a YAML file and may be overridden by
// environment variables using the EDGESENTRY_SECTION_FIELD convention
// (e.g. EDGESENTRY_SERVER_LISTEN_ADDRESS). Precedence, low to high:
//
//  1. Defaults (defined in defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
package config
