// Package logging builds the process-wide structured logger from
// configuration, wrapping log/slog with level and format parsing.
package logging
