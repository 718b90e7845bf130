// Package ui renders masked fields and their token lists for the maskedit CLI.
//
// The components follow a "render once and print" pattern: they produce
// styled strings with Lipgloss and never wait for input, except Confirm,
// which reads a single answer line.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Field: the display text with literals, prompts and the selection styled
//   - TokenTable: one row per token with its range and increments
//   - Result: success/failure boxes with styled details
//   - Printer: writes the components to an io.Writer at a fixed width
//
// # Logging Integration
//
// Logging is controlled via the MASKEDIT_LOG_LEVEL environment variable.
// When unset, zap logging is silent so the styled output stays clean.
package ui
