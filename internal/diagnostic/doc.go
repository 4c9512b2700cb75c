// Package diagnostic provides the notification sink used while introspecting
// and rendering documentation.
//
// Nothing in the introspection core fails outright. Anomalies such as
// circular annotations, unreconstructible generics, unavailable signatures
// or missing fragments are reported here and processing continues.
//
// Key capabilities:
//   - Notifier interface with admonition, error and alert levels
//   - Diagnostics collector grouped by level
//   - zap-backed notifier for command-line use
package diagnostic
