package diagnostic

import (
	"fmt"
	"strings"

	"dynadoc/internal/common"
)

// Level is the severity of a notification.
type Level int

const (
	LevelAdmonition Level = iota // expected anomaly, e.g. a circular annotation
	LevelError                   // recovered failure
	LevelAlert                   // requires attention
)

// String returns a human-readable level name.
func (l Level) String() string {
	switch l {
	case LevelAdmonition:
		return "admonition"
	case LevelError:
		return "error"
	case LevelAlert:
		return "alert"
	default:
		return common.UnknownStr
	}
}

// ParseLevel parses a level name as produced by Level.String.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admonition":
		return LevelAdmonition, nil
	case "error":
		return LevelError, nil
	case "alert":
		return LevelAlert, nil
	default:
		return 0, fmt.Errorf("unknown notification level %q", s)
	}
}

// Diagnostics holds all notifications from an introspection run.
type Diagnostics struct {
	Admonitions []Diagnostic
	Errors      []Diagnostic
	Alerts      []Diagnostic
}

// Diagnostic represents a single notification.
type Diagnostic struct {
	Level   Level
	Message string
}

// Notify implements Notifier.
func (d *Diagnostics) Notify(level Level, message string) {
	d.Add(Diagnostic{Level: level, Message: message})
}

// Add records a diagnostic under its level.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Level {
	case LevelAdmonition:
		d.Admonitions = append(d.Admonitions, diag)
	case LevelAlert:
		d.Alerts = append(d.Alerts, diag)
	default:
		d.Errors = append(d.Errors, diag)
	}
}

// HasErrors returns true if there are any error or alert diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0 || len(d.Alerts) > 0
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Admonitions) + len(d.Errors) + len(d.Alerts)
}

// All returns every diagnostic, alerts first, then errors, then admonitions.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Alerts...)
	all = append(all, d.Errors...)
	all = append(all, d.Admonitions...)

	return all
}

// String returns the diagnostic message.
func (d Diagnostic) String() string {
	return d.Message
}
