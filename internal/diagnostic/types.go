package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"view-generator/internal/common"
)

// Diagnostic codes.
const (
	// CodeScopeUnmatched: a field directive is scoped to a model the class does not generate.
	CodeScopeUnmatched = "scope_unmatched"
	// CodeModuleNotFound: a converter's root identifier is imported from a module that does not exist.
	CodeModuleNotFound = "module_not_found"
	// CodeUnresolvedImport: a complex field type is not covered by any import.
	CodeUnresolvedImport = "unresolved_import"
	// CodeContextUnresolved: a converter context type is not covered by any import.
	CodeContextUnresolved = "context_unresolved"
	// CodeMapperSuppressed: a class opted out of the mapper of a shared output file.
	CodeMapperSuppressed = "mapper_suppressed"
	// CodeEmptyView: nothing was rendered for an output file.
	CodeEmptyView = "empty_view"
)

// Diagnostics holds the non-fatal findings of a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// File is the source file this relates to (if any).
	File string
	// Line is the 1-based line in File (0 when unknown).
	Line int
	// Class identifies which view class this relates to (if any).
	Class string
	// Field identifies which field this relates to (if any).
	Field string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add records a diagnostic under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, class, field string) {
	d.Add(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, Class: class, Field: field})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, class, field string) {
	d.Add(Diagnostic{Severity: DiagnosticWarning, Code: code, Message: message, Class: class, Field: field})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, class, field string) {
	d.Add(Diagnostic{Severity: DiagnosticInfo, Code: code, Message: message, Class: class, Field: field})
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// Escalate turns every warning into an error.
func (d *Diagnostics) Escalate() {
	for _, w := range d.Warnings {
		w.Severity = DiagnosticError
		d.Errors = append(d.Errors, w)
	}

	d.Warnings = nil
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Location returns "file:line", "file" or "".
func (d Diagnostic) Location() string {
	switch {
	case d.File == "":
		return ""
	case d.Line > 0:
		return fmt.Sprintf("%s:%d", d.File, d.Line)
	default:
		return d.File
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if loc := d.Location(); loc != "" {
		prefix = append(prefix, loc)
	}

	if d.Class != "" {
		prefix = append(prefix, "["+d.Class+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
