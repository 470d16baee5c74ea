package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a single configuration problem.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the problem prefixed with its field, when known.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult holds the results of configuration validation.
type ValidationResult struct {
	Errors []ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessages joins all errors into one line-per-error string.
func (r *ValidationResult) ErrorMessages() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func (r *ValidationResult) add(field, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the semantic constraints the decoders cannot express.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	if strings.TrimSpace(c.Manifest) == "" {
		result.add("manifest", "must not be empty")
	} else if strings.ContainsAny(c.Manifest, `/\`) {
		result.add("manifest", "must be a file name, got %q", c.Manifest)
	}
	if strings.TrimSpace(c.Commands.Workspaces) == "" {
		result.add("commands.workspaces", "must not be empty")
	}
	if strings.TrimSpace(c.Commands.Outdated) == "" {
		result.add("commands.outdated", "must not be empty")
	}
	if c.Commands.TimeoutSeconds < 0 {
		result.add("commands.timeout_seconds", "must be >= 0, got %d", c.Commands.TimeoutSeconds)
	}
	if strings.TrimSpace(c.Report.Header) == "" {
		result.add("report.header", "must not be empty")
	}
	if strings.TrimSpace(c.Report.Footer) == "" {
		result.add("report.footer", "must not be empty")
	}

	switch c.Update.Rewriter {
	case RewriterText:
	case RewriterJSON:
		if len(c.Update.Fields) == 0 {
			result.add("update.fields", "must list at least one section for the json rewriter")
		}
	default:
		result.add("update.rewriter", "must be %q or %q, got %q", RewriterText, RewriterJSON, c.Update.Rewriter)
	}

	return result
}
