package config

import (
	"errors"
	"fmt"
	"strings"

	cfgerrors "github.com/conneroisu/jsonconf/internal/errors"
)

// ValidationError describes one problem with an entry.
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of validating a Config.
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// Err joins the validation errors, or returns nil when there are none.
// Warnings are not included.
func (vr *ValidationResult) Err() error {
	if !vr.HasErrors() {
		return nil
	}
	errs := make([]error, 0, len(vr.Errors))
	for _, ve := range vr.Errors {
		errs = append(errs, cfgerrors.NewValidationError(cfgerrors.ErrCodeOutOfBounds, ve.Message).WithKey(ve.Field))
	}
	return errors.Join(errs...)
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("Validation errors:\n")
		writeIssues(&builder, vr.Errors)
	}

	if len(vr.Warnings) > 0 {
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("Validation warnings:\n")
		writeIssues(&builder, vr.Warnings)
	}

	return builder.String()
}

func writeIssues(builder *strings.Builder, issues []ValidationError) {
	for _, issue := range issues {
		builder.WriteString(fmt.Sprintf("  - %s: %s\n", issue.Field, issue.Message))
		for _, suggestion := range issue.Suggestions {
			builder.WriteString(fmt.Sprintf("      %s\n", suggestion))
		}
	}
}

// Validate checks the entries without changing them. Numeric entries
// outside their declared bounds are errors; a numeric default outside its
// bounds and an emptied list that will reload as its default are warnings.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	for _, key := range c.order {
		switch v := c.entries[key].(type) {
		case interface{ boundsReport() boundsReport }:
			validateBounds(key, v.boundsReport(), result)
		case interface {
			IsEmpty() bool
			hasDefaults() bool
		}:
			if v.IsEmpty() && v.hasDefaults() {
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   key,
					Value:   []any{},
					Message: "empty list is saved as null and reloads as its default",
					Suggestions: []string{
						"Keep at least one element if the list must stay empty after a reload",
					},
				})
			}
		}
	}

	result.Valid = !result.HasErrors()

	return result
}

func validateBounds(key string, r boundsReport, result *ValidationResult) {
	if !r.currentOK {
		result.Errors = append(result.Errors, ValidationError{
			Field:   key,
			Value:   r.current,
			Message: fmt.Sprintf("value %v is not in range %v-%v", r.current, r.min, r.max),
			Suggestions: []string{
				fmt.Sprintf("Use a value between %v and %v", r.min, r.max),
				fmt.Sprintf("The default is %v", r.def),
			},
		})
	}
	if !r.defaultOK {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   key,
			Value:   r.def,
			Message: fmt.Sprintf("default %v is not in range %v-%v", r.def, r.min, r.max),
		})
	}
}
