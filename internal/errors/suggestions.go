package errors

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ErrorSuggestion represents a suggestion for fixing an error
type ErrorSuggestion struct {
	Title       string
	Description string
	Command     string
	Example     string
}

// Suggest returns suggestions for the codes found in err's tree, in the
// order the codes are first met. Unknown codes produce none.
func Suggest(err error) []ErrorSuggestion {
	var suggestions []ErrorSuggestion
	seen := make(map[string]bool)

	walk(err, func(ce *ConfigError) {
		if seen[ce.Code] {
			return
		}
		seen[ce.Code] = true
		suggestions = append(suggestions, suggestionsFor(ce)...)
	})

	return suggestions
}

func walk(err error, visit func(*ConfigError)) {
	switch e := err.(type) {
	case nil:
	case *ConfigError:
		visit(e)
		walk(e.Cause, visit)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			walk(inner, visit)
		}
	case interface{ Unwrap() error }:
		walk(e.Unwrap(), visit)
	}
}

func suggestionsFor(ce *ConfigError) []ErrorSuggestion {
	switch ce.Code {
	case ErrCodeInvalidDocument:
		s := []ErrorSuggestion{{
			Title:       "Check the document syntax",
			Description: "A configuration document must be a single JSON object",
			Example:     `{"port": 8080, "tags": ["a", "b"]}`,
		}}
		if ce.Path != "" {
			s = append(s, ErrorSuggestion{
				Title:   "Inspect the file",
				Command: "cat " + ce.Path,
			})
		}
		return s
	case ErrCodeUnknownKey:
		s := []ErrorSuggestion{{
			Title:       "List the known properties",
			Description: "Property names are case sensitive",
		}}
		if ce.Path != "" {
			s[0].Command = "jsonconf show " + ce.Path
		}
		return s
	case ErrCodeOutOfBounds:
		return []ErrorSuggestion{{
			Title:       "Use a value inside the declared range",
			Description: "Numeric entries carry a minimum and maximum",
		}}
	case ErrCodeReadFailed, ErrCodeWriteFailed:
		return []ErrorSuggestion{{
			Title:       "Check file permissions",
			Description: "The document and its directory must be readable and writable",
			Command:     "ls -la " + dirOf(ce.Path),
		}}
	case ErrCodeWatchFailed:
		return []ErrorSuggestion{{
			Title:       "Check that the directory exists",
			Description: "Watching needs the directory holding the document to exist",
			Command:     "ls -la " + dirOf(ce.Path),
		}}
	case ErrCodeInvalidOption:
		return []ErrorSuggestion{{
			Title:   "Check the command help for valid values",
			Command: "jsonconf --help",
		}}
	}
	return nil
}

func dirOf(path string) string {
	if path == "" {
		return "."
	}
	return filepath.Dir(path)
}

// FormatSuggestions formats suggestions into a user-friendly string. An
// empty title is left out.
func FormatSuggestions(title string, suggestions []ErrorSuggestion) string {
	if len(suggestions) == 0 {
		return title
	}

	var output strings.Builder
	if title != "" {
		output.WriteString(title + "\n\n")
	}
	output.WriteString("Suggestions:\n")

	for i, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("  %d. %s\n", i+1, suggestion.Title))
		if suggestion.Description != "" {
			output.WriteString(fmt.Sprintf("     %s\n", suggestion.Description))
		}
		if suggestion.Command != "" {
			output.WriteString(fmt.Sprintf("     Run: %s\n", suggestion.Command))
		}
		if suggestion.Example != "" {
			output.WriteString(fmt.Sprintf("     Example: %s\n", suggestion.Example))
		}
	}

	return output.String()
}
