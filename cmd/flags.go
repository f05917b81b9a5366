package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// OutputFlags provides consistent output flag definitions across commands
type OutputFlags struct {
	Format string `flag:"output,o" desc:"Output format (table|json|yaml)" default:"table"`
	Quiet  bool   `flag:"quiet,q" desc:"Suppress output" default:"false"`
}

var outputFormats = []string{"table", "json", "yaml"}

// AddOutputFlags adds the output flags to a command
func AddOutputFlags(cmd *cobra.Command) *OutputFlags {
	flags := &OutputFlags{}

	cmd.Flags().StringVarP(&flags.Format, "output", "o", "table", "Output format (table|json|yaml)")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress output")

	AddFlagValidation(cmd, "output", func(format string) error {
		return ValidateFormatWithSuggestion(format, outputFormats)
	})

	return flags
}

// ValidateFlags validates flag combinations and values
func (f *OutputFlags) ValidateFlags() error {
	return ValidateFormatWithSuggestion(f.Format, outputFormats)
}

// ValidateFormatWithSuggestion checks format against valid and suggests the
// closest valid value when it is not one of them.
func ValidateFormatWithSuggestion(format string, valid []string) error {
	lower := strings.ToLower(format)
	for _, v := range valid {
		if lower == v {
			return nil
		}
	}

	msg := fmt.Sprintf("invalid format %q, must be one of: %s", format, strings.Join(valid, ", "))
	for _, v := range valid {
		if lower != "" && (strings.HasPrefix(v, lower) || strings.HasPrefix(lower, v)) {
			msg += fmt.Sprintf(" (did you mean %q?)", v)
			break
		}
	}

	return fmt.Errorf("%s", msg)
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(flagName)
	}
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}
