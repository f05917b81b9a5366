package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/jsonconf/internal/jsontree"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <name>",
	Short: "Pretty print a document in place",
	Long: `Rewrite a document with two space indentation and a trailing newline, the
layout jsonconf itself writes.

Examples:
  jsonconf fmt settings
  jsonconf fmt settings --check      # Fail if the document is not formatted`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

var fmtCheck bool

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Report unformatted documents without rewriting them")
}

func runFmt(cmd *cobra.Command, args []string) error {
	s, _, err := newStore(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	path := resolveDocument(args[0])

	if _, found, err := s.Read(ctx, path); err != nil {
		return err
	} else if !found {
		return fmt.Errorf("no document at %s", path)
	}

	raw, _, err := s.ReadRaw(ctx, path)
	if err != nil {
		return err
	}

	formatted := jsontree.Format(raw)
	if bytes.Equal(raw, formatted) {
		return nil
	}

	if fmtCheck {
		return fmt.Errorf("%s is not formatted", path)
	}

	if err := s.Write(ctx, path, raw); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
