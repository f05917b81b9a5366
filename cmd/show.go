package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the properties of a document",
	Long: `Show every top-level property of a document with its JSON kind and value.

Examples:
  jsonconf show settings             # Table of properties
  jsonconf show settings -o json     # Pretty printed JSON
  jsonconf show settings -o yaml     # YAML, in document order`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showFlags *OutputFlags

func init() {
	rootCmd.AddCommand(showCmd)

	showFlags = AddOutputFlags(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := showFlags.ValidateFlags(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	s, _, err := newStore(cmd)
	if err != nil {
		return err
	}

	path := resolveDocument(args[0])
	doc, found, err := s.Read(cmd.Context(), path)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no document at %s", path)
	}

	if showFlags.Quiet {
		return nil
	}
	return writeDocument(cmd.OutOrStdout(), doc, showFlags.Format)
}
