package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgerrors "github.com/conneroisu/jsonconf/internal/errors"
	"github.com/conneroisu/jsonconf/internal/jsontree"
)

var getCmd = &cobra.Command{
	Use:   "get <name> <key>",
	Short: "Print one property of a document",
	Long: `Print the value of one top-level property as pretty printed JSON.
Strings are printed without quotes unless --raw is given.

Examples:
  jsonconf get settings port
  jsonconf get settings name --raw`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

var getRaw bool

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolVar(&getRaw, "raw", false, "Print strings as JSON")
}

func runGet(cmd *cobra.Command, args []string) error {
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

	value, ok := doc.Lookup(args[1])
	if !ok {
		return cfgerrors.NewValidationError(cfgerrors.ErrCodeUnknownKey, "no such property").
			WithPath(path).
			WithKey(args[1])
	}

	out := cmd.OutOrStdout()
	if value.IsString() && !getRaw {
		_, err = fmt.Fprintln(out, value.Str())
		return err
	}
	_, err = out.Write(jsontree.Pretty(value))
	return err
}
