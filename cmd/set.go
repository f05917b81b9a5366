package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/jsonconf/internal/jsontree"
)

var setCmd = &cobra.Command{
	Use:   "set <name> <key> <value>",
	Short: "Set one property of a document",
	Long: `Set one top-level property. The value is parsed as JSON; anything that is
not valid JSON is stored as a string. Other properties are kept as they are
and the document is created if it does not exist.

Examples:
  jsonconf set settings port 8080
  jsonconf set settings tags '["a","b"]'
  jsonconf set settings name hello          # stored as "hello"
  jsonconf set settings port --delete`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSet,
}

var setDelete bool

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().BoolVar(&setDelete, "delete", false, "Remove the property instead of setting it")
}

func runSet(cmd *cobra.Command, args []string) error {
	if setDelete != (len(args) == 2) {
		return fmt.Errorf("expected a value, or --delete without one")
	}

	s, logger, err := newStore(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	path := resolveDocument(args[0])
	key := args[1]

	// Read validates that an existing document is a JSON object.
	_, found, err := s.Read(ctx, path)
	if err != nil {
		return err
	}

	raw := []byte("{}")
	if found {
		raw, _, err = s.ReadRaw(ctx, path)
		if err != nil {
			return err
		}
	}

	if setDelete {
		raw, err = jsontree.DeleteMember(raw, key)
	} else {
		raw, err = jsontree.SetMember(raw, key, parseValue(args[2]))
	}
	if err != nil {
		return err
	}

	if err := s.Write(ctx, path, raw); err != nil {
		return err
	}

	logger.Info(ctx, "Property updated", "path", path, "key", key, "deleted", setDelete)
	return nil
}

// parseValue reads s as JSON, falling back to a JSON string.
func parseValue(s string) jsontree.Node {
	if n, err := jsontree.Parse([]byte(s)); err == nil {
		return n
	}
	return jsontree.String(s)
}
