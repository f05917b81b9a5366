package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conneroisu/jsonconf/internal/config"
	cfgerrors "github.com/conneroisu/jsonconf/internal/errors"
	"github.com/conneroisu/jsonconf/internal/jsontree"
)

var demoCmd = &cobra.Command{
	Use:   "demo [key=value...]",
	Short: "Load, edit and save a typed registry",
	Long: `Define a sample registry of typed entries, load it from a document, apply
key=value overrides and save the result. Values are parsed as JSON except for
string entries, which take the text as is.

Entries:
  hello    string          "world"
  funny    int  (0-1000)   420
  ratio    float (0-1)     0.5
  enabled  bool            false
  tags     []string        ["a"]  (possible: a b c d)
  ports    []int           [80 443]

Examples:
  jsonconf demo                          # Create demo.json with defaults
  jsonconf demo funny=69 tags='["b","c"]'
  jsonconf demo --name other hello=there`,
	RunE: runDemo,
}

var demoName string

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVar(&demoName, "name", "demo", "Document name")
}

type demoSettings struct {
	cfg     *config.Config
	hello   *config.Scalar[string]
	funny   *config.Numeric[int]
	ratio   *config.Numeric[float64]
	enabled *config.Bool
	tags    *config.List[string]
	ports   *config.List[int]
}

func newDemoSettings(path string) (*demoSettings, error) {
	b := config.NewBuilder(path)
	s := &demoSettings{
		hello:   b.DefineString("hello", "world"),
		funny:   b.DefineInt("funny", 420, config.WithRange(0, 1000)),
		ratio:   b.DefineFloat64("ratio", 0.5, config.WithRange(0.0, 1.0)),
		enabled: b.DefineBool("enabled", false),
		tags:    b.DefineStringList("tags", []string{"a"}, config.WithPossible("a", "b", "c", "d")),
		ports:   b.DefineIntList("ports", []int{80, 443}),
	}

	cfg, err := b.Build()
	if err != nil {
		return nil, err
	}
	s.cfg = cfg
	return s, nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	st, logger, err := newStore(cmd)
	if err != nil {
		return err
	}

	settings, err := newDemoSettings(resolveDocument(demoName))
	if err != nil {
		return err
	}
	cfg := settings.cfg

	ctx := cmd.Context()
	if err := st.Load(ctx, cfg); err != nil {
		return err
	}

	for _, arg := range args {
		if err := applyOverride(cfg, arg); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	result := cfg.Validate()
	if result.HasErrors() || result.HasWarnings() {
		fmt.Fprintln(out, result.String())
	}
	if result.HasErrors() {
		return result.Err()
	}

	existed, err := st.Exists(cfg)
	if err != nil {
		return err
	}
	dirty := cfg.DirtyKeys()
	if err := st.Save(ctx, cfg); err != nil {
		return err
	}
	logger.Debug(ctx, "Demo registry saved", "path", cfg.Path(), "dirty", dirty)

	if err := writeEntries(out, cfg); err != nil {
		return err
	}
	switch {
	case !existed:
		fmt.Fprintf(out, "\nCreated %s\n", cfg.Path())
	case len(dirty) == 0:
		fmt.Fprintf(out, "\nNo changes to %s\n", cfg.Path())
	default:
		fmt.Fprintf(out, "\nSaved %s (changed: %s)\n", cfg.Path(), strings.Join(dirty, ", "))
	}
	return nil
}

// applyOverride sets one entry from a key=value argument.
func applyOverride(cfg *config.Config, arg string) error {
	key, raw, ok := strings.Cut(arg, "=")
	if !ok || key == "" {
		return fmt.Errorf("invalid override %q: expected key=value", arg)
	}

	v, found := cfg.Lookup(key)
	if !found {
		return cfgerrors.NewValidationError(cfgerrors.ErrCodeUnknownKey, "no such entry").
			WithPath(cfg.Path()).
			WithKey(key)
	}

	node := parseValue(raw)
	switch h := v.(type) {
	case config.TypedValue[string]:
		h.Set(raw)
	case config.TypedValue[bool]:
		assign(h, node)
	case config.TypedValue[int]:
		assign(h, node)
	case config.TypedValue[float64]:
		assign(h, node)
	case config.TypedValue[[]string]:
		assign(h, node)
	case config.TypedValue[[]int]:
		assign(h, node)
	default:
		return fmt.Errorf("entry %q (%s) cannot be set from the command line", key, v.SerializerName())
	}
	return nil
}

// assign deserializes node with the current value as fallback.
func assign[T any](h config.TypedValue[T], node jsontree.Node) {
	h.Set(h.Serializer().Deserialize(h.Get(), node))
}

func writeEntries(w io.Writer, cfg *config.Config) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "KEY\tTYPE\tVALUE\tDEFAULT")
	fmt.Fprintln(tw, "---\t----\t-----\t-------")
	for _, v := range cfg.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", v.Key(), v.SerializerName(), truncate(v.Node().Raw(), maxTableValue), v.IsDefault())
	}

	return tw.Flush()
}
