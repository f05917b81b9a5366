package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/jsonconf/internal/jsontree"
)

const maxTableValue = 60

func writeDocument(w io.Writer, doc jsontree.Node, format string) error {
	switch strings.ToLower(format) {
	case "json":
		_, err := w.Write(jsontree.Pretty(doc))
		return err
	case "yaml":
		return outputYAML(w, doc)
	case "table", "":
		return outputTable(w, doc)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func outputTable(w io.Writer, doc jsontree.Node) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "KEY\tKIND\tVALUE")
	fmt.Fprintln(tw, strings.Repeat("-", 3)+"\t"+strings.Repeat("-", 4)+"\t"+strings.Repeat("-", 5))

	members := doc.Members()
	for _, m := range members {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Key, m.Value.Kind(), truncate(m.Value.Raw(), maxTableValue))
	}

	fmt.Fprintf(tw, "\nTotal: %d properties\n", len(members))

	return tw.Flush()
}

// outputYAML keeps the document order of the top-level properties.
func outputYAML(w io.Writer, doc jsontree.Node) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range doc.Members() {
		var value yaml.Node
		if err := value.Encode(m.Value.Interface()); err != nil {
			return fmt.Errorf("encoding %q: %w", m.Key, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key},
			&value,
		)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return err
	}
	return encoder.Close()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
