package jsontree

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ObjectBuilder assembles a JSON object one property at a time.
type ObjectBuilder struct {
	raw []byte
	err error
}

// NewObject creates a builder for an empty object.
func NewObject() *ObjectBuilder {
	return &ObjectBuilder{raw: []byte("{}")}
}

// Set stores node under key, replacing an existing property of that name.
// The first failure is kept and reported by Build.
func (b *ObjectBuilder) Set(key string, node Node) *ObjectBuilder {
	if b.err != nil {
		return b
	}
	raw, err := sjson.SetRawBytes(b.raw, EscapeKey(key), []byte(node.Raw()))
	if err != nil {
		b.err = fmt.Errorf("setting property %q: %w", key, err)
		return b
	}
	b.raw = raw
	return b
}

// Build returns the assembled object.
func (b *ObjectBuilder) Build() (Node, error) {
	if b.err != nil {
		return Null(), b.err
	}
	return Node{res: gjson.ParseBytes(b.raw)}, nil
}

// SetMember writes node under key into an existing raw document and
// returns the updated document. Other properties are preserved.
func SetMember(doc []byte, key string, node Node) ([]byte, error) {
	if len(doc) == 0 {
		doc = []byte("{}")
	}
	out, err := sjson.SetRawBytes(doc, EscapeKey(key), []byte(node.Raw()))
	if err != nil {
		return nil, fmt.Errorf("setting property %q: %w", key, err)
	}
	return out, nil
}

// DeleteMember removes key from a raw document.
func DeleteMember(doc []byte, key string) ([]byte, error) {
	out, err := sjson.DeleteBytes(doc, EscapeKey(key))
	if err != nil {
		return nil, fmt.Errorf("deleting property %q: %w", key, err)
	}
	return out, nil
}

// Format returns raw as indented JSON with a trailing newline.
func Format(raw []byte) []byte {
	return pretty.Pretty(raw)
}
