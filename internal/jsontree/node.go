// Package jsontree provides the in-memory JSON tree that configuration
// entries are serialized to and deserialized from.
//
// A Node is an immutable parsed JSON value backed by gjson. Nodes are built
// with the constructors in this package (Null, String, Int, Array, ...) or
// parsed from raw document bytes, and objects are assembled property by
// property with an ObjectBuilder backed by sjson.
package jsontree

import (
	"errors"
	"math"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ErrInvalidJSON is returned when raw bytes are not a valid JSON document.
var ErrInvalidJSON = errors.New("invalid JSON document")

// Kind is the JSON kind of a node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the string representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Node is one parsed JSON value. The zero Node is JSON null.
type Node struct {
	res gjson.Result
}

// Member is a single property of a JSON object.
type Member struct {
	Key   string
	Value Node
}

// Null returns the JSON null node.
func Null() Node {
	return Node{}
}

// String returns a JSON string node.
func String(s string) Node {
	return encode(s)
}

// Bool returns a JSON boolean node.
func Bool(b bool) Node {
	return encode(b)
}

// Int returns a JSON number node holding an int.
func Int(i int) Node {
	return encode(i)
}

// Int64 returns a JSON number node holding an int64.
func Int64(i int64) Node {
	return encode(i)
}

// Float32 returns a JSON number node. NaN and infinities have no JSON
// representation and yield the null node.
func Float32(f float32) Node {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return Null()
	}
	return encode(f)
}

// Float64 returns a JSON number node. NaN and infinities have no JSON
// representation and yield the null node.
func Float64(f float64) Node {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return encode(f)
}

// Array returns a JSON array holding the given elements in order.
func Array(elems ...Node) Node {
	raw := "[]"
	for _, e := range elems {
		next, err := sjson.SetRaw(raw, "-1", e.Raw())
		if err != nil {
			return Null()
		}
		raw = next
	}
	return Node{res: gjson.Parse(raw)}
}

// Parse parses a complete JSON document.
func Parse(raw []byte) (Node, error) {
	if !gjson.ValidBytes(raw) {
		return Null(), ErrInvalidJSON
	}
	return Node{res: gjson.ParseBytes(raw)}, nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests
// and literals.
func MustParse(raw string) Node {
	n, err := Parse([]byte(raw))
	if err != nil {
		panic(err)
	}
	return n
}

func encode(v any) Node {
	doc, err := sjson.Set(`{}`, "v", v)
	if err != nil {
		return Null()
	}
	return Node{res: gjson.Get(doc, "v")}
}

// Kind reports the JSON kind of the node.
func (n Node) Kind() Kind {
	switch n.res.Type {
	case gjson.True, gjson.False:
		return KindBool
	case gjson.Number:
		return KindNumber
	case gjson.String:
		return KindString
	case gjson.JSON:
		if n.res.IsArray() {
			return KindArray
		}
		return KindObject
	default:
		return KindNull
	}
}

func (n Node) IsNull() bool   { return n.Kind() == KindNull }
func (n Node) IsBool() bool   { return n.Kind() == KindBool }
func (n Node) IsNumber() bool { return n.Kind() == KindNumber }
func (n Node) IsString() bool { return n.Kind() == KindString }
func (n Node) IsArray() bool  { return n.Kind() == KindArray }
func (n Node) IsObject() bool { return n.Kind() == KindObject }

// Str returns the string content of a string node, or the raw text for
// any other kind.
func (n Node) Str() string {
	return n.res.String()
}

// Bool returns the boolean value of the node.
func (n Node) Bool() bool {
	return n.res.Bool()
}

// Int returns the node as an int64. Integers outside the float64 mantissa
// are parsed from the raw text so no precision is lost.
func (n Node) Int() int64 {
	return n.res.Int()
}

// Float returns the node as a float64.
func (n Node) Float() float64 {
	return n.res.Float()
}

// Elements returns the elements of an array node, or nil for any other kind.
func (n Node) Elements() []Node {
	if !n.IsArray() {
		return nil
	}
	arr := n.res.Array()
	out := make([]Node, len(arr))
	for i, r := range arr {
		out[i] = Node{res: r}
	}
	return out
}

// Members returns the properties of an object node in document order, or
// nil for any other kind.
func (n Node) Members() []Member {
	if !n.IsObject() {
		return nil
	}
	var out []Member
	n.res.ForEach(func(key, value gjson.Result) bool {
		out = append(out, Member{Key: key.String(), Value: Node{res: value}})
		return true
	})
	return out
}

// Lookup returns the first property of an object node named key. Keys are
// matched literally; path syntax is not interpreted.
func (n Node) Lookup(key string) (Node, bool) {
	if !n.IsObject() {
		return Null(), false
	}
	var (
		found Node
		ok    bool
	)
	n.res.ForEach(func(k, value gjson.Result) bool {
		if k.String() == key {
			found, ok = Node{res: value}, true
			return false
		}
		return true
	})
	return found, ok
}

// Raw returns the compact JSON text of the node.
func (n Node) Raw() string {
	if n.res.Raw == "" {
		return "null"
	}
	return n.res.Raw
}

// String implements fmt.Stringer.
func (n Node) String() string {
	return n.Raw()
}

// Interface returns the node as plain Go values (map[string]any, []any,
// string, float64, bool or nil).
func (n Node) Interface() any {
	return n.res.Value()
}

// Equal reports whether two nodes have the same kind and the same compact
// text.
func (n Node) Equal(other Node) bool {
	if n.Kind() != other.Kind() {
		return false
	}
	return string(pretty.Ugly([]byte(n.Raw()))) == string(pretty.Ugly([]byte(other.Raw())))
}

// Pretty returns the node as indented JSON with a trailing newline.
func Pretty(n Node) []byte {
	return pretty.Pretty([]byte(n.Raw()))
}

// EscapeKey escapes a property name for use as a gjson/sjson path.
func EscapeKey(key string) string {
	return gjson.Escape(key)
}
