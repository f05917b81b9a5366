// Package serializer provides the named, stateless codecs that convert
// typed configuration values to and from JSON tree nodes.
//
// Every serializer is total: Deserialize never fails and falls back to the
// supplied default whenever the node does not have the expected JSON kind,
// and Serialize always produces a node. Serializers carry no state and may
// be shared by any number of entries of the same type.
package serializer

import (
	"github.com/conneroisu/jsonconf/internal/jsontree"
)

// Serializer converts values of type T to and from JSON tree nodes.
type Serializer[T any] interface {
	// Name identifies the serializer, e.g. "int" or "list<string>".
	Name() string
	// Deserialize returns the value held by node, or def when node has
	// the wrong shape.
	Deserialize(def T, node jsontree.Node) T
	// Serialize projects value to a JSON tree node.
	Serialize(value T) jsontree.Node
}

// DeserializeFunc is the decoding half of a serializer.
type DeserializeFunc[T any] func(def T, node jsontree.Node) T

// SerializeFunc is the encoding half of a serializer.
type SerializeFunc[T any] func(value T) jsontree.Node

type funcSerializer[T any] struct {
	name        string
	deserialize DeserializeFunc[T]
	serialize   SerializeFunc[T]
}

// New builds a serializer from a pair of functions.
func New[T any](name string, de DeserializeFunc[T], se SerializeFunc[T]) Serializer[T] {
	return funcSerializer[T]{name: name, deserialize: de, serialize: se}
}

func (s funcSerializer[T]) Name() string {
	return s.name
}

func (s funcSerializer[T]) Deserialize(def T, node jsontree.Node) T {
	return s.deserialize(def, node)
}

func (s funcSerializer[T]) Serialize(value T) jsontree.Node {
	return s.serialize(value)
}

// SerializePtr serializes *value, or returns the JSON null node when value
// is nil.
func SerializePtr[T any](s Serializer[T], value *T) jsontree.Node {
	if value == nil {
		return jsontree.Null()
	}
	return s.Serialize(*value)
}

// Primitive builds a serializer for a JSON primitive. The node is handed to
// read only when it has the given kind; any other kind yields the default.
func Primitive[T any](name string, kind jsontree.Kind, read func(jsontree.Node) T, write SerializeFunc[T]) Serializer[T] {
	return New(name,
		func(def T, node jsontree.Node) T {
			if node.Kind() != kind {
				return def
			}
			return read(node)
		},
		write,
	)
}

// Built-in scalar serializers.
var (
	String = Primitive("string", jsontree.KindString,
		func(n jsontree.Node) string { return n.Str() },
		jsontree.String,
	)

	Int = Primitive("int", jsontree.KindNumber,
		func(n jsontree.Node) int { return int(n.Int()) },
		jsontree.Int,
	)

	Int64 = Primitive("int64", jsontree.KindNumber,
		func(n jsontree.Node) int64 { return n.Int() },
		jsontree.Int64,
	)

	Float32 = Primitive("float32", jsontree.KindNumber,
		func(n jsontree.Node) float32 { return float32(n.Float()) },
		jsontree.Float32,
	)

	Float64 = Primitive("float64", jsontree.KindNumber,
		func(n jsontree.Node) float64 { return n.Float() },
		jsontree.Float64,
	)

	Bool = Primitive("bool", jsontree.KindBool,
		func(n jsontree.Node) bool { return n.Bool() },
		jsontree.Bool,
	)
)
