package serializer

import (
	"github.com/conneroisu/jsonconf/internal/jsontree"
)

// List composes a serializer for []T out of an element serializer.
//
// A node that is not a JSON array deserializes to the default as a whole.
// Array elements are decoded independently with the zero value of T as
// their fallback. An empty slice serializes to JSON null rather than an
// empty array, so an emptied list reloads as the entry's default.
func List[T any](elem Serializer[T]) Serializer[[]T] {
	return New("list<"+elem.Name()+">",
		func(def []T, node jsontree.Node) []T {
			if !node.IsArray() {
				return def
			}
			var zero T
			elems := node.Elements()
			out := make([]T, 0, len(elems))
			for _, e := range elems {
				out = append(out, elem.Deserialize(zero, e))
			}
			return out
		},
		func(values []T) jsontree.Node {
			if len(values) == 0 {
				return jsontree.Null()
			}
			nodes := make([]jsontree.Node, len(values))
			for i, v := range values {
				nodes[i] = elem.Serialize(v)
			}
			return jsontree.Array(nodes...)
		},
	)
}

// Built-in list serializers.
var (
	StringList  = List(String)
	IntList     = List(Int)
	Int64List   = List(Int64)
	Float32List = List(Float32)
	Float64List = List(Float64)
	BoolList    = List(Bool)
)
