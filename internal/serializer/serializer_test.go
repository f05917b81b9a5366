package serializer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/jsonconf/internal/jsontree"
)

func TestNames(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		expected string
	}{
		{"string", String.Name(), "string"},
		{"int", Int.Name(), "int"},
		{"int64", Int64.Name(), "int64"},
		{"float32", Float32.Name(), "float32"},
		{"float64", Float64.Name(), "float64"},
		{"bool", Bool.Name(), "bool"},
		{"string list", StringList.Name(), "list<string>"},
		{"bool list", BoolList.Name(), "list<bool>"},
		{"nested list", List(IntList).Name(), "list<list<int>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.actual)
		})
	}
}

func TestScalarRoundTrip(t *testing.T) {
	assert.Equal(t, "world", String.Deserialize("x", String.Serialize("world")))
	assert.Equal(t, "", String.Deserialize("x", String.Serialize("")))
	assert.Equal(t, 69, Int.Deserialize(420, Int.Serialize(69)))
	assert.Equal(t, math.MaxInt, Int.Deserialize(0, Int.Serialize(math.MaxInt)))
	assert.Equal(t, int64(math.MinInt64), Int64.Deserialize(0, Int64.Serialize(math.MinInt64)))
	assert.Equal(t, float32(0.1), Float32.Deserialize(0, Float32.Serialize(0.1)))
	assert.Equal(t, math.MaxFloat32, float64(Float32.Deserialize(0, Float32.Serialize(math.MaxFloat32))))
	assert.Equal(t, 1e300, Float64.Deserialize(0, Float64.Serialize(1e300)))
	assert.Equal(t, math.SmallestNonzeroFloat64, Float64.Deserialize(0, Float64.Serialize(math.SmallestNonzeroFloat64)))
	assert.True(t, Bool.Deserialize(false, Bool.Serialize(true)))
	assert.False(t, Bool.Deserialize(true, Bool.Serialize(false)))
}

func TestScalarKindMismatchReturnsDefault(t *testing.T) {
	tests := []struct {
		name string
		node jsontree.Node
	}{
		{"null", jsontree.Null()},
		{"string", jsontree.String("69")},
		{"bool", jsontree.Bool(true)},
		{"array", jsontree.Array(jsontree.Int(1))},
		{"object", jsontree.MustParse(`{"a":1}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 420, Int.Deserialize(420, tt.node))
			assert.Equal(t, int64(7), Int64.Deserialize(7, tt.node))
			assert.Equal(t, 2.5, Float64.Deserialize(2.5, tt.node))
		})
	}

	assert.Equal(t, "def", String.Deserialize("def", jsontree.Int(1)))
	assert.Equal(t, "def", String.Deserialize("def", jsontree.Bool(false)))
	assert.True(t, Bool.Deserialize(true, jsontree.String("false")))
	assert.True(t, Bool.Deserialize(true, jsontree.Int(0)))
}

func TestNumericAcceptsAnyNumber(t *testing.T) {
	assert.Equal(t, 2.0, Float64.Deserialize(0, jsontree.Int(2)))
	assert.Equal(t, 1, Int.Deserialize(0, jsontree.Float64(1.9)))
}

func TestSerializePtr(t *testing.T) {
	assert.True(t, SerializePtr[string](String, nil).IsNull())
	assert.True(t, SerializePtr[[]string](StringList, nil).IsNull())

	v := 5
	assert.Equal(t, "5", SerializePtr(Int, &v).Raw())
}

func TestListSerialize(t *testing.T) {
	node := StringList.Serialize([]string{"entry_a", "entry_b"})
	assert.Equal(t, `["entry_a","entry_b"]`, node.Raw())

	assert.True(t, StringList.Serialize(nil).IsNull())
	assert.True(t, StringList.Serialize([]string{}).IsNull())

	assert.Equal(t, `[true,false]`, BoolList.Serialize([]bool{true, false}).Raw())
}

func TestListRoundTrip(t *testing.T) {
	in := []int64{1, -2, math.MaxInt64}
	assert.Equal(t, in, Int64List.Deserialize(nil, Int64List.Serialize(in)))

	floats := []float64{0.5, 1e-9}
	assert.Equal(t, floats, Float64List.Deserialize(nil, Float64List.Serialize(floats)))
}

func TestEmptyListRoundTripYieldsDefault(t *testing.T) {
	def := []string{"fallback"}
	out := StringList.Deserialize(def, StringList.Serialize([]string{}))
	assert.Equal(t, def, out)
}

func TestListDeserialize(t *testing.T) {
	def := []int{9}

	t.Run("non array returns default wholesale", func(t *testing.T) {
		assert.Equal(t, def, IntList.Deserialize(def, jsontree.Int(1)))
		assert.Equal(t, def, IntList.Deserialize(def, jsontree.MustParse(`{"a":[1]}`)))
		assert.Equal(t, def, IntList.Deserialize(def, jsontree.Null()))
	})

	t.Run("empty array yields empty slice", func(t *testing.T) {
		out := IntList.Deserialize(def, jsontree.Array())
		require.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("malformed elements fall back to zero value", func(t *testing.T) {
		out := IntList.Deserialize(def, jsontree.MustParse(`[1, "two", 3, null]`))
		assert.Equal(t, []int{1, 0, 3, 0}, out)
	})

	t.Run("fresh slice", func(t *testing.T) {
		node := jsontree.MustParse(`[4, 5]`)
		a := IntList.Deserialize(def, node)
		b := IntList.Deserialize(def, node)
		a[0] = 100
		assert.Equal(t, []int{4, 5}, b)
	})
}

func TestCustomSerializer(t *testing.T) {
	type level int
	levels := New("level",
		func(def level, node jsontree.Node) level {
			if !node.IsString() {
				return def
			}
			switch node.Str() {
			case "low":
				return 1
			case "high":
				return 2
			}
			return def
		},
		func(v level) jsontree.Node {
			if v == 2 {
				return jsontree.String("high")
			}
			return jsontree.String("low")
		},
	)

	assert.Equal(t, level(2), levels.Deserialize(1, levels.Serialize(2)))
	assert.Equal(t, level(1), levels.Deserialize(1, jsontree.String("medium")))
	assert.Equal(t, "list<level>", List(levels).Name())
}
