package jsontree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	testCases := []struct {
		kind     Kind
		expected string
	}{
		{KindNull, "null"},
		{KindBool, "boolean"},
		{KindNumber, "number"},
		{KindString, "string"},
		{KindArray, "array"},
		{KindObject, "object"},
		{Kind(99), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.kind.String())
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		node Node
		kind Kind
		raw  string
	}{
		{"null", Null(), KindNull, "null"},
		{"zero node", Node{}, KindNull, "null"},
		{"string", String("hello"), KindString, `"hello"`},
		{"string with quotes", String(`a "b"`), KindString, `"a \"b\""`},
		{"true", Bool(true), KindBool, "true"},
		{"false", Bool(false), KindBool, "false"},
		{"int", Int(69), KindNumber, "69"},
		{"negative int64", Int64(-9000000000), KindNumber, "-9000000000"},
		{"float64", Float64(1.5), KindNumber, "1.5"},
		{"nan", Float64(math.NaN()), KindNull, "null"},
		{"inf", Float32(float32(math.Inf(1))), KindNull, "null"},
		{"empty array", Array(), KindArray, "[]"},
		{"array", Array(Int(1), String("a")), KindArray, `[1,"a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.node.Kind())
			assert.Equal(t, tt.raw, tt.node.Raw())
		})
	}
}

func TestInt64Precision(t *testing.T) {
	n := Int64(math.MaxInt64)
	assert.Equal(t, int64(math.MaxInt64), n.Int())

	n = Int64(math.MinInt64)
	assert.Equal(t, int64(math.MinInt64), n.Int())
}

func TestParse(t *testing.T) {
	n, err := Parse([]byte(`{"funny": 69, "list": ["a", "b"], "off": false}`))
	require.NoError(t, err)
	assert.True(t, n.IsObject())

	members := n.Members()
	require.Len(t, members, 3)
	assert.Equal(t, "funny", members[0].Key)
	assert.Equal(t, "list", members[1].Key)
	assert.Equal(t, "off", members[2].Key)

	funny, ok := n.Lookup("funny")
	require.True(t, ok)
	assert.Equal(t, int64(69), funny.Int())

	list, ok := n.Lookup("list")
	require.True(t, ok)
	elems := list.Elements()
	require.Len(t, elems, 2)
	assert.Equal(t, "a", elems[0].Str())

	_, ok = n.Lookup("missing")
	assert.False(t, ok)

	_, err = Parse([]byte(`{"broken":`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestLookupIsLiteral(t *testing.T) {
	n := MustParse(`{"a.b": 1, "a": {"b": 2}}`)

	v, ok := n.Lookup("a.b")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int())
}

func TestNonContainerAccessors(t *testing.T) {
	assert.Nil(t, String("x").Elements())
	assert.Nil(t, Array(Int(1)).Members())

	_, ok := Int(1).Lookup("x")
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	a := MustParse(`{ "a" : [1, 2] }`)
	b := MustParse(`{"a":[1,2]}`)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Null()))
	assert.False(t, String("1").Equal(Int(1)))
}

func TestObjectBuilder(t *testing.T) {
	obj, err := NewObject().
		Set("hello", String("world")).
		Set("funny", Int(420)).
		Set("dotted.key", Bool(true)).
		Set("funny", Int(69)).
		Build()
	require.NoError(t, err)

	members := obj.Members()
	require.Len(t, members, 3)

	funny, ok := obj.Lookup("funny")
	require.True(t, ok)
	assert.Equal(t, int64(69), funny.Int())

	dotted, ok := obj.Lookup("dotted.key")
	require.True(t, ok)
	assert.True(t, dotted.Bool())
}

func TestSetAndDeleteMember(t *testing.T) {
	doc := []byte(`{"keep": 1, "drop": 2}`)

	doc, err := SetMember(doc, "added", Array(String("x")))
	require.NoError(t, err)

	doc, err = DeleteMember(doc, "drop")
	require.NoError(t, err)

	n, err := Parse(doc)
	require.NoError(t, err)

	_, ok := n.Lookup("keep")
	assert.True(t, ok)
	_, ok = n.Lookup("drop")
	assert.False(t, ok)
	added, ok := n.Lookup("added")
	require.True(t, ok)
	assert.Equal(t, `["x"]`, added.Raw())

	empty, err := SetMember(nil, "k", Int(1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":1}`, string(empty))
}

func TestPretty(t *testing.T) {
	out := Pretty(MustParse(`{"a":1}`))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(out))
	assert.Equal(t, string(out), string(Format([]byte(`{"a":1}`))))
}
