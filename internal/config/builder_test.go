package config

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgerrors "github.com/conneroisu/jsonconf/internal/errors"
	"github.com/conneroisu/jsonconf/internal/jsontree"
	"github.com/conneroisu/jsonconf/internal/serializer"
)

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder("settings.json")
	assert.Equal(t, "settings.json", b.Path())

	hello := b.DefineString("hello", "world")
	cfg, err := b.Build()
	require.NoError(t, err)

	assert.Same(t, cfg, hello.Config())
	v, ok := cfg.Lookup("hello")
	require.True(t, ok)
	assert.Same(t, hello, v)
}

func TestBuilder_DefinitionErrors(t *testing.T) {
	tests := []struct {
		name         string
		define       func(b *Builder)
		expectedErr  error
		expectedCode string
		expectedLen  int
	}{
		{
			name: "duplicate key",
			define: func(b *Builder) {
				b.DefineInt("funny", 1)
				b.DefineString("funny", "x")
			},
			expectedErr:  ErrDuplicateKey,
			expectedCode: cfgerrors.ErrCodeDuplicateKey,
			expectedLen:  1,
		},
		{
			name: "empty key",
			define: func(b *Builder) {
				b.DefineBool("", true)
			},
			expectedErr:  ErrEmptyKey,
			expectedCode: cfgerrors.ErrCodeEmptyKey,
		},
		{
			name: "nil value",
			define: func(b *Builder) {
				Define(b, "nothing", func(*Config) *Scalar[int] { return nil })
			},
			expectedErr:  ErrNilValue,
			expectedCode: cfgerrors.ErrCodeNilValue,
		},
		{
			name: "key mismatch",
			define: func(b *Builder) {
				Define(b, "outer", func(c *Config) *Scalar[string] {
					return NewScalar(c, "inner", "", "", serializer.String)
				})
			},
			expectedErr:  ErrKeyMismatch,
			expectedCode: cfgerrors.ErrCodeKeyMismatch,
		},
		{
			name: "foreign config",
			define: func(b *Builder) {
				other := NewBuilder("other.json")
				Define(b, "stray", func(*Config) *Scalar[string] {
					return NewScalar(other.config, "stray", "", "", serializer.String)
				})
			},
			expectedErr:  ErrKeyMismatch,
			expectedCode: cfgerrors.ErrCodeKeyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder("settings.json")
			tt.define(b)

			cfg, err := b.Build()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, tt.expectedErr))
			assert.True(t, cfgerrors.HasCode(err, tt.expectedCode))
			assert.True(t, cfgerrors.IsConfigError(err))
			assert.True(t, strings.HasPrefix(err.Error(), "config settings.json: "))
		})
	}
}

func TestBuilder_CollectsEveryError(t *testing.T) {
	b := NewBuilder("settings.json")
	b.DefineInt("a", 1)
	b.DefineInt("a", 2)
	b.DefineString("", "x")

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.Contains(t, err.Error(), "key:a")
}

func TestBuilder_Sealed(t *testing.T) {
	b := NewBuilder("settings.json")
	b.DefineInt("a", 1)
	_, err := b.Build()
	require.NoError(t, err)

	b.DefineInt("b", 2)

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderSealed)
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	b := NewBuilder("settings.json")
	b.DefineInt("", 1)

	assert.Panics(t, func() { b.MustBuild() })
}

func TestBuilder_NumericDefaults(t *testing.T) {
	b := NewBuilder("settings.json")
	i := b.DefineInt("i", 1)
	i64 := b.DefineInt64("i64", 2)
	f32 := b.DefineFloat32("f32", 1.5)
	f64 := b.DefineFloat64("f64", 2.5, WithRange(0.0, 10.0))
	b.MustBuild()

	assert.Equal(t, math.MinInt, i.Min())
	assert.Equal(t, math.MaxInt, i.Max())
	assert.Equal(t, int64(math.MinInt64), i64.Min())
	assert.Equal(t, int64(math.MaxInt64), i64.Max())
	assert.Equal(t, float32(-math.MaxFloat32), f32.Min())
	assert.Equal(t, float32(math.MaxFloat32), f32.Max())
	assert.Equal(t, 0.0, f64.Min())
	assert.Equal(t, 10.0, f64.Max())
}

func TestScalar(t *testing.T) {
	b := NewBuilder("settings.json")
	hello := b.DefineString("hello", "world", WithInitial("there"))
	flag := b.DefineBool("flag", true)
	cfg := b.MustBuild()

	assert.Equal(t, "hello", hello.Key())
	assert.Equal(t, "there", hello.Get())
	assert.Equal(t, "world", hello.Default())
	assert.False(t, hello.IsDefault())
	assert.True(t, hello.IsDefaultValue("world"))
	assert.Equal(t, "string", hello.SerializerName())
	assert.Equal(t, "ConfigValue[hello=there]", hello.String())
	assert.Equal(t, `"there"`, hello.Node().Raw())

	assert.True(t, flag.Get())
	assert.Equal(t, "bool", flag.Serializer().Name())

	cfg.EnableDirtyTracking()
	flag.Set(false)
	assert.True(t, flag.IsDirty())
	assert.Equal(t, []string{"flag"}, cfg.DirtyKeys())
}

func TestNumeric(t *testing.T) {
	b := NewBuilder("settings.json")
	level := b.DefineInt("level", 5, WithRange(0, 10))
	ratio := b.DefineFloat32("ratio", 0.25)
	b.MustBuild()

	t.Run("bounds are descriptive", func(t *testing.T) {
		level.Set(42)
		assert.Equal(t, 42, level.Get())
		assert.False(t, level.InBounds(42))
		assert.True(t, level.InBounds(0))
		assert.True(t, level.InBounds(10))
	})

	t.Run("conversions", func(t *testing.T) {
		level.Set(3)
		assert.Equal(t, 3, level.AsInt())
		assert.Equal(t, int64(3), level.AsInt64())
		assert.Equal(t, float32(3), level.AsFloat32())
		assert.Equal(t, 3.0, level.AsFloat64())
		assert.True(t, level.AsBool())

		level.Set(0)
		assert.False(t, level.AsBool())

		ratio.Set(2.75)
		assert.Equal(t, 2, ratio.AsInt())
		assert.Equal(t, 2.75, ratio.AsFloat64())
	})
}

func TestNumeric_LoadIgnoresBounds(t *testing.T) {
	b := NewBuilder("settings.json")
	level := b.DefineInt("level", 5, WithRange(0, 10))
	cfg := b.MustBuild()

	cfg.Apply(jsontree.MustParse(`{"level": 500}`))

	assert.Equal(t, 500, level.Get())
	assert.False(t, cfg.Validate().Valid)
}

type mode string

func TestDefineScalar_CustomSerializer(t *testing.T) {
	modes := serializer.New("mode",
		func(def mode, n jsontree.Node) mode {
			switch m := mode(n.Str()); m {
			case "fast", "safe":
				return m
			}
			return def
		},
		func(m mode) jsontree.Node { return jsontree.String(string(m)) },
	)

	b := NewBuilder("settings.json")
	m := DefineScalar(b, "mode", mode("safe"), modes)
	cfg := b.MustBuild()

	cfg.Apply(jsontree.MustParse(`{"mode": "fast"}`))
	assert.Equal(t, mode("fast"), m.Get())

	cfg.Apply(jsontree.MustParse(`{"mode": "reckless"}`))
	assert.Equal(t, mode("safe"), m.Get())
	assert.Equal(t, "mode", m.SerializerName())
}
