package config

import (
	"math"

	"github.com/conneroisu/jsonconf/internal/serializer"
)

type scalarSpec[T comparable] struct {
	initial  T
	min, max T
	hasRange bool
}

// Option customizes a scalar definition.
type Option[T comparable] func(*scalarSpec[T])

// WithInitial sets the value an entry holds before any document is
// loaded. Without it the entry starts at its default.
func WithInitial[T comparable](v T) Option[T] {
	return func(s *scalarSpec[T]) {
		s.initial = v
	}
}

// WithRange declares the bounds of a numeric entry. Without it the bounds
// are the full range of the type.
func WithRange[N Number](min, max N) Option[N] {
	return func(s *scalarSpec[N]) {
		s.min, s.max, s.hasRange = min, max, true
	}
}

func resolveScalar[T comparable](def T, opts []Option[T]) scalarSpec[T] {
	s := scalarSpec[T]{initial: def}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

type listSpec[T comparable] struct {
	initial  []T
	possible []T
}

// ListOption customizes a list definition.
type ListOption[T comparable] func(*listSpec[T])

// WithElements sets the elements a list holds before any document is
// loaded. Without it the list starts with its defaults.
func WithElements[T comparable](values ...T) ListOption[T] {
	return func(s *listSpec[T]) {
		s.initial = values
	}
}

// WithPossible restricts the elements a list may hold.
func WithPossible[T comparable](values ...T) ListOption[T] {
	return func(s *listSpec[T]) {
		s.possible = values
	}
}

// DefineScalar defines an entry using a custom serializer.
func DefineScalar[T comparable](b *Builder, key string, def T, s serializer.Serializer[T], opts ...Option[T]) *Scalar[T] {
	spec := resolveScalar(def, opts)
	return Define(b, key, func(c *Config) *Scalar[T] {
		return NewScalar(c, key, spec.initial, def, s)
	})
}

// DefineNumeric defines a bounded numeric entry. lo and hi are used unless
// WithRange overrides them.
func DefineNumeric[N Number](b *Builder, key string, def, lo, hi N, s serializer.Serializer[N], opts ...Option[N]) *Numeric[N] {
	spec := resolveScalar(def, opts)
	if spec.hasRange {
		lo, hi = spec.min, spec.max
	}
	return Define(b, key, func(c *Config) *Numeric[N] {
		return NewNumeric(c, key, spec.initial, def, lo, hi, s)
	})
}

// DefineList defines a list entry using a custom serializer.
func DefineList[T comparable](b *Builder, key string, def []T, s serializer.Serializer[[]T], opts ...ListOption[T]) *List[T] {
	spec := listSpec[T]{initial: def}
	for _, opt := range opts {
		opt(&spec)
	}
	return Define(b, key, func(c *Config) *List[T] {
		return NewList(c, key, spec.initial, def, spec.possible, s)
	})
}

func (b *Builder) DefineString(key, def string, opts ...Option[string]) *Scalar[string] {
	return DefineScalar(b, key, def, serializer.String, opts...)
}

func (b *Builder) DefineBool(key string, def bool, opts ...Option[bool]) *Bool {
	return DefineScalar(b, key, def, serializer.Bool, opts...)
}

func (b *Builder) DefineInt(key string, def int, opts ...Option[int]) *Numeric[int] {
	return DefineNumeric(b, key, def, math.MinInt, math.MaxInt, serializer.Int, opts...)
}

func (b *Builder) DefineInt64(key string, def int64, opts ...Option[int64]) *Numeric[int64] {
	return DefineNumeric(b, key, def, math.MinInt64, math.MaxInt64, serializer.Int64, opts...)
}

func (b *Builder) DefineFloat32(key string, def float32, opts ...Option[float32]) *Numeric[float32] {
	return DefineNumeric(b, key, def, -math.MaxFloat32, math.MaxFloat32, serializer.Float32, opts...)
}

func (b *Builder) DefineFloat64(key string, def float64, opts ...Option[float64]) *Numeric[float64] {
	return DefineNumeric(b, key, def, -math.MaxFloat64, math.MaxFloat64, serializer.Float64, opts...)
}

func (b *Builder) DefineStringList(key string, def []string, opts ...ListOption[string]) *List[string] {
	return DefineList(b, key, def, serializer.StringList, opts...)
}

func (b *Builder) DefineIntList(key string, def []int, opts ...ListOption[int]) *List[int] {
	return DefineList(b, key, def, serializer.IntList, opts...)
}

func (b *Builder) DefineInt64List(key string, def []int64, opts ...ListOption[int64]) *List[int64] {
	return DefineList(b, key, def, serializer.Int64List, opts...)
}

func (b *Builder) DefineFloat32List(key string, def []float32, opts ...ListOption[float32]) *List[float32] {
	return DefineList(b, key, def, serializer.Float32List, opts...)
}

func (b *Builder) DefineFloat64List(key string, def []float64, opts ...ListOption[float64]) *List[float64] {
	return DefineList(b, key, def, serializer.Float64List, opts...)
}

func (b *Builder) DefineBoolList(key string, def []bool, opts ...ListOption[bool]) *List[bool] {
	return DefineList(b, key, def, serializer.BoolList, opts...)
}
