package config

import (
	"fmt"

	"github.com/conneroisu/jsonconf/internal/jsontree"
	"github.com/conneroisu/jsonconf/internal/serializer"
)

// Value is one named configuration entry bound to a Config.
//
// The set of implementations is closed: Scalar, Numeric and List. The
// unexported methods are driven by the Config when a document is applied
// to or projected from the registry.
type Value interface {
	Key() string
	Config() *Config
	// IsDirty reports whether the entry changed since it was last saved.
	// It is always false while the owning Config is not tracking dirtiness.
	IsDirty() bool
	IsDefault() bool
	SerializerName() string
	// Node serializes the current value.
	Node() jsontree.Node
	String() string

	load(node jsontree.Node)
	markClean()
}

// TypedValue is a Value with typed access to its contents.
type TypedValue[T any] interface {
	Value
	Get() T
	Set(value T)
	Default() T
	IsDefaultValue(value T) bool
	Serializer() serializer.Serializer[T]
}

// Number is the set of types a Numeric entry may hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Scalar holds a single comparable value with a default.
type Scalar[T comparable] struct {
	cfg        *Config
	key        string
	value      T
	defaultVal T
	dirty      bool
	serializer serializer.Serializer[T]
}

// Bool is a boolean entry.
type Bool = Scalar[bool]

// NewScalar creates an entry bound to cfg. It does not register it; use
// Define for that.
func NewScalar[T comparable](cfg *Config, key string, initial, def T, s serializer.Serializer[T]) *Scalar[T] {
	return &Scalar[T]{
		cfg:        cfg,
		key:        key,
		value:      initial,
		defaultVal: def,
		serializer: s,
	}
}

func (s *Scalar[T]) Key() string {
	return s.key
}

func (s *Scalar[T]) Config() *Config {
	return s.cfg
}

// Get returns the current value.
func (s *Scalar[T]) Get() T {
	return s.value
}

// Set replaces the current value. Setting an equal value is a no-op.
func (s *Scalar[T]) Set(value T) {
	if s.value == value {
		return
	}
	s.value = value
	s.touch()
}

func (s *Scalar[T]) Default() T {
	return s.defaultVal
}

func (s *Scalar[T]) IsDefault() bool {
	return s.IsDefaultValue(s.value)
}

func (s *Scalar[T]) IsDefaultValue(value T) bool {
	return value == s.defaultVal
}

func (s *Scalar[T]) IsDirty() bool {
	return s.cfg.canBeDirty && s.dirty
}

func (s *Scalar[T]) Serializer() serializer.Serializer[T] {
	return s.serializer
}

func (s *Scalar[T]) SerializerName() string {
	return s.serializer.Name()
}

func (s *Scalar[T]) Node() jsontree.Node {
	return s.serializer.Serialize(s.value)
}

func (s *Scalar[T]) String() string {
	return fmt.Sprintf("ConfigValue[%s=%v]", s.key, s.value)
}

// touch records a mutation. Mutations made before the Config starts
// tracking dirtiness are establishing values, not edits.
func (s *Scalar[T]) touch() {
	if s.cfg.canBeDirty {
		s.dirty = true
	}
}

func (s *Scalar[T]) load(node jsontree.Node) {
	s.value = s.serializer.Deserialize(s.defaultVal, node)
	s.dirty = false
}

func (s *Scalar[T]) markClean() {
	s.dirty = false
}

// Numeric is a Scalar with declared bounds.
//
// The bounds are descriptive: neither Set nor loading a document clamps or
// rejects values outside them. Use InBounds or Config.Validate to check.
type Numeric[N Number] struct {
	Scalar[N]
	minVal N
	maxVal N
}

// NewNumeric creates a numeric entry bound to cfg.
func NewNumeric[N Number](cfg *Config, key string, initial, def, min, max N, s serializer.Serializer[N]) *Numeric[N] {
	return &Numeric[N]{
		Scalar: Scalar[N]{
			cfg:        cfg,
			key:        key,
			value:      initial,
			defaultVal: def,
			serializer: s,
		},
		minVal: min,
		maxVal: max,
	}
}

func (n *Numeric[N]) Min() N {
	return n.minVal
}

func (n *Numeric[N]) Max() N {
	return n.maxVal
}

// InBounds reports whether value lies within [Min, Max].
func (n *Numeric[N]) InBounds(value N) bool {
	return value >= n.minVal && value <= n.maxVal
}

func (n *Numeric[N]) AsInt() int {
	return int(n.value)
}

func (n *Numeric[N]) AsInt64() int64 {
	return int64(n.value)
}

func (n *Numeric[N]) AsFloat32() float32 {
	return float32(n.value)
}

func (n *Numeric[N]) AsFloat64() float64 {
	return float64(n.value)
}

// AsBool reports whether the value is non-zero.
func (n *Numeric[N]) AsBool() bool {
	return n.value != 0
}

type boundsReport struct {
	current, def, min, max any
	currentOK, defaultOK   bool
}

func (n *Numeric[N]) boundsReport() boundsReport {
	return boundsReport{
		current:   n.value,
		def:       n.defaultVal,
		min:       n.minVal,
		max:       n.maxVal,
		currentOK: n.InBounds(n.value),
		defaultOK: n.InBounds(n.defaultVal),
	}
}
