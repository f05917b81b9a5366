package config

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/conneroisu/jsonconf/internal/jsontree"
	"github.com/conneroisu/jsonconf/internal/serializer"
)

var (
	// ErrInvalidElement is returned by SetAt for an element outside the
	// list's possible values.
	ErrInvalidElement = errors.New("element is not one of the possible values")

	// ErrIndexOutOfRange is returned by index based list operations.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// List is an ordered, mutable sequence entry whose elements are restricted
// to an allow-list of possible values. An empty allow-list accepts any
// element.
//
// Filtered mutators (Add, AddAll, InsertAll, RetainAll, Set) drop elements
// outside the allow-list and do nothing when nothing valid remains. SetAt,
// Insert, RemoveAt and Clear count as a change whenever they succeed, even
// if the contents end up identical.
type List[T comparable] struct {
	cfg        *Config
	key        string
	values     []T
	defaults   []T
	possible   []T
	allowed    map[T]struct{}
	dirty      bool
	serializer serializer.Serializer[[]T]
}

// NewList creates a list entry bound to cfg. Elements of initial and def
// that are not possible values are silently dropped.
func NewList[T comparable](cfg *Config, key string, initial, def, possible []T, s serializer.Serializer[[]T]) *List[T] {
	l := &List[T]{
		cfg:        cfg,
		key:        key,
		possible:   slices.Clone(possible),
		allowed:    make(map[T]struct{}, len(possible)),
		serializer: s,
	}
	for _, p := range possible {
		l.allowed[p] = struct{}{}
	}
	l.defaults = l.filter(def)
	l.values = l.filter(initial)
	return l
}

func (l *List[T]) Key() string {
	return l.key
}

func (l *List[T]) Config() *Config {
	return l.cfg
}

// Get returns a copy of the current elements.
func (l *List[T]) Get() []T {
	return slices.Clone(l.values)
}

// View returns a live read-only projection of the elements.
func (l *List[T]) View() ListView[T] {
	return ListView[T]{l: l}
}

// Set replaces the contents with the valid elements of values. Nothing
// happens if no element is valid or the contents would not change.
func (l *List[T]) Set(values []T) {
	valid := l.filter(values)
	if len(valid) == 0 || slices.Equal(l.values, valid) {
		return
	}
	l.values = valid
	l.touch()
}

// Default returns a copy of the default elements.
func (l *List[T]) Default() []T {
	return slices.Clone(l.defaults)
}

// Possible returns a copy of the allow-list.
func (l *List[T]) Possible() []T {
	return slices.Clone(l.possible)
}

func (l *List[T]) IsDefault() bool {
	return l.IsDefaultValue(l.values)
}

func (l *List[T]) IsDefaultValue(values []T) bool {
	return slices.Equal(l.defaults, values)
}

// IsValid reports whether value may be stored in the list.
func (l *List[T]) IsValid(value T) bool {
	if len(l.allowed) == 0 {
		return true
	}
	_, ok := l.allowed[value]
	return ok
}

func (l *List[T]) IsDirty() bool {
	return l.cfg.canBeDirty && l.dirty
}

func (l *List[T]) Serializer() serializer.Serializer[[]T] {
	return l.serializer
}

func (l *List[T]) SerializerName() string {
	return l.serializer.Name()
}

func (l *List[T]) Node() jsontree.Node {
	return l.serializer.Serialize(l.values)
}

func (l *List[T]) String() string {
	return fmt.Sprintf("ConfigValue[%s=%v]", l.key, l.values)
}

func (l *List[T]) Len() int {
	return len(l.values)
}

func (l *List[T]) IsEmpty() bool {
	return len(l.values) == 0
}

// At returns the element at index i.
func (l *List[T]) At(i int) (T, error) {
	if i < 0 || i >= len(l.values) {
		var zero T
		return zero, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l.values))
	}
	return l.values[i], nil
}

func (l *List[T]) Contains(value T) bool {
	return slices.Contains(l.values, value)
}

// ContainsAll reports whether every given value is present.
func (l *List[T]) ContainsAll(values ...T) bool {
	for _, v := range values {
		if !l.Contains(v) {
			return false
		}
	}
	return true
}

// Index returns the index of the first occurrence of value, or -1.
func (l *List[T]) Index(value T) int {
	return slices.Index(l.values, value)
}

// LastIndex returns the index of the last occurrence of value, or -1.
func (l *List[T]) LastIndex(value T) int {
	for i := len(l.values) - 1; i >= 0; i-- {
		if l.values[i] == value {
			return i
		}
	}
	return -1
}

// Add appends value. It returns false if value is not a possible value.
func (l *List[T]) Add(value T) bool {
	if !l.IsValid(value) {
		return false
	}
	l.values = append(l.values, value)
	l.touch()
	return true
}

// AddAll appends the valid values and reports whether any were appended.
func (l *List[T]) AddAll(values ...T) bool {
	valid := l.filter(values)
	if len(valid) == 0 {
		return false
	}
	l.values = append(l.values, valid...)
	l.touch()
	return true
}

// InsertAll inserts the valid values at index i and reports whether any
// were inserted.
func (l *List[T]) InsertAll(i int, values ...T) (bool, error) {
	valid := l.filter(values)
	if len(valid) == 0 {
		return false, nil
	}
	if err := l.checkInsertIndex(i); err != nil {
		return false, err
	}
	l.values = slices.Insert(l.values, i, valid...)
	l.touch()
	return true, nil
}

// Insert inserts value at index i. An invalid value is ignored without
// error.
func (l *List[T]) Insert(i int, value T) error {
	if !l.IsValid(value) {
		return nil
	}
	if err := l.checkInsertIndex(i); err != nil {
		return err
	}
	l.values = slices.Insert(l.values, i, value)
	l.touch()
	return nil
}

// SetAt replaces the element at index i and returns the previous one.
// Unlike the filtered mutators an invalid value is an error.
func (l *List[T]) SetAt(i int, value T) (T, error) {
	var zero T
	if !l.IsValid(value) {
		return zero, fmt.Errorf("%w: %v", ErrInvalidElement, value)
	}
	if i < 0 || i >= len(l.values) {
		return zero, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l.values))
	}
	prev := l.values[i]
	l.values[i] = value
	l.touch()
	return prev, nil
}

// Remove deletes the first occurrence of value.
func (l *List[T]) Remove(value T) bool {
	i := l.Index(value)
	if i < 0 {
		return false
	}
	l.values = slices.Delete(l.values, i, i+1)
	l.touch()
	return true
}

// RemoveAt deletes the element at index i and returns it.
func (l *List[T]) RemoveAt(i int) (T, error) {
	if i < 0 || i >= len(l.values) {
		var zero T
		return zero, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l.values))
	}
	prev := l.values[i]
	l.values = slices.Delete(l.values, i, i+1)
	l.touch()
	return prev, nil
}

// RemoveAll deletes every occurrence of each given value.
func (l *List[T]) RemoveAll(values ...T) bool {
	before := len(l.values)
	l.values = slices.DeleteFunc(l.values, func(v T) bool {
		return slices.Contains(values, v)
	})
	if len(l.values) == before {
		return false
	}
	l.touch()
	return true
}

// RetainAll keeps only elements that occur in values. Values that are not
// possible values are ignored; if none remain nothing happens.
func (l *List[T]) RetainAll(values ...T) bool {
	keep := l.filter(values)
	if len(keep) == 0 {
		return false
	}
	before := len(l.values)
	l.values = slices.DeleteFunc(l.values, func(v T) bool {
		return !slices.Contains(keep, v)
	})
	if len(l.values) == before {
		return false
	}
	l.touch()
	return true
}

// Clear removes every element.
func (l *List[T]) Clear() {
	clear(l.values)
	l.values = l.values[:0]
	l.touch()
}

func (l *List[T]) filter(values []T) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		if l.IsValid(v) {
			out = append(out, v)
		}
	}
	return out
}

func (l *List[T]) checkInsertIndex(i int) error {
	if i < 0 || i > len(l.values) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l.values))
	}
	return nil
}

func (l *List[T]) touch() {
	if l.cfg.canBeDirty {
		l.dirty = true
	}
}

// load replaces the contents with the document's elements. If the
// document only holds elements outside the allow-list the defaults are
// used instead.
func (l *List[T]) load(node jsontree.Node) {
	loaded := l.serializer.Deserialize(l.defaults, node)
	valid := l.filter(loaded)
	if len(valid) == 0 && len(loaded) > 0 {
		valid = slices.Clone(l.defaults)
	}
	l.values = valid
	l.dirty = false
}

func (l *List[T]) hasDefaults() bool {
	return len(l.defaults) > 0
}

func (l *List[T]) markClean() {
	l.dirty = false
}

// ListView is a read-only projection of a List. It reflects later changes
// made through the List.
type ListView[T comparable] struct {
	l *List[T]
}

func (v ListView[T]) Len() int {
	return len(v.l.values)
}

// At returns the element at index i. It panics if i is out of range.
func (v ListView[T]) At(i int) T {
	return v.l.values[i]
}

func (v ListView[T]) Contains(value T) bool {
	return v.l.Contains(value)
}

func (v ListView[T]) Index(value T) int {
	return v.l.Index(value)
}

// All iterates over index/element pairs.
func (v ListView[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range v.l.values {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Values iterates over the elements.
func (v ListView[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range v.l.values {
			if !yield(e) {
				return
			}
		}
	}
}

// Slice returns a copy of the elements.
func (v ListView[T]) Slice() []T {
	return slices.Clone(v.l.values)
}
