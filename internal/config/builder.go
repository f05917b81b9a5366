package config

import (
	"errors"
	"fmt"
	"reflect"

	cfgerrors "github.com/conneroisu/jsonconf/internal/errors"
)

// Definition errors reported by Builder.Build. Compare with errors.Is.
var (
	ErrDuplicateKey  = cfgerrors.NewConfigError(cfgerrors.ErrCodeDuplicateKey, "key already defined")
	ErrEmptyKey      = cfgerrors.NewConfigError(cfgerrors.ErrCodeEmptyKey, "key must not be empty")
	ErrNilValue      = cfgerrors.NewConfigError(cfgerrors.ErrCodeNilValue, "recipe returned no value")
	ErrBuilderSealed = cfgerrors.NewConfigError(cfgerrors.ErrCodeBuilderSealed, "builder already built")
	ErrKeyMismatch   = cfgerrors.NewConfigError(cfgerrors.ErrCodeKeyMismatch, "value is not bound to its key and config")
)

// Builder collects entry definitions for one Config.
//
// The Config is created up front, so each recipe passed to Define runs
// immediately and the handle it returns is the very entry stored in the
// Config. Definition problems are collected and reported by Build.
//
// Usage:
//
//	b := config.NewBuilder("settings.json")
//	hello := b.DefineString("hello", "world")
//	funny := b.DefineInt("funny", 420, config.WithRange(0, 1000))
//	cfg, err := b.Build()
type Builder struct {
	config *Config
	errs   []error
	built  bool
}

// NewBuilder creates a builder for a Config persisted at path.
func NewBuilder(path string) *Builder {
	return &Builder{config: newConfig(path)}
}

// Path returns the location the Config will be persisted at.
func (b *Builder) Path() string {
	return b.config.path
}

// Define runs recipe against the Config under construction and registers
// the resulting entry under key. A rejected definition still returns the
// entry, unregistered, and makes Build fail.
func Define[V Value](b *Builder, key string, recipe func(*Config) V) V {
	v := recipe(b.config)

	switch {
	case b.built:
		b.fail(ErrBuilderSealed, key)
	case key == "":
		b.fail(ErrEmptyKey, key)
	case isNil(v):
		b.fail(ErrNilValue, key)
	case v.Key() != key || v.Config() != b.config:
		b.fail(ErrKeyMismatch, key)
	default:
		if _, exists := b.config.entries[key]; exists {
			b.fail(ErrDuplicateKey, key)
			break
		}
		b.config.register(key, v)
	}

	return v
}

// Build returns the Config. It fails if any definition was rejected.
func (b *Builder) Build() (*Config, error) {
	b.built = true
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("config %s: %w", b.config.path, errors.Join(b.errs...))
	}
	return b.config, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (b *Builder) fail(kind *cfgerrors.ConfigError, key string) {
	err := cfgerrors.NewConfigError(kind.Code, kind.Message).WithKey(key)
	b.errs = append(b.errs, err)
}

func isNil(v Value) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
