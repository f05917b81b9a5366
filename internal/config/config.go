// Package config provides typed configuration entries persisted as the
// top-level properties of a JSON document.
//
// Entries are declared on a Builder, which returns typed handles (Scalar,
// Numeric, List) bound to the Config it builds. A document store applies a
// parsed document to the Config, after which the Config starts tracking
// which entries were changed so that only a dirty document is rewritten.
//
// A Config and its entries are meant for a single owner. Nothing in this
// package locks; callers that share a Config between goroutines must
// serialize access themselves.
package config

import (
	"fmt"
	"slices"

	"github.com/conneroisu/jsonconf/internal/jsontree"
)

// Config is the registry of entries persisted to one document.
type Config struct {
	path       string
	entries    map[string]Value
	order      []string
	canBeDirty bool
}

func newConfig(path string) *Config {
	return &Config{
		path:    path,
		entries: make(map[string]Value),
	}
}

// Path returns the location of the backing document.
func (c *Config) Path() string {
	return c.path
}

// Len returns the number of entries.
func (c *Config) Len() int {
	return len(c.entries)
}

// Keys returns the entry keys in definition order.
func (c *Config) Keys() []string {
	return slices.Clone(c.order)
}

// Entries returns the entries in definition order.
func (c *Config) Entries() []Value {
	out := make([]Value, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.entries[key])
	}
	return out
}

// Lookup returns the entry registered under key.
func (c *Config) Lookup(key string) (Value, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Get returns the entry under key as a TypedValue[T]. It reports false if
// the key is unknown or holds a different type.
func Get[T any](c *Config, key string) (TypedValue[T], bool) {
	v, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	tv, ok := v.(TypedValue[T])
	return tv, ok
}

// CanBeDirty reports whether mutations currently count as edits.
func (c *Config) CanBeDirty() bool {
	return c.canBeDirty
}

// EnableDirtyTracking marks the end of initial population. From now on
// every qualifying mutation marks its entry dirty.
func (c *Config) EnableDirtyTracking() {
	c.canBeDirty = true
}

// IsDirty reports whether any entry is dirty.
func (c *Config) IsDirty() bool {
	for _, v := range c.entries {
		if v.IsDirty() {
			return true
		}
	}
	return false
}

// DirtyKeys returns the keys of dirty entries in definition order.
func (c *Config) DirtyKeys() []string {
	var keys []string
	for _, key := range c.order {
		if c.entries[key].IsDirty() {
			keys = append(keys, key)
		}
	}
	return keys
}

// MarkClean clears the dirty flag of every entry, typically after a
// successful save.
func (c *Config) MarkClean() {
	for _, v := range c.entries {
		v.markClean()
	}
}

// Apply loads doc into the entries. Every entry whose key is a property of
// doc is deserialized from it, with the entry's default as fallback; entries
// whose key is absent keep their current value. It returns the number of
// entries loaded and the document keys that match no entry.
func (c *Config) Apply(doc jsontree.Node) (loaded int, unknown []string) {
	for _, m := range doc.Members() {
		v, ok := c.entries[m.Key]
		if !ok {
			unknown = append(unknown, m.Key)
			continue
		}
		v.load(m.Value)
		loaded++
	}
	return loaded, unknown
}

// Document projects the entries to a JSON object in definition order. With
// dirtyOnly set only dirty entries are included.
func (c *Config) Document(dirtyOnly bool) (jsontree.Node, error) {
	obj := jsontree.NewObject()
	for _, key := range c.order {
		v := c.entries[key]
		if dirtyOnly && !v.IsDirty() {
			continue
		}
		obj.Set(key, v.Node())
	}
	return obj.Build()
}

// String implements fmt.Stringer.
func (c *Config) String() string {
	return fmt.Sprintf("Config[%s, %d entries]", c.path, len(c.entries))
}

func (c *Config) register(key string, v Value) {
	c.entries[key] = v
	c.order = append(c.order, key)
}
