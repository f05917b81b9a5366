// Package store persists a config.Config as a JSON document on an afero
// filesystem.
//
// Loading applies the properties present in the document to the matching
// entries and then turns on dirty tracking. Saving writes the document
// atomically through a temporary file and marks the registry clean.
package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/conneroisu/jsonconf/internal/config"
	cfgerrors "github.com/conneroisu/jsonconf/internal/errors"
	"github.com/conneroisu/jsonconf/internal/jsontree"
	"github.com/conneroisu/jsonconf/internal/logging"
)

// DocumentExt is appended to names without an extension by Resolve.
const DocumentExt = ".json"

// SavePolicy selects what Save writes.
type SavePolicy int

const (
	// SaveAll rewrites the document from every entry.
	SaveAll SavePolicy = iota
	// SaveDirty merges only the dirty entries into the existing document
	// and keeps every other property, including ones no entry knows.
	SaveDirty
)

// String returns the string representation of the SavePolicy
func (p SavePolicy) String() string {
	switch p {
	case SaveAll:
		return "all"
	case SaveDirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// ParseSavePolicy parses "all" or "dirty".
func ParseSavePolicy(s string) (SavePolicy, error) {
	switch s {
	case "all", "":
		return SaveAll, nil
	case "dirty":
		return SaveDirty, nil
	default:
		return SaveAll, cfgerrors.NewValidationError(cfgerrors.ErrCodeInvalidOption, "unknown save policy").
			WithContext("policy", s)
	}
}

// Store reads and writes JSON documents.
type Store struct {
	fs     afero.Fs
	logger logging.Logger
	policy SavePolicy
	perm   os.FileMode
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem. The default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithSavePolicy sets the save policy. The default is SaveAll.
func WithSavePolicy(p SavePolicy) Option {
	return func(s *Store) {
		s.policy = p
	}
}

// WithPerm sets the mode of newly written documents.
func WithPerm(perm os.FileMode) Option {
	return func(s *Store) {
		s.perm = perm
	}
}

// New creates a Store.
func New(opts ...Option) *Store {
	s := &Store{
		fs:     afero.NewOsFs(),
		logger: logging.Nop(),
		policy: SaveAll,
		perm:   0o644,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("store")
	return s
}

// Fs returns the filesystem the store works on.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Policy returns the save policy.
func (s *Store) Policy() SavePolicy {
	return s.policy
}

// Resolve joins name to root and appends DocumentExt when name has no
// extension.
func Resolve(root, name string) string {
	if filepath.Ext(name) == "" {
		name += DocumentExt
	}
	if filepath.IsAbs(name) || root == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(root, name)
}

// Exists reports whether the document backing cfg is present.
func (s *Store) Exists(cfg *config.Config) (bool, error) {
	return s.exists(cfg.Path())
}

func (s *Store) exists(path string) (bool, error) {
	ok, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, cfgerrors.WrapIO(err, cfgerrors.ErrCodeReadFailed, "cannot stat document", path)
	}
	return ok, nil
}

// ReadRaw returns the bytes of the document at path. A missing document is
// reported with found set to false and no error.
func (s *Store) ReadRaw(ctx context.Context, path string) (raw []byte, found bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	raw, err = afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, cfgerrors.WrapIO(err, cfgerrors.ErrCodeReadFailed, "cannot read document", path)
	}
	return raw, true, nil
}

// Read parses the document at path. It must hold a JSON object. An empty
// or missing document is reported with found set to false.
func (s *Store) Read(ctx context.Context, path string) (doc jsontree.Node, found bool, err error) {
	raw, found, err := s.ReadRaw(ctx, path)
	if err != nil || !found {
		return jsontree.Null(), false, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return jsontree.Null(), false, nil
	}
	doc, err = parseDocument(raw, path)
	if err != nil {
		return jsontree.Null(), false, err
	}
	return doc, true, nil
}

func parseDocument(raw []byte, path string) (jsontree.Node, error) {
	doc, err := jsontree.Parse(raw)
	if err != nil {
		return jsontree.Null(), cfgerrors.WrapIO(err, cfgerrors.ErrCodeInvalidDocument, "document is not valid JSON", path)
	}
	if !doc.IsObject() {
		return jsontree.Null(), cfgerrors.NewIOError(cfgerrors.ErrCodeInvalidDocument, "document is not a JSON object", nil).
			WithPath(path).
			WithContext("kind", doc.Kind().String())
	}
	return doc, nil
}

// Load applies the document backing cfg to its entries. Without a
// document every entry keeps its current value. Either way dirty tracking
// is enabled afterwards.
func (s *Store) Load(ctx context.Context, cfg *config.Config) error {
	path := cfg.Path()
	perf := logging.StartOperation(s.logger, "load")

	doc, found, err := s.Read(ctx, path)
	if err != nil {
		perf.EndWithError(ctx, err)
		return err
	}

	if !found {
		s.logger.Debug(ctx, "No document, keeping initial values", "path", path)
		cfg.EnableDirtyTracking()
		perf.End(ctx, "path", path, "loaded", 0)
		return nil
	}

	loaded, unknown := cfg.Apply(doc)
	if len(unknown) > 0 {
		s.logger.Debug(ctx, "Document has properties no entry knows", "path", path, "keys", unknown)
	}
	cfg.EnableDirtyTracking()

	perf.End(ctx, "path", path, "loaded", loaded, "unknown", len(unknown))
	return nil
}

// Save writes cfg to its document. A clean registry whose document already
// exists is not written again. After a successful write cfg is clean.
func (s *Store) Save(ctx context.Context, cfg *config.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := cfg.Path()
	exists, err := s.Exists(cfg)
	if err != nil {
		return err
	}
	if exists && !cfg.IsDirty() {
		s.logger.Debug(ctx, "Document is up to date", "path", path)
		return nil
	}

	perf := logging.StartOperation(s.logger, "save")

	var raw []byte
	if exists && s.policy == SaveDirty {
		raw, err = s.mergeDirty(ctx, cfg)
	} else {
		raw, err = documentBytes(cfg)
	}
	if err != nil {
		perf.EndWithError(ctx, err)
		return err
	}

	if err := s.Write(ctx, path, raw); err != nil {
		perf.EndWithError(ctx, err)
		return err
	}

	dirty := len(cfg.DirtyKeys())
	cfg.MarkClean()
	perf.End(ctx, "path", path, "policy", s.policy.String(), "dirty", dirty)
	return nil
}

func (s *Store) mergeDirty(ctx context.Context, cfg *config.Config) ([]byte, error) {
	path := cfg.Path()
	raw, found, err := s.ReadRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	if !found || len(bytes.TrimSpace(raw)) == 0 {
		return documentBytes(cfg)
	}
	if _, err := parseDocument(raw, path); err != nil {
		return nil, err
	}

	for _, key := range cfg.DirtyKeys() {
		v, _ := cfg.Lookup(key)
		raw, err = jsontree.SetMember(raw, key, v.Node())
		if err != nil {
			return nil, cfgerrors.WrapInternal(err, cfgerrors.ErrCodeInternalError, "cannot merge entry").
				WithPath(path).
				WithKey(key)
		}
	}
	return raw, nil
}

func documentBytes(cfg *config.Config) ([]byte, error) {
	doc, err := cfg.Document(false)
	if err != nil {
		return nil, cfgerrors.WrapInternal(err, cfgerrors.ErrCodeInternalError, "cannot build document").
			WithPath(cfg.Path())
	}
	return []byte(doc.Raw()), nil
}

// Write formats raw and replaces the document at path with it. The data
// goes to a temporary file in the same directory first, which is then
// renamed over path.
func (s *Store) Write(ctx context.Context, path string, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return cfgerrors.WrapIO(err, cfgerrors.ErrCodeWriteFailed, "cannot create directory", dir)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return cfgerrors.WrapIO(err, cfgerrors.ErrCodeWriteFailed, "cannot create temporary file", path)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error, msg string) error {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return cfgerrors.WrapIO(cause, cfgerrors.ErrCodeWriteFailed, msg, path)
	}

	if _, err := tmp.Write(jsontree.Format(raw)); err != nil {
		return cleanup(err, "cannot write document")
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err, "cannot sync document")
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return cfgerrors.WrapIO(err, cfgerrors.ErrCodeWriteFailed, "cannot close document", path)
	}
	if err := s.fs.Chmod(tmpName, s.perm); err != nil {
		_ = s.fs.Remove(tmpName)
		return cfgerrors.WrapIO(err, cfgerrors.ErrCodeWriteFailed, "cannot set document mode", path)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return cfgerrors.WrapIO(err, cfgerrors.ErrCodeWriteFailed, "cannot replace document", path)
	}

	s.logger.Debug(ctx, "Document written", "path", path, "bytes", len(raw))
	return nil
}
