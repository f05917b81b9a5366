package testutils

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// Filesystem operations a FaultFs can fail.
const (
	OpOpenFile = "openfile"
	OpMkdirAll = "mkdirall"
	OpRename   = "rename"
	OpRemove   = "remove"
	OpChmod    = "chmod"
	OpStat     = "stat"
)

// Common error types for testing.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrDiskFull         = errors.New("disk full")
)

// ErrorInjector provides controlled failure injection for testing.
type ErrorInjector struct {
	targets map[string]*ErrorTarget
	mu      sync.Mutex
	enabled bool
}

// ErrorTarget represents an injection point with configuration.
type ErrorTarget struct {
	Name      string
	Error     error
	Count     int64 // injections so far
	Remaining int64 // -1 for unlimited
	Delay     time.Duration
}

// NewErrorInjector creates an enabled injector without targets.
func NewErrorInjector() *ErrorInjector {
	return &ErrorInjector{
		targets: make(map[string]*ErrorTarget),
		enabled: true,
	}
}

// InjectError makes every call of operation fail with err.
func (ei *ErrorInjector) InjectError(operation string, err error) *ErrorTarget {
	ei.mu.Lock()
	defer ei.mu.Unlock()

	target := &ErrorTarget{
		Name:      operation,
		Error:     err,
		Remaining: -1,
	}
	ei.targets[operation] = target

	return target
}

// InjectErrorOnce makes the next call of operation fail with err.
func (ei *ErrorInjector) InjectErrorOnce(operation string, err error) *ErrorTarget {
	return ei.InjectErrorCount(operation, err, 1)
}

// InjectErrorCount makes the next count calls of operation fail with err.
func (ei *ErrorInjector) InjectErrorCount(operation string, err error, count int64) *ErrorTarget {
	target := ei.InjectError(operation, err)

	ei.mu.Lock()
	target.Remaining = count
	ei.mu.Unlock()

	return target
}

// ShouldFail returns the error operation should fail with, or nil.
func (ei *ErrorInjector) ShouldFail(operation string) error {
	ei.mu.Lock()
	defer ei.mu.Unlock()

	if !ei.enabled {
		return nil
	}

	target, exists := ei.targets[operation]
	if !exists || target.Remaining == 0 {
		return nil
	}

	if target.Delay > 0 {
		time.Sleep(target.Delay)
	}

	target.Count++
	if target.Remaining > 0 {
		target.Remaining--
	}

	return target.Error
}

// Count returns how many times operation was failed.
func (ei *ErrorInjector) Count(operation string) int64 {
	ei.mu.Lock()
	defer ei.mu.Unlock()

	if target, ok := ei.targets[operation]; ok {
		return target.Count
	}
	return 0
}

func (ei *ErrorInjector) Enable() {
	ei.mu.Lock()
	defer ei.mu.Unlock()
	ei.enabled = true
}

func (ei *ErrorInjector) Disable() {
	ei.mu.Lock()
	defer ei.mu.Unlock()
	ei.enabled = false
}

// Clear removes every target.
func (ei *ErrorInjector) Clear() {
	ei.mu.Lock()
	defer ei.mu.Unlock()
	ei.targets = make(map[string]*ErrorTarget)
}

// WithDelay sets the injection delay.
func (et *ErrorTarget) WithDelay(delay time.Duration) *ErrorTarget {
	et.Delay = delay
	return et
}

// FaultFs is an afero.Fs whose operations fail as its injector says.
// Failed operations are reported as *os.PathError or *os.LinkError
// wrapping the injected error.
type FaultFs struct {
	afero.Fs
	Injector *ErrorInjector
}

// NewFaultFs wraps base. A nil base is an in-memory filesystem.
func NewFaultFs(base afero.Fs) *FaultFs {
	if base == nil {
		base = afero.NewMemMapFs()
	}
	return &FaultFs{Fs: base, Injector: NewErrorInjector()}
}

func (f *FaultFs) fail(op, name string) error {
	if err := f.Injector.ShouldFail(op); err != nil {
		return &os.PathError{Op: op, Path: name, Err: err}
	}
	return nil
}

func (f *FaultFs) Create(name string) (afero.File, error) {
	if err := f.fail(OpOpenFile, name); err != nil {
		return nil, err
	}
	return f.Fs.Create(name)
}

func (f *FaultFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if err := f.fail(OpOpenFile, name); err != nil {
		return nil, err
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *FaultFs) MkdirAll(path string, perm os.FileMode) error {
	if err := f.fail(OpMkdirAll, path); err != nil {
		return err
	}
	return f.Fs.MkdirAll(path, perm)
}

func (f *FaultFs) Rename(oldname, newname string) error {
	if err := f.Injector.ShouldFail(OpRename); err != nil {
		return &os.LinkError{Op: OpRename, Old: oldname, New: newname, Err: err}
	}
	return f.Fs.Rename(oldname, newname)
}

func (f *FaultFs) Remove(name string) error {
	if err := f.fail(OpRemove, name); err != nil {
		return err
	}
	return f.Fs.Remove(name)
}

func (f *FaultFs) Chmod(name string, mode os.FileMode) error {
	if err := f.fail(OpChmod, name); err != nil {
		return err
	}
	return f.Fs.Chmod(name, mode)
}

func (f *FaultFs) Stat(name string) (os.FileInfo, error) {
	if err := f.fail(OpStat, name); err != nil {
		return nil, err
	}
	return f.Fs.Stat(name)
}

func (f *FaultFs) Name() string {
	return "FaultFs"
}
