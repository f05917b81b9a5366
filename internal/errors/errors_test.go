package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ConfigError
		expected string
	}{
		{
			name:     "message only",
			err:      &ConfigError{Message: "boom"},
			expected: "boom",
		},
		{
			name:     "code and key",
			err:      NewConfigError(ErrCodeDuplicateKey, "key already defined").WithKey("funny"),
			expected: "[ERR_DUPLICATE_KEY] key:funny key already defined",
		},
		{
			name:     "path and cause",
			err:      NewIOError(ErrCodeReadFailed, "reading document", fs.ErrPermission).WithPath("/tmp/a.json"),
			expected: "[ERR_READ_FAILED] /tmp/a.json reading document: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestConfigErrorIsAndUnwrap(t *testing.T) {
	err := NewIOError(ErrCodeReadFailed, "reading", fs.ErrNotExist)

	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, errors.Is(err, &ConfigError{Type: ErrorTypeIO, Code: ErrCodeReadFailed}))
	assert.False(t, errors.Is(err, &ConfigError{Type: ErrorTypeIO, Code: ErrCodeWriteFailed}))
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError(ErrCodeOutOfBounds, "x")))
	assert.True(t, IsIOError(NewIOError(ErrCodeWriteFailed, "x", nil)))
	assert.True(t, IsConfigError(NewConfigError(ErrCodeEmptyKey, "x")))
	assert.False(t, IsConfigError(fmt.Errorf("plain")))

	wrapped := fmt.Errorf("outer: %w", NewConfigError(ErrCodeEmptyKey, "x"))
	assert.True(t, IsConfigError(wrapped))
}

func TestHasCode(t *testing.T) {
	joined := errors.Join(
		NewConfigError(ErrCodeEmptyKey, "a"),
		fmt.Errorf("ctx: %w", NewConfigError(ErrCodeDuplicateKey, "b")),
	)

	assert.True(t, HasCode(joined, ErrCodeEmptyKey))
	assert.True(t, HasCode(joined, ErrCodeDuplicateKey))
	assert.False(t, HasCode(joined, ErrCodeNilValue))
	assert.False(t, HasCode(nil, ErrCodeNilValue))

	inner := NewValidationError(ErrCodeOutOfBounds, "inner")
	outer := Wrap(inner, ErrorTypeInternal, ErrCodeInternalError, "outer")
	assert.True(t, HasCode(outer, ErrCodeOutOfBounds))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeIO, "X", "y"))

	base := errors.New("disk full")
	ce := WrapIO(base, ErrCodeWriteFailed, "writing document", "/tmp/x.json")
	require.NotNil(t, ce)
	assert.Equal(t, ErrorTypeIO, ce.Type)
	assert.Equal(t, "/tmp/x.json", ce.Path)
	assert.Same(t, base, ce.Cause)

	inner := NewValidationError(ErrCodeOutOfBounds, "too big").WithKey("funny")
	outer := WrapValidation(inner, ErrCodeOutOfBounds, "validation failed")
	assert.Equal(t, "funny", outer.Key)
	assert.Same(t, inner, outer.Cause)

	assert.Equal(t, ErrorTypeInternal, WrapInternal(base, ErrCodeInternalError, "x").Type)
}

func TestGetErrorContext(t *testing.T) {
	ce := NewIOError(ErrCodeReadFailed, "reading", nil).
		WithPath("/a.json").
		WithKey("k").
		WithContext("size", 3)

	ctx := GetErrorContext(ce)
	assert.Equal(t, "/a.json", ctx["path"])
	assert.Equal(t, "k", ctx["key"])
	assert.Equal(t, 3, ctx["size"])
	assert.Equal(t, "io", ctx["type"])
	assert.Equal(t, ErrCodeReadFailed, ctx["code"])

	plain := GetErrorContext(errors.New("x"))
	assert.Equal(t, "unknown", plain["type"])
}
