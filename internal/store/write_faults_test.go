package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfgerrors "github.com/conneroisu/jsonconf/internal/errors"
	"github.com/conneroisu/jsonconf/internal/testutils"
)

func TestWrite_Faults(t *testing.T) {
	const path = "/conf/settings.json"
	const original = `{"funny":1}`

	tests := []struct {
		name string
		op   string
		msg  string
	}{
		{"directory", testutils.OpMkdirAll, "cannot create directory"},
		{"temporary file", testutils.OpOpenFile, "cannot create temporary file"},
		{"chmod", testutils.OpChmod, "cannot set document mode"},
		{"rename", testutils.OpRename, "cannot replace document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutils.NewFaultFs(nil)
			testutils.WriteDocument(t, fs, path, original)
			s := New(WithFs(fs))

			fs.Injector.InjectErrorOnce(tt.op, testutils.ErrDiskFull)
			err := s.Write(context.Background(), path, []byte(`{"funny":2}`))

			require.Error(t, err)
			assert.True(t, cfgerrors.HasCode(err, cfgerrors.ErrCodeWriteFailed))
			assert.True(t, errors.Is(err, testutils.ErrDiskFull))
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, int64(1), fs.Injector.Count(tt.op))

			assert.Equal(t, original, testutils.ReadDocument(t, fs, path))
			testutils.AssertNoTempFiles(t, fs, "/conf")
		})
	}
}

func TestSave_FailureKeepsDirt(t *testing.T) {
	ctx := context.Background()
	fs := testutils.NewFaultFs(nil)
	s := New(WithFs(fs))
	f := newFixture(t, "/settings.json")
	require.NoError(t, s.Load(ctx, f.cfg))
	f.funny.Set(69)

	fs.Injector.InjectErrorOnce(testutils.OpRename, testutils.ErrPermissionDenied)
	require.Error(t, s.Save(ctx, f.cfg))
	assert.Equal(t, []string{"funny"}, f.cfg.DirtyKeys())

	require.NoError(t, s.Save(ctx, f.cfg))
	assert.False(t, f.cfg.IsDirty())
	assert.Equal(t, "{\n  \"funny\": 69,\n  \"hello\": \"world\",\n  \"tags\": [\"a\"]\n}\n",
		testutils.ReadDocument(t, fs, "/settings.json"))
	testutils.AssertFilePermissions(t, fs, "/settings.json", 0o644)
}

func TestExists_StatFailure(t *testing.T) {
	fs := testutils.NewFaultFs(nil)
	testutils.WriteDocument(t, fs, "/settings.json", `{"funny":1}`)
	s := New(WithFs(fs))
	f := newFixture(t, "/settings.json")

	fs.Injector.InjectError(testutils.OpStat, testutils.ErrPermissionDenied)
	_, err := s.Exists(f.cfg)

	require.Error(t, err)
	assert.True(t, cfgerrors.HasCode(err, cfgerrors.ErrCodeReadFailed))
}
