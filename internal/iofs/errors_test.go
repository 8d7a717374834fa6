package iofs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gndash/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		name  string
		err   error
		code  gn.ErrorCode
		vars  []any
		inner string
		cause bool
	}{
		{
			name:  "create dir",
			err:   CreateDirError("/home/u/.cache/gndash", cause),
			code:  errcode.CreateDirError,
			vars:  []any{"/home/u/.cache/gndash"},
			inner: "cannot create",
			cause: true,
		},
		{
			name:  "copy config",
			err:   CopyFileError("/home/u/.config/gndash/config.yaml", cause),
			code:  errcode.CopyFileError,
			vars:  []any{"/home/u/.config/gndash/config.yaml"},
			inner: "cannot copy",
			cause: true,
		},
		{
			name:  "read upload",
			err:   ReadFileError("heliconius.csv", cause),
			code:  errcode.ReadFileError,
			vars:  []any{"heliconius.csv"},
			inner: "cannot read heliconius.csv",
			cause: true,
		},
		{
			name:  "upload too large",
			err:   FileTooLargeError("heliconius.xlsx", "21 MB"),
			code:  errcode.UploadTooLargeError,
			vars:  []any{"heliconius.xlsx", "21 MB"},
			inner: "heliconius.xlsx exceeds 21 MB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.True(t, errors.As(tt.err, &gnErr))

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Equal(t, tt.vars, gnErr.Vars)
			assert.Contains(t, gnErr.Msg, "<em>%s</em>")

			// caller context from runtime.Caller
			require.NotNil(t, gnErr.Err)
			assert.Contains(t, gnErr.Err.Error(), "from ")
			assert.Contains(t, gnErr.Err.Error(), tt.inner)
			if tt.cause {
				assert.ErrorIs(t, gnErr.Err, cause)
			}
		})
	}
}

func TestFileTooLargeErrorMessage(t *testing.T) {
	var gnErr *gn.Error
	err := FileTooLargeError("big.csv", "1.0 MB")
	require.True(t, errors.As(err, &gnErr))

	msg := fmt.Sprintf(gnErr.Msg, gnErr.Vars...)
	assert.Equal(t, "File <em>big.csv</em> is larger than 1.0 MB", msg)
}

func TestReadUploadErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.csv")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0644))

	tests := []struct {
		name string
		path string
		max  int64
		code gn.ErrorCode
	}{
		{"too large", path, 1024, errcode.UploadTooLargeError},
		{"missing", filepath.Join(dir, "none.csv"), 0, errcode.ReadFileError},
		{"directory", dir, 0, errcode.ReadFileError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadUpload(tt.path, tt.max)
			var gnErr *gn.Error
			require.True(t, errors.As(err, &gnErr))
			assert.Equal(t, tt.code, gnErr.Code)
		})
	}

	name, data, err := ReadUpload(path, 4096)
	require.NoError(t, err)
	assert.Equal(t, "big.csv", name)
	assert.Len(t, data, 2048)
}
