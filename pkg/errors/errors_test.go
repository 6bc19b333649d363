// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test coded error creation, wrapping, and code lookup through chains

package errors_test

import (
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/typedisk/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "invalid_path",
			code:    errors.ErrInvalidPath,
			message: "path is not absolute",
			wantStr: "[INVALID_PATH] path is not absolute",
		},
		{
			name:    "not_under_root",
			code:    errors.ErrNotUnderRoot,
			message: "/b is not under /a",
			wantStr: "[NOT_UNDER_ROOT] /b is not under /a",
		},
		{
			name:    "empty_message",
			code:    errors.ErrTransientIO,
			message: "",
			wantStr: "[TRANSIENT_IO] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.wantStr, err.Error())
			assert.NotNil(t, err.Details)
			assert.Nil(t, err.Unwrap())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrNotAFile, "%s is a directory", "/tmp/x")
	assert.Equal(t, "[NOT_A_FILE] /tmp/x is a directory", err.Error())
}

func TestWrap(t *testing.T) {
	base := stderrors.New("device busy")

	t.Run("wrap_keeps_cause", func(t *testing.T) {
		err := errors.Wrap(base, errors.ErrTransientIO, "delete failed")
		require.NotNil(t, err)
		assert.Equal(t, "[TRANSIENT_IO] delete failed: device busy", err.Error())
		assert.True(t, stderrors.Is(err, base))
	})

	t.Run("wrapf_formats", func(t *testing.T) {
		err := errors.Wrapf(base, errors.ErrDirDelete, "cannot delete %s", "/tmp/d")
		require.NotNil(t, err)
		assert.Equal(t, "[DIR_DELETE] cannot delete /tmp/d: device busy", err.Error())
	})

	t.Run("nil_error_stays_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "x"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "x %d", 1))
	})

	t.Run("os_errors_survive_wrapping", func(t *testing.T) {
		err := errors.Wrap(os.ErrNotExist, errors.ErrDigestSourceUnavailable, "no source")
		assert.True(t, stderrors.Is(err, os.ErrNotExist))
	})
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrInvalidPath, "not canonical").
		WithDetail("input", "/a/./b").
		WithDetails(map[string]interface{}{"canonical": "/a/b"})

	assert.Equal(t, "/a/./b", err.Details["input"])
	assert.Equal(t, "/a/b", err.Details["canonical"])

	bare := &errors.DiskError{Code: errors.ErrInternal}
	bare.WithDetail("k", 1)
	assert.Equal(t, 1, bare.Details["k"])

	assert.Equal(t, err.Details, errors.GetErrorDetails(fmt.Errorf("ctx: %w", err)))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2))
	assert.False(t, err1.Is(err3))
	assert.False(t, err1.Is(stderrors.New("plain")))
	assert.True(t, stderrors.Is(err1, err2))
}

func TestIsErrorCode(t *testing.T) {
	inner := errors.New(errors.ErrNotAFile, "is a directory")

	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNotFound, "x"), errors.ErrNotFound, true},
		{"different_code", errors.New(errors.ErrNotFound, "x"), errors.ErrInternal, false},
		{"fmt_wrapped", fmt.Errorf("outer: %w", inner), errors.ErrNotAFile, true},
		{"inner_code_behind_outer_code", errors.Wrap(inner, errors.ErrFileWrite, "write"), errors.ErrNotAFile, true},
		{"outer_code", errors.Wrap(inner, errors.ErrFileWrite, "write"), errors.ErrFileWrite, true},
		{"plain_error", stderrors.New("plain"), errors.ErrUnknown, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrTransientIO, errors.GetErrorCode(errors.New(errors.ErrTransientIO, "busy")))
	assert.Equal(t, errors.ErrFileWrite, errors.GetErrorCode(
		errors.Wrap(errors.New(errors.ErrNotAFile, "x"), errors.ErrFileWrite, "write")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}
