package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := New(UsageErrorCode, "missing command")
		assert.Equal(t, "missing command", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := WrapFileSystemError("read directory", "photos", fs.ErrNotExist)
		assert.Equal(t, "failed to read directory 'photos': file does not exist", err.Error())
		assert.Equal(t, "photos", err.Path())
		assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
		assert.Equal(t, "read directory", err.Context()["operation"])
		assert.True(t, stderrors.Is(err, fs.ErrNotExist))
	})
}

func TestWrapRenameError(t *testing.T) {
	err := WrapRenameError("a/old", "a/new", fs.ErrExist)

	assert.Equal(t, "failed to rename 'a/old' to 'a/new': file already exists", err.Error())
	assert.Equal(t, "a/old", err.Path())
	assert.Equal(t, "a/new", err.Context()["destination"])
	assert.True(t, stderrors.Is(err, fs.ErrExist))
}

func TestWrapPatternError(t *testing.T) {
	cause := stderrors.New("missing closing )")
	err := WrapPatternError("(abc", cause)

	assert.Equal(t, PatternErrorCode, err.ErrorCode())
	assert.Contains(t, err.Error(), "failed to compile pattern '(abc'")
	assert.NotEmpty(t, err.Suggestions())
	assert.True(t, HasCode(err, PatternErrorCode))
	assert.False(t, HasCode(err, UsageErrorCode))
}

func TestHasCode_Wrapped(t *testing.T) {
	inner := NewUsageError("unknown command %q", "frobnicate")
	outer := stderrors.Join(stderrors.New("context"), inner)

	assert.True(t, HasCode(inner, UsageErrorCode))
	assert.False(t, HasCode(nil, UsageErrorCode))
	assert.Equal(t, `unknown command "frobnicate"`, inner.Error())
	assert.True(t, HasCode(outer, UsageErrorCode))
	assert.False(t, HasCode(outer, PatternErrorCode))
}

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{UnknownErrorCode, "UnknownError"},
		{UsageErrorCode, "UsageError"},
		{PatternErrorCode, "PatternError"},
		{FileSystemErrorCode, "FileSystemError"},
		{ErrorCode(99), "UnknownError"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.String())
		})
	}
}

func TestMultipleErrors(t *testing.T) {
	multi := NewMultipleErrors()
	assert.True(t, multi.IsEmpty())
	assert.Nil(t, multi.ErrorOrNil())
	assert.Equal(t, "no errors", multi.Error())

	multi.Add(WrapRenameError("a", "b", fs.ErrExist))
	assert.Equal(t, 1, multi.Count())
	assert.Equal(t, "failed to rename 'a' to 'b': file already exists", multi.Error())

	multi.Add(WrapRenameError("c", "d", fs.ErrPermission))
	require.Error(t, multi.ErrorOrNil())
	assert.Contains(t, multi.Error(), "multiple errors (2 total)")
	assert.True(t, stderrors.Is(multi, fs.ErrPermission))
	assert.True(t, HasCode(multi, FileSystemErrorCode))
	assert.False(t, HasCode(multi, PatternErrorCode))
}
