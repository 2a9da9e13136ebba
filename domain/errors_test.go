package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewParseError_WrapsCauseAndFormatsMessage(t *testing.T) {
	cause := errors.New("unexpected token")
	err := NewParseError("src/lib.rs", cause)

	assert.Equal(t, KindParseError, err.Kind)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "src/lib.rs")
	assert.Contains(t, err.Error(), "unexpected token")
}

func TestNewCacheVersionMismatchError_FormatsBothVersions(t *testing.T) {
	err := NewCacheVersionMismatchError(1, 2)
	assert.Equal(t, KindCacheVersionMismatch, err.Kind)
	assert.Contains(t, err.Error(), "1")
	assert.Contains(t, err.Error(), "2")
}

func TestNewIOError_NoCauseOmitsColonSuffix(t *testing.T) {
	err := NewIOError("cache directory unreadable", nil)
	assert.Equal(t, KindIOError, err.Kind)
	assert.Nil(t, err.Unwrap())
	assert.Equal(t, "[IO_ERROR] cache directory unreadable", err.Error())
}

func TestParseFailed_ErrorFormatsPathAndMessage(t *testing.T) {
	pf := ParseFailed{Path: "a.py", Message: "bad indent"}
	assert.Contains(t, pf.Error(), "a.py")
	assert.Contains(t, pf.Error(), "bad indent")
}
