package consumer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamError_Error(t *testing.T) {
	err := NewStreamError(ErrCodeStartupConnection, "kafka broker unreachable at localhost:9092")
	assert.Equal(t, "[STARTUP_CONNECTION_FAILED] kafka broker unreachable at localhost:9092", err.Error())

	cause := errors.New("connection refused")
	wrapped := NewStreamErrorWithCause(ErrCodeStartupConnection, "kafka broker unreachable", cause)
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestStreamError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStreamErrorWithCause(ErrCodeFetchFailed, "failed to read message", cause)

	assert.True(t, errors.Is(err, cause))
}

func TestIsErrorCode(t *testing.T) {
	err := NewStreamError(ErrCodeDecodeFailed, "malformed payload")

	assert.True(t, IsErrorCode(err, ErrCodeDecodeFailed))
	assert.False(t, IsErrorCode(err, ErrCodeFetchFailed))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrCodeDecodeFailed))
	assert.False(t, IsErrorCode(nil, ErrCodeDecodeFailed))
}

func TestIsStartupError(t *testing.T) {
	startup := NewStreamError(ErrCodeStartupConnection, "unreachable")
	fetch := NewStreamError(ErrCodeFetchFailed, "transient")

	assert.True(t, IsStartupError(startup))
	assert.False(t, IsStartupError(fetch))
}

func TestGetStreamError(t *testing.T) {
	err := NewStreamError(ErrCodeSourceClosed, "source already closed")

	assert.Equal(t, err, GetStreamError(err))
	assert.Nil(t, GetStreamError(errors.New("plain")))
}
