package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError_FormatsDetails(t *testing.T) {
	err := NewError(ErrUsernameTaken, "alice")

	require.NotNil(t, err)
	assert.Equal(t, ErrUsernameTaken, err.Code)
	assert.Equal(t, "Username alice is already taken", err.Message)
	assert.Equal(t, http.StatusOK, err.Status)
}

func TestNewError_DoesNotMutateTemplate(t *testing.T) {
	NewError(ErrUsernameTaken, "alice")
	second := NewError(ErrUsernameTaken, "bob")

	assert.Equal(t, "Username bob is already taken", second.Message)
}

func TestNewError_UnknownCodeFallsBack(t *testing.T) {
	err := NewError(424242)

	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewError_KeepsExplicitStatus(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, NewError(ErrRateLimitExceeded).Status)
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("claim failed: %w", NewError(ErrInvalidUsername))

	assert.True(t, HasCode(wrapped, ErrInvalidUsername))
	assert.False(t, HasCode(wrapped, ErrUsernameTaken))
	assert.False(t, HasCode(errors.New("plain"), ErrUnknown))
}
