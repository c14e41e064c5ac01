package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatErrorStatuses(t *testing.T) {
	assert.Equal(t, 400, NewValidation("bad input").Status)
	assert.Equal(t, 429, NewRateLimited().Status)
	assert.Equal(t, 401, NewBackendAuth(nil).Status)
	assert.Equal(t, 503, NewBackendCapacity(nil).Status)
	assert.Equal(t, 500, NewBackendTransient(nil).Status)
}

func TestChatErrorMessagesAreUserSafe(t *testing.T) {
	cause := fmt.Errorf("api key sk-XXXX rejected")
	err := NewBackendAuth(cause)

	assert.NotContains(t, err.Message, "sk-XXXX")
	assert.Contains(t, err.Error(), "BACKEND_AUTH")
	assert.Equal(t, cause, err.Unwrap())
}

func TestIs(t *testing.T) {
	err := NewRateLimited()
	assert.True(t, Is(err, ErrRateLimited))
	assert.False(t, Is(err, ErrValidation))
	assert.False(t, Is(fmt.Errorf("plain"), ErrRateLimited))
}
