package llm

import (
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/poolexpert/concierge/internal/errors"
)

func TestClassifyError(t *testing.T) {
	assert.True(t, apperrors.Is(
		classifyError(&openai.APIError{HTTPStatusCode: 401}),
		apperrors.ErrBackendAuth))
	assert.True(t, apperrors.Is(
		classifyError(&openai.APIError{HTTPStatusCode: 403}),
		apperrors.ErrBackendAuth))

	assert.True(t, apperrors.Is(
		classifyError(&openai.APIError{HTTPStatusCode: 429}),
		apperrors.ErrRateLimited))

	assert.True(t, apperrors.Is(
		classifyError(&openai.APIError{HTTPStatusCode: 429, Code: "insufficient_quota"}),
		apperrors.ErrBackendCapacity))
	assert.True(t, apperrors.Is(
		classifyError(&openai.APIError{HTTPStatusCode: 503}),
		apperrors.ErrBackendCapacity))

	assert.True(t, apperrors.Is(
		classifyError(&openai.APIError{HTTPStatusCode: 500}),
		apperrors.ErrBackendTransient))
	assert.True(t, apperrors.Is(
		classifyError(errors.New("connection reset")),
		apperrors.ErrBackendTransient))
}
