package llm

import (
	"context"

	"github.com/poolexpert/concierge/internal/models"
)

// Client is the model backend boundary: given a system instruction and the
// ordered message history, it produces the assistant's reply as a lazy,
// finite sequence of text chunks.
//
// The returned channel is closed when the backend signals completion or the
// context is cancelled; chunks already delivered are never retracted. Errors
// before the first token are returned directly so callers can map them to a
// response status.
type Client interface {
	StreamReply(ctx context.Context, system string, messages []models.Message) (<-chan string, error)
}
