package relay

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/poolexpert/concierge/internal/errors"
	"github.com/poolexpert/concierge/internal/models"
	"github.com/poolexpert/concierge/internal/storage"
)

type mockClient struct {
	chunks     []string
	err        error
	lastSystem string
}

func (m *mockClient) StreamReply(ctx context.Context, system string, messages []models.Message) (<-chan string, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastSystem = system

	out := make(chan string)
	go func() {
		defer close(out)
		for _, c := range m.chunks {
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

type allowAll struct{}

func (allowAll) Allow(string) bool { return true }

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

func newTestService(client *mockClient, store storage.Storage) *Service {
	return NewService(client, allowAll{}, store, zap.NewNop())
}

func collect(t *testing.T, stream <-chan string) string {
	t.Helper()
	var sb strings.Builder
	for chunk := range stream {
		sb.WriteString(chunk)
	}
	return sb.String()
}

func userSays(contents ...string) []models.Message {
	msgs := make([]models.Message, 0, len(contents))
	for _, c := range contents {
		msgs = append(msgs, models.Message{Role: models.RoleUser, Content: c})
	}
	return msgs
}

func TestChatStreamIntegrity(t *testing.T) {
	client := &mockClient{chunks: []string{"Hello", " there", "!"}}
	svc := newTestService(client, storage.NewMemoryStorage())

	stream, err := svc.Chat(context.Background(), userSays("hi"), "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", collect(t, stream))
}

func TestChatComposesSystemPrompt(t *testing.T) {
	client := &mockClient{chunks: []string{"ok"}}
	svc := newTestService(client, storage.NewMemoryStorage())

	stream, err := svc.Chat(context.Background(), userSays("hi"), "1.2.3.4")
	require.NoError(t, err)
	collect(t, stream)

	assert.Contains(t, client.lastSystem, "Pool Expert AI")
	assert.Contains(t, client.lastSystem, "# CURRENT CONVERSATION CONTEXT")
	assert.Contains(t, client.lastSystem, "Messages exchanged: 1")
}

func TestChatValidation(t *testing.T) {
	svc := newTestService(&mockClient{}, storage.NewMemoryStorage())

	_, err := svc.Chat(context.Background(), nil, "1.2.3.4")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, err = svc.Chat(context.Background(), []models.Message{{Role: "system", Content: "x"}}, "1.2.3.4")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestChatRateLimited(t *testing.T) {
	svc := NewService(&mockClient{}, denyAll{}, storage.NewMemoryStorage(), zap.NewNop())

	_, err := svc.Chat(context.Background(), userSays("hi"), "1.2.3.4")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrRateLimited))
}

func TestChatBackendErrorPassedThrough(t *testing.T) {
	client := &mockClient{err: apperrors.NewBackendAuth(assert.AnError)}
	svc := newTestService(client, storage.NewMemoryStorage())

	_, err := svc.Chat(context.Background(), userSays("hi"), "1.2.3.4")
	assert.True(t, apperrors.Is(err, apperrors.ErrBackendAuth))
}

func TestChatCapturesLeadWithContactInfo(t *testing.T) {
	client := &mockClient{chunks: []string{"Thanks, I'll pass that along!"}}
	store := storage.NewMemoryStorage()
	svc := newTestService(client, store)

	history := userSays("I want an infinity pool, budget is around 90k, we have two kids, my email is jane@example.com")
	stream, err := svc.Chat(context.Background(), history, "1.2.3.4")
	require.NoError(t, err)
	collect(t, stream)

	require.Eventually(t, func() bool {
		return len(store.Leads()) == 1
	}, time.Second, 10*time.Millisecond, "lead should be saved after the stream closes")

	lead := store.Leads()[0]
	assert.Equal(t, "jane@example.com", lead.Email)
	assert.Equal(t, "$90000", lead.Budget)
	assert.Equal(t, models.LeadSourceChatWidget, lead.Source)
	assert.Equal(t, "new", lead.Status)
	assert.Contains(t, lead.Notes, "45 (warm)")
	assert.Contains(t, lead.ConversationLog, "assistant: Thanks")
}

func TestChatSkipsLeadWithoutContactInfo(t *testing.T) {
	client := &mockClient{chunks: []string{"Tell me more!"}}
	store := storage.NewMemoryStorage()
	svc := newTestService(client, store)

	stream, err := svc.Chat(context.Background(), userSays("just browsing"), "1.2.3.4")
	require.NoError(t, err)
	collect(t, stream)

	assert.Never(t, func() bool {
		return len(store.Leads()) > 0
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestChatCancellationStopsStream(t *testing.T) {
	client := &mockClient{chunks: []string{"a", "b", "c", "d"}}
	svc := newTestService(client, storage.NewMemoryStorage())

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := svc.Chat(ctx, userSays("hi"), "1.2.3.4")
	require.NoError(t, err)

	<-stream
	cancel()

	// The stream closes promptly once the caller is gone.
	require.Eventually(t, func() bool {
		_, open := <-stream
		return !open
	}, time.Second, 10*time.Millisecond)
}
