package relay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/poolexpert/concierge/internal/conversation"
	apperrors "github.com/poolexpert/concierge/internal/errors"
	"github.com/poolexpert/concierge/internal/extractor"
	"github.com/poolexpert/concierge/internal/llm"
	"github.com/poolexpert/concierge/internal/models"
	"github.com/poolexpert/concierge/internal/ratelimit"
	"github.com/poolexpert/concierge/internal/storage"
)

const saveTimeout = 10 * time.Second

// Service runs one chat exchange end to end: rate limiting, stage
// analysis, prompt composition, token streaming, and post-reply lead
// capture. It holds no per-conversation state; the caller supplies the
// full history on every call.
type Service struct {
	llm     llm.Client
	limiter ratelimit.Limiter
	sink    storage.Storage
	logger  *zap.Logger
}

func NewService(client llm.Client, limiter ratelimit.Limiter, sink storage.Storage, logger *zap.Logger) *Service {
	return &Service{
		llm:     client,
		limiter: limiter,
		sink:    sink,
		logger:  logger,
	}
}

// Chat validates the request, invokes the model backend, and returns the
// assistant's reply as an ordered stream of text chunks. After the stream
// closes, the full transcript is scanned for lead details and any record
// with contact info is saved in the background; a failed save never
// affects the already-delivered reply.
func (s *Service) Chat(ctx context.Context, messages []models.Message, callerID string) (<-chan string, error) {
	if len(messages) == 0 {
		return nil, apperrors.NewValidation("messages are required")
	}
	for _, m := range messages {
		if m.Role != models.RoleUser && m.Role != models.RoleAssistant {
			return nil, apperrors.NewValidation(fmt.Sprintf("invalid message role: %q", m.Role))
		}
	}

	if !s.limiter.Allow(callerID) {
		s.logger.Info("rate limit exceeded", zap.String("caller_id", callerID))
		return nil, apperrors.NewRateLimited()
	}

	state := conversation.Analyze(messages)
	prompt := conversation.Compose(state)

	s.logger.Info("relaying chat request",
		zap.String("caller_id", callerID),
		zap.Int("message_count", state.MessageCount),
		zap.String("stage", string(state.Stage)),
		zap.Bool("budget_qualified", state.BudgetQualified))

	tokens, err := s.llm.StreamReply(ctx, prompt, messages)
	if err != nil {
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)

		var reply strings.Builder
		for chunk := range tokens {
			reply.WriteString(chunk)
			select {
			case out <- chunk:
			case <-ctx.Done():
				// Stop forwarding; chunks already sent are not retracted.
				go s.captureLead(messages, reply.String())
				return
			}
		}

		go s.captureLead(messages, reply.String())
	}()

	return out, nil
}

// captureLead runs the extractor over the full transcript and submits a
// lead record when contact info is present. Best effort, at most once:
// failures are logged and swallowed.
func (s *Service) captureLead(messages []models.Message, reply string) {
	var transcript strings.Builder
	for _, m := range messages {
		transcript.WriteString(m.Content)
		transcript.WriteString("\n")
	}
	transcript.WriteString(reply)

	info := extractor.Extract(transcript.String())
	if !info.HasContactInfo() {
		return
	}

	score := extractor.Score(info)
	tier := extractor.TierFor(score)

	lead := &models.Lead{
		Email:           info.Email,
		Phone:           info.Phone,
		Name:            info.Name,
		Budget:          info.Budget,
		ProjectType:     string(info.ProjectType),
		Timeline:        info.Timeline,
		Notes:           fmt.Sprintf("Lead score: %d (%s)", score, tier),
		ConversationLog: formatTranscript(messages, reply),
		Source:          models.LeadSourceChatWidget,
		Status:          "new",
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	id, err := s.sink.SaveLead(ctx, lead)
	if err != nil {
		s.logger.Error("failed to save captured lead",
			zap.Error(apperrors.NewSinkWrite(err)),
			zap.String("email", info.Email),
			zap.String("phone", info.Phone))
		return
	}

	s.logger.Info("lead captured",
		zap.String("lead_id", id),
		zap.Int("score", score),
		zap.String("tier", string(tier)))
}

func formatTranscript(messages []models.Message, reply string) string {
	var sb strings.Builder
	for _, m := range messages {
		sb.WriteString(string(m.Role))
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	if reply != "" {
		sb.WriteString(string(models.RoleAssistant))
		sb.WriteString(": ")
		sb.WriteString(reply)
		sb.WriteString("\n")
	}
	return sb.String()
}
