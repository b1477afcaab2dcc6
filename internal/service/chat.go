package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/telemetry"
	"github.com/rs/zerolog"
)

// ErrRelayFailure marks errors from the conversation relay.
var ErrRelayFailure = errors.New("conversation relay failed")

// Relay forwards a transcript plus the system instruction to the reasoning
// service and returns its single reply.
type Relay interface {
	Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error)
}

// CatalogSource supplies the current system instruction and the catalog it
// was rendered from.
type CatalogSource interface {
	SystemPrompt() string
	Catalog() *domain.Catalog
}

// DefaultMaxChatMessages bounds transcript length per request.
const DefaultMaxChatMessages = 40

type ChatInput struct {
	Messages []domain.ChatMessage
}

type ChatOutput struct {
	Message     string
	Diagnosis   *domain.Diagnosis
	MatchedFAQs []*domain.FAQ
}

// ChatService runs one stateless chat turn: relay, extract, match.
type ChatService struct {
	relay       Relay
	catalog     CatalogSource
	resolver    *MatchResolver
	chatLogs    ChatLogRepositoryInterface
	uuidGen     UUIDGenerator
	maxMessages int
}

// ChatOption configures a ChatService.
type ChatOption func(*ChatService)

// WithChatLogs records each completed turn. Recording is best effort.
func WithChatLogs(repo ChatLogRepositoryInterface) ChatOption {
	return func(s *ChatService) { s.chatLogs = repo }
}

// WithMaxMessages overrides the transcript length guard; 0 disables it.
func WithMaxMessages(n int) ChatOption {
	return func(s *ChatService) { s.maxMessages = n }
}

func WithChatUUIDGen(gen UUIDGenerator) ChatOption {
	return func(s *ChatService) { s.uuidGen = gen }
}

func NewChatService(relay Relay, catalog CatalogSource, resolver *MatchResolver, opts ...ChatOption) *ChatService {
	s := &ChatService{
		relay:       relay,
		catalog:     catalog,
		resolver:    resolver,
		uuidGen:     &DefaultUUIDGenerator{},
		maxMessages: DefaultMaxChatMessages,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Respond handles one turn. The caller holds the transcript and must append
// the returned Message before the next call.
func (s *ChatService) Respond(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "ChatService.Respond", telemetry.SpanAttributes{
		Operation: "chat",
	})
	defer span.End()

	if err := domain.ValidateTranscript(input.Messages, s.maxMessages); err != nil {
		return nil, err
	}

	reply, err := s.relay.Complete(ctx, s.catalog.SystemPrompt(), input.Messages)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("%w: %v", ErrRelayFailure, err)
	}

	extraction := ExtractDiagnosis(reply)
	out := &ChatOutput{
		Message:     extraction.DisplayText,
		MatchedFAQs: []*domain.FAQ{},
	}

	if d := extraction.Diagnosis; d != nil {
		catalog := s.catalog.Catalog()
		if catalog != nil {
			d.Keywords = catalog.FilterCategories(d.Keywords)
		}
		out.Diagnosis = d

		// Unknown slugs cannot have entries.
		if catalog == nil || catalog.HasDomain(d.Domain) {
			faqs, err := s.resolver.Match(ctx, d)
			if err != nil {
				span.SetError(err)
				return nil, err
			}
			out.MatchedFAQs = faqs
		}
	}

	s.record(ctx, input.Messages, out)
	return out, nil
}

func (s *ChatService) record(ctx context.Context, messages []domain.ChatMessage, out *ChatOutput) {
	if s.chatLogs == nil {
		return
	}

	ids := make([]string, 0, len(out.MatchedFAQs))
	for _, f := range out.MatchedFAQs {
		ids = append(ids, f.ID)
	}

	entry := &domain.ChatLog{
		ID:            s.uuidGen.NewString(),
		Messages:      messages,
		Reply:         out.Message,
		Diagnosis:     out.Diagnosis,
		MatchedFAQIDs: ids,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.chatLogs.Create(ctx, entry); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("chat_log_id", entry.ID).Msg("failed to record chat log")
	}
}
