package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/media-confidence/aifaq/internal/api"
	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/service"
	"github.com/media-confidence/aifaq/internal/telemetry"
	"github.com/rs/zerolog"
)

// ChatResponder runs one chat turn.
type ChatResponder interface {
	Respond(ctx context.Context, input service.ChatInput) (*service.ChatOutput, error)
}

type ChatHandler struct {
	svc ChatResponder
}

// NewChatHandler accepts a nil responder when no relay is configured; every
// request then fails with the chat failure message.
func NewChatHandler(svc ChatResponder) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Diagnosis   *domain.Diagnosis `json:"diagnosis"`
	MatchedFAQs []*FAQResponse    `json:"matchedFaqs"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	if h.svc == nil {
		zerolog.Ctx(r.Context()).Error().Msg("chat requested but no relay is configured")
		api.Error(w, http.StatusInternalServerError, ChatFailureMessage)
		return
	}

	out, err := h.svc.Respond(r.Context(), service.ChatInput{Messages: req.Messages})
	if err != nil {
		if api.DomainErrorToHTTP(err) >= http.StatusInternalServerError {
			event := zerolog.Ctx(r.Context()).Error().Err(err).Int("turns", len(req.Messages))
			if errors.Is(err, service.ErrRelayFailure) {
				event.Msg("chat relay failed")
			} else {
				event.Msg("chat turn failed")
			}
			telemetry.CaptureError(r.Context(), err)
		}
		api.HandleErrorWithMessage(w, err, ChatFailureMessage)
		return
	}

	api.JSON(w, http.StatusOK, ChatResponse{
		Success:     true,
		Message:     out.Message,
		Diagnosis:   out.Diagnosis,
		MatchedFAQs: faqsToResponse(out.MatchedFAQs),
	})
}
