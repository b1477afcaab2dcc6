package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/media-confidence/aifaq/internal/api"
	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/service"
)

// ChatLogLister pages through recorded chat turns.
type ChatLogLister interface {
	List(ctx context.Context, input service.ListChatLogsInput) (*service.ListChatLogsOutput, error)
}

// AdminHandler serves the basic-auth protected management API.
type AdminHandler struct {
	faqs     FAQService
	chatLogs ChatLogLister
	catalog  *FAQHandler
}

func NewAdminHandler(faqs FAQService, chatLogs ChatLogLister) *AdminHandler {
	return &AdminHandler{faqs: faqs, chatLogs: chatLogs, catalog: NewFAQHandler(faqs)}
}

type CreateFAQRequest struct {
	DomainID   string   `json:"domainId"`
	Question   string   `json:"question"`
	Episode    string   `json:"episode"`
	Answer     string   `json:"answer"`
	Status     string   `json:"status"`
	KeywordIDs []string `json:"keywordIds"`
}

// UpdateFAQRequest distinguishes absent fields (nil) from empty ones.
type UpdateFAQRequest struct {
	DomainID   *string   `json:"domainId"`
	Question   *string   `json:"question"`
	Episode    *string   `json:"episode"`
	Answer     *string   `json:"answer"`
	Status     *string   `json:"status"`
	KeywordIDs *[]string `json:"keywordIds"`
}

// ListFAQs handles GET /api/admin/faq. All statuses are returned.
func (h *AdminHandler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	filter.Status = domain.FAQStatus(r.URL.Query().Get("status"))

	faqs, err := h.faqs.List(r.Context(), filter)
	if err != nil {
		logFailure(r, err, "admin list faqs")
		api.HandleErrorWithMessage(w, err, msgFAQFetchFailed)
		return
	}

	data := faqsToResponse(faqs)
	api.JSON(w, http.StatusOK, FAQListResponse{Success: true, Data: data, Count: len(data)})
}

func (h *AdminHandler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	faq, err := h.faqs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logFailure(r, err, "admin get faq")
		api.HandleErrorWithMessage(w, err, msgFAQFetchFailed)
		return
	}
	api.Success(w, http.StatusOK, faqToResponse(faq))
}

func (h *AdminHandler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req CreateFAQRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	if req.DomainID == "" {
		api.Error(w, http.StatusBadRequest, "domainId is required")
		return
	}
	if req.Question == "" {
		api.Error(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.Answer == "" {
		api.Error(w, http.StatusBadRequest, "answer is required")
		return
	}

	status := domain.FAQStatus(req.Status)
	if status != "" && !domain.IsValidFAQStatus(status) {
		api.HandleError(w, domain.ErrInvalidFAQStatus)
		return
	}

	faq, err := h.faqs.Create(r.Context(), service.CreateFAQInput{
		DomainID:   req.DomainID,
		Question:   req.Question,
		Episode:    req.Episode,
		Answer:     req.Answer,
		Status:     status,
		KeywordIDs: req.KeywordIDs,
	})
	if err != nil {
		logFailure(r, err, "admin create faq")
		api.HandleErrorWithMessage(w, err, msgFAQCreateFailed)
		return
	}

	api.Success(w, http.StatusCreated, faqToResponse(faq))
}

func (h *AdminHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	var req UpdateFAQRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	input := service.UpdateFAQInput{
		ID:         chi.URLParam(r, "id"),
		DomainID:   req.DomainID,
		Question:   req.Question,
		Episode:    req.Episode,
		Answer:     req.Answer,
		KeywordIDs: req.KeywordIDs,
	}
	if req.Status != nil {
		status := domain.FAQStatus(*req.Status)
		if !domain.IsValidFAQStatus(status) {
			api.HandleError(w, domain.ErrInvalidFAQStatus)
			return
		}
		input.Status = &status
	}

	faq, err := h.faqs.Update(r.Context(), input)
	if err != nil {
		logFailure(r, err, "admin update faq")
		api.HandleErrorWithMessage(w, err, msgFAQUpdateFailed)
		return
	}

	api.Success(w, http.StatusOK, faqToResponse(faq))
}

func (h *AdminHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.faqs.Delete(r.Context(), id); err != nil {
		logFailure(r, err, "admin delete faq")
		api.HandleErrorWithMessage(w, err, msgFAQDeleteFailed)
		return
	}

	api.Success(w, http.StatusOK, map[string]string{"id": id})
}

// ListDomains handles GET /api/admin/domains, ordered by slug.
func (h *AdminHandler) ListDomains(w http.ResponseWriter, r *http.Request) {
	h.catalog.Domains(w, r)
}

// ListKeywords handles GET /api/admin/keywords, ordered by category.
func (h *AdminHandler) ListKeywords(w http.ResponseWriter, r *http.Request) {
	h.catalog.Keywords(w, r)
}

// ListChatLogs handles GET /api/admin/chat-logs?cursor=&limit=.
func (h *AdminHandler) ListChatLogs(w http.ResponseWriter, r *http.Request) {
	input := service.ListChatLogsInput{Cursor: r.URL.Query().Get("cursor")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			api.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		input.Limit = limit
	}

	out, err := h.chatLogs.List(r.Context(), input)
	if err != nil {
		logFailure(r, err, "admin list chat logs")
		api.HandleErrorWithMessage(w, err, msgChatLogFailed)
		return
	}

	items := make([]*ChatLogResponse, 0, len(out.Items))
	for _, l := range out.Items {
		items = append(items, chatLogToResponse(l))
	}
	api.Success(w, http.StatusOK, ChatLogListResponse{Items: items, Cursor: out.Cursor, HasMore: out.HasMore})
}
