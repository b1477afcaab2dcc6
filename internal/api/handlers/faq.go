package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/media-confidence/aifaq/internal/api"
	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/service"
	"github.com/rs/zerolog"
)

// FAQService is the read and admin surface the handlers need.
type FAQService interface {
	List(ctx context.Context, filter service.FAQFilter) ([]*domain.FAQ, error)
	Recent(ctx context.Context) ([]*domain.FAQ, error)
	GetByID(ctx context.Context, id string) (*domain.FAQ, error)
	GetWithRelated(ctx context.Context, id string) (*service.FAQDetail, error)
	Create(ctx context.Context, input service.CreateFAQInput) (*domain.FAQ, error)
	Update(ctx context.Context, input service.UpdateFAQInput) (*domain.FAQ, error)
	Delete(ctx context.Context, id string) error
	ListDomains(ctx context.Context) ([]*domain.Domain, error)
	ListKeywords(ctx context.Context) ([]*domain.Keyword, error)
}

// FAQHandler serves the public FAQ API.
type FAQHandler struct {
	svc FAQService
}

func NewFAQHandler(svc FAQService) *FAQHandler {
	return &FAQHandler{svc: svc}
}

// filterFromQuery reads domain, keyword (category) and search parameters.
func filterFromQuery(r *http.Request) service.FAQFilter {
	q := r.URL.Query()
	return service.FAQFilter{
		DomainSlug:      q.Get("domain"),
		KeywordCategory: q.Get("keyword"),
		Search:          q.Get("search"),
	}
}

// List handles GET /api/faq. Status defaults to published.
func (h *FAQHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	filter.Status = domain.FAQStatus(r.URL.Query().Get("status"))
	if filter.Status == "" {
		filter.Status = domain.FAQStatusPublished
	}

	faqs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		logFailure(r, err, "list faqs")
		api.HandleErrorWithMessage(w, err, msgFAQFetchFailed)
		return
	}

	data := faqsToResponse(faqs)
	api.JSON(w, http.StatusOK, FAQListResponse{Success: true, Data: data, Count: len(data)})
}

// Get handles GET /api/faq/{id}.
func (h *FAQHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, "id is required")
		return
	}

	detail, err := h.svc.GetWithRelated(r.Context(), id)
	if err != nil {
		if domain.IsNotFound(err) {
			api.Error(w, http.StatusNotFound, "FAQ が見つかりません")
			return
		}
		logFailure(r, err, "get faq")
		api.HandleErrorWithMessage(w, err, msgFAQFetchFailed)
		return
	}

	api.JSON(w, http.StatusOK, FAQDetailResponse{
		Success: true,
		Data:    faqToResponse(detail.FAQ),
		Related: faqsToResponse(detail.Related),
	})
}

// Domains handles GET /api/domains.
func (h *FAQHandler) Domains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.svc.ListDomains(r.Context())
	if err != nil {
		logFailure(r, err, "list domains")
		api.HandleErrorWithMessage(w, err, msgCatalogFailed)
		return
	}

	out := make([]*DomainResponse, 0, len(domains))
	for _, d := range domains {
		out = append(out, domainToResponse(d))
	}
	api.Success(w, http.StatusOK, out)
}

// Keywords handles GET /api/keywords.
func (h *FAQHandler) Keywords(w http.ResponseWriter, r *http.Request) {
	keywords, err := h.svc.ListKeywords(r.Context())
	if err != nil {
		logFailure(r, err, "list keywords")
		api.HandleErrorWithMessage(w, err, msgCatalogFailed)
		return
	}

	out := make([]*KeywordResponse, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, keywordToResponse(k))
	}
	api.Success(w, http.StatusOK, out)
}

// logFailure records server-side failures only; client errors are already
// visible in the access log status.
func logFailure(r *http.Request, err error, op string) {
	if api.DomainErrorToHTTP(err) < http.StatusInternalServerError {
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Str("operation", op).Msg("request failed")
}
