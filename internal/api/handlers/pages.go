package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

const siteTitle = "それ、AIで解決できるかも。"

var pageNames = []string{"home", "faq_list", "faq_detail", "chat", "admin", "error"}

// CatalogSource exposes the current domain and category catalog.
type CatalogSource interface {
	Catalog() *domain.Catalog
}

// PageHandler renders the server-side HTML pages.
type PageHandler struct {
	faqs      FAQService
	catalog   CatalogSource
	templates map[string]*template.Template
}

func NewPageHandler(faqs FAQService, catalog CatalogSource) (*PageHandler, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		templates[name] = t
	}

	return &PageHandler{faqs: faqs, catalog: catalog, templates: templates}, nil
}

type pageData struct {
	Title string
	Body  any
}

type homePage struct {
	Recent     []*domain.FAQ
	Domains    []domain.CatalogDomain
	Categories []string
}

type faqListPage struct {
	FAQs       []*domain.FAQ
	Domains    []domain.CatalogDomain
	Categories []string
	Domain     string
	Keyword    string
	Search     string
}

type faqDetailPage struct {
	FAQ     *domain.FAQ
	Related []*domain.FAQ
}

type errorPage struct {
	Status  int
	Message string
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	recent, err := h.faqs.Recent(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	c := h.catalog.Catalog()
	h.render(w, r, http.StatusOK, "home", siteTitle, homePage{
		Recent:     recent,
		Domains:    c.Domains,
		Categories: c.Categories,
	})
}

// FAQList handles GET /faq. Only published entries are shown.
func (h *PageHandler) FAQList(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	filter.Status = domain.FAQStatusPublished

	faqs, err := h.faqs.List(r.Context(), filter)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	c := h.catalog.Catalog()
	h.render(w, r, http.StatusOK, "faq_list", "Q&A一覧 | "+siteTitle, faqListPage{
		FAQs:       faqs,
		Domains:    c.Domains,
		Categories: c.Categories,
		Domain:     filter.DomainSlug,
		Keyword:    filter.KeywordCategory,
		Search:     filter.Search,
	})
}

// FAQDetail handles GET /faq/{id}.
func (h *PageHandler) FAQDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.faqs.GetWithRelated(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "faq_detail", detail.FAQ.Question+" | "+siteTitle, faqDetailPage{
		FAQ:     detail.FAQ,
		Related: detail.Related,
	})
}

// Chat handles GET /chat. The page posts to /api/chat.
func (h *PageHandler) Chat(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "chat", "AIに相談 | "+siteTitle, nil)
}

// Admin handles GET /admin. The page calls the admin API.
func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin", "管理画面 | "+siteTitle, nil)
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsNotFound(err) {
		h.render(w, r, http.StatusNotFound, "error", "ページが見つかりません", errorPage{
			Status:  http.StatusNotFound,
			Message: "お探しのページは見つかりませんでした。",
		})
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("page render failed")
	h.render(w, r, http.StatusInternalServerError, "error", "エラー", errorPage{
		Status:  http.StatusInternalServerError,
		Message: "ページの表示に失敗しました。",
	})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, body any) {
	var buf bytes.Buffer
	if err := h.templates[name].ExecuteTemplate(&buf, "layout", pageData{Title: title, Body: body}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("template execution failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

