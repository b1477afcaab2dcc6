package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/media-confidence/aifaq/internal/api"
	"github.com/media-confidence/aifaq/internal/api/handlers"
	"github.com/media-confidence/aifaq/internal/api/middleware"
	"github.com/rs/zerolog"
)

const maxBodyBytes int64 = 1 << 20

type RouterConfig struct {
	Logger        zerolog.Logger
	AdminUsername string
	AdminPassword string
	// ChatLimiter throttles POST /api/chat per client; nil disables it.
	ChatLimiter middleware.Allower

	FAQHandler   *handlers.FAQHandler
	AdminHandler *handlers.AdminHandler
	ChatHandler  *handlers.ChatHandler
	PageHandler  *handlers.PageHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/faq", cfg.FAQHandler.List)
		r.Get("/faq/{id}", cfg.FAQHandler.Get)
		r.Get("/domains", cfg.FAQHandler.Domains)
		r.Get("/keywords", cfg.FAQHandler.Keywords)

		r.Group(func(r chi.Router) {
			if cfg.ChatLimiter != nil {
				r.Use(middleware.RateLimit(cfg.ChatLimiter))
			}
			r.Post("/chat", cfg.ChatHandler.Chat)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.AdminUsername, cfg.AdminPassword))

			r.Get("/faq", cfg.AdminHandler.ListFAQs)
			r.Post("/faq", cfg.AdminHandler.CreateFAQ)
			r.Get("/faq/{id}", cfg.AdminHandler.GetFAQ)
			r.Patch("/faq/{id}", cfg.AdminHandler.UpdateFAQ)
			r.Delete("/faq/{id}", cfg.AdminHandler.DeleteFAQ)
			r.Get("/domains", cfg.AdminHandler.ListDomains)
			r.Get("/keywords", cfg.AdminHandler.ListKeywords)
			r.Get("/chat-logs", cfg.AdminHandler.ListChatLogs)
		})
	})

	r.Get("/", cfg.PageHandler.Home)
	r.Get("/faq", cfg.PageHandler.FAQList)
	r.Get("/faq/{id}", cfg.PageHandler.FAQDetail)
	r.Get("/chat", cfg.PageHandler.Chat)
	r.With(middleware.AdminAuth(cfg.AdminUsername, cfg.AdminPassword)).Get("/admin", cfg.PageHandler.Admin)

	return r
}
