//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/media-confidence/aifaq/internal/api/handlers"
	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/repository"
	"github.com/media-confidence/aifaq/internal/seed"
	"github.com/media-confidence/aifaq/internal/server"
	"github.com/media-confidence/aifaq/internal/service"
	"github.com/media-confidence/aifaq/internal/testutil"
	"github.com/rs/zerolog"
)

const (
	adminUser = "admin"
	adminPass = "e2e-secret"
)

const seedYAML = `
domains:
  - slug: sales
    name: Sales
    nameJa: 営業
    icon: Briefcase
  - slug: marketing
    name: Marketing
    nameJa: マーケティング
    icon: Megaphone
keywords:
  - slug: minutes-summary
    name: 議事録要約
    category: 効率化
  - slug: quote-draft
    name: 見積下書き
    category: 自動生成
  - slug: lead-scoring
    name: リードスコアリング
    category: 可視化
faqs:
  - domainSlug: sales
    question: 商談のたびに議事録作成で残業しています
    answer: AIで録音を文字起こしし、要点を自動で要約します。
    keywordSlugs: [minutes-summary]
  - domainSlug: sales
    question: 見積もり作成に時間がかかる
    answer: 過去案件から見積の下書きを自動生成します。
    keywordSlugs: [quote-draft]
  - domainSlug: sales
    question: 提案書の品質が担当者でばらつく
    answer: 勝ちパターンを学習したテンプレートで平準化します。
    keywordSlugs: [quote-draft, minutes-summary]
  - domainSlug: sales
    question: 失注理由が整理できていない
    answer: 商談記録を分類して傾向を可視化します。
    keywordSlugs: [lead-scoring]
  - domainSlug: sales
    question: 下書き中のエントリ
    answer: 非公開です。
    status: draft
    keywordSlugs: []
  - domainSlug: marketing
    question: 見込み客の優先順位がつけられません
    answer: 行動履歴からAIでスコアリングし、優先度を可視化します。
    keywordSlugs: [lead-scoring]
`

// scriptedRelay replies with a fixed text and records what it was sent.
type scriptedRelay struct {
	mu      sync.Mutex
	reply   string
	systems []string
}

func (r *scriptedRelay) Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.systems = append(r.systems, system)
	return r.reply, nil
}

func (r *scriptedRelay) setReply(reply string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reply = reply
}

// E2ETestEnv is a seeded database behind the real router.
type E2ETestEnv struct {
	T          *testing.T
	Ctx        context.Context
	Pool       *pgxpool.Pool
	ServerURL  string
	Relay      *scriptedRelay
	Catalog    *service.CatalogService
	HTTPClient *http.Client
}

func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	t.Helper()
	ctx := zerolog.New(io.Discard).WithContext(context.Background())

	pool := testutil.NewDatabase(ctx, t)

	doc, err := seed.Parse([]byte(seedYAML))
	if err != nil {
		t.Fatalf("parse seed: %v", err)
	}
	txRunner := repository.NewTxRunner(pool)
	if _, err := seed.NewSeeder(txRunner, &service.DefaultUUIDGenerator{}).Apply(ctx, doc, seed.Options{}); err != nil {
		t.Fatalf("apply seed: %v", err)
	}

	faqRepo := repository.NewFAQRepository(pool)
	domainRepo := repository.NewDomainRepository(pool)
	keywordRepo := repository.NewKeywordRepository(pool)
	chatLogRepo := repository.NewChatLogRepository(pool)

	catalog := service.NewCatalogService(domainRepo, keywordRepo)
	if err := catalog.Refresh(ctx); err != nil {
		t.Fatalf("refresh catalog: %v", err)
	}

	relay := &scriptedRelay{reply: "こんにちは！どんなことでお困りですか？"}
	faqSvc := service.NewFAQService(faqRepo, domainRepo, keywordRepo, txRunner)
	chatSvc := service.NewChatService(relay, catalog, service.NewMatchResolver(faqRepo), service.WithChatLogs(chatLogRepo))

	pages, err := handlers.NewPageHandler(faqSvc, catalog)
	if err != nil {
		t.Fatalf("page handler: %v", err)
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:        zerolog.New(io.Discard),
		AdminUsername: adminUser,
		AdminPassword: adminPass,
		FAQHandler:    handlers.NewFAQHandler(faqSvc),
		AdminHandler:  handlers.NewAdminHandler(faqSvc, service.NewChatLogService(chatLogRepo)),
		ChatHandler:   handlers.NewChatHandler(chatSvc),
		PageHandler:   pages,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &E2ETestEnv{
		T:          t,
		Ctx:        ctx,
		Pool:       pool,
		ServerURL:  srv.URL,
		Relay:      relay,
		Catalog:    catalog,
		HTTPClient: srv.Client(),
	}
}

// Do sends a request and decodes a JSON response into out when out is non-nil.
func (e *E2ETestEnv) Do(method, path string, body any, admin bool, out any) int {
	e.T.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			e.T.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(e.Ctx, method, e.ServerURL+path, reader)
	if err != nil {
		e.T.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.SetBasicAuth(adminUser, adminPass)
	}

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		e.T.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		e.T.Fatalf("read body: %v", err)
	}
	if out != nil && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, out); err != nil {
			e.T.Fatalf("decode %s %s: %v\n%s", method, path, err, raw)
		}
	}
	return resp.StatusCode
}

// FindFAQ returns the published FAQ with the given question.
func (e *E2ETestEnv) FindFAQ(question string) handlers.FAQResponse {
	e.T.Helper()

	var list handlers.FAQListResponse
	e.Do(http.MethodGet, "/api/faq", nil, false, &list)
	for _, f := range list.Data {
		if f.Question == question {
			return *f
		}
	}
	e.T.Fatalf("faq %q not found", question)
	return handlers.FAQResponse{}
}
