package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockFAQService struct {
	mock.Mock
}

func (m *MockFAQService) List(ctx context.Context, filter service.FAQFilter) ([]*domain.FAQ, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FAQ), args.Error(1)
}

func (m *MockFAQService) Recent(ctx context.Context) ([]*domain.FAQ, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FAQ), args.Error(1)
}

func (m *MockFAQService) GetByID(ctx context.Context, id string) (*domain.FAQ, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FAQ), args.Error(1)
}

func (m *MockFAQService) GetWithRelated(ctx context.Context, id string) (*service.FAQDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FAQDetail), args.Error(1)
}

func (m *MockFAQService) Create(ctx context.Context, input service.CreateFAQInput) (*domain.FAQ, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FAQ), args.Error(1)
}

func (m *MockFAQService) Update(ctx context.Context, input service.UpdateFAQInput) (*domain.FAQ, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FAQ), args.Error(1)
}

func (m *MockFAQService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFAQService) ListDomains(ctx context.Context) ([]*domain.Domain, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Domain), args.Error(1)
}

func (m *MockFAQService) ListKeywords(ctx context.Context) ([]*domain.Keyword, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Keyword), args.Error(1)
}

type MockChatResponder struct {
	mock.Mock
}

func (m *MockChatResponder) Respond(ctx context.Context, input service.ChatInput) (*service.ChatOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatOutput), args.Error(1)
}

type MockChatLogLister struct {
	mock.Mock
}

func (m *MockChatLogLister) List(ctx context.Context, input service.ListChatLogsInput) (*service.ListChatLogsOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListChatLogsOutput), args.Error(1)
}

type staticCatalog struct {
	catalog *domain.Catalog
}

func (s staticCatalog) Catalog() *domain.Catalog {
	return s.catalog
}

var salesDomain = &domain.Domain{
	ID:     "d-sales",
	Slug:   "sales",
	Name:   "Sales",
	NameJa: "営業",
	Icon:   "Briefcase",
}

func newTestFAQ(id string) *domain.FAQ {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.FAQ{
		ID:        id,
		DomainID:  salesDomain.ID,
		Question:  "見積もり作成に時間がかかる",
		Episode:   "毎回テンプレートを探している",
		Answer:    "過去案件から下書きを自動生成する",
		Status:    domain.FAQStatusPublished,
		SortOrder: 1,
		CreatedAt: ts,
		UpdatedAt: ts,
		Domain:    salesDomain,
		Keywords: []*domain.Keyword{
			{ID: "k-1", Slug: "auto-draft", Name: "自動下書き", Category: "自動生成"},
		},
	}
}

// withURLParam attaches a chi route param so handlers can be called directly.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
