package service

import (
	"context"

	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/pagination"
	"github.com/stretchr/testify/mock"
)

// MockFAQRepository is a mock implementation of FAQRepositoryInterface
type MockFAQRepository struct {
	mock.Mock
}

func (m *MockFAQRepository) Create(ctx context.Context, f *domain.FAQ) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFAQRepository) GetByID(ctx context.Context, id string) (*domain.FAQ, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FAQ), args.Error(1)
}

func (m *MockFAQRepository) Update(ctx context.Context, f *domain.FAQ) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFAQRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFAQRepository) NextSortOrder(ctx context.Context, domainID string) (int, error) {
	args := m.Called(ctx, domainID)
	return args.Int(0), args.Error(1)
}

func (m *MockFAQRepository) ReplaceKeywords(ctx context.Context, faqID string, keywordIDs []string) error {
	args := m.Called(ctx, faqID, keywordIDs)
	return args.Error(0)
}

func (m *MockFAQRepository) DeleteKeywords(ctx context.Context, faqID string) error {
	args := m.Called(ctx, faqID)
	return args.Error(0)
}

func (m *MockFAQRepository) FindPublishedByDomainSlug(ctx context.Context, slug, excludeID string, limit int) ([]*domain.FAQ, error) {
	args := m.Called(ctx, slug, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FAQ), args.Error(1)
}

func (m *MockFAQRepository) FindByFilters(ctx context.Context, filter FAQFilter) ([]*domain.FAQ, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FAQ), args.Error(1)
}

func (m *MockFAQRepository) ListRecentPublished(ctx context.Context, limit int) ([]*domain.FAQ, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FAQ), args.Error(1)
}

// MockDomainRepository is a mock implementation of DomainRepositoryInterface
type MockDomainRepository struct {
	mock.Mock
}

func (m *MockDomainRepository) List(ctx context.Context) ([]*domain.Domain, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Domain), args.Error(1)
}

func (m *MockDomainRepository) GetBySlug(ctx context.Context, slug string) (*domain.Domain, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Domain), args.Error(1)
}

func (m *MockDomainRepository) Upsert(ctx context.Context, d *domain.Domain) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// MockKeywordRepository is a mock implementation of KeywordRepositoryInterface
type MockKeywordRepository struct {
	mock.Mock
}

func (m *MockKeywordRepository) List(ctx context.Context) ([]*domain.Keyword, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Keyword), args.Error(1)
}

func (m *MockKeywordRepository) GetBySlug(ctx context.Context, slug string) (*domain.Keyword, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Keyword), args.Error(1)
}

func (m *MockKeywordRepository) Upsert(ctx context.Context, k *domain.Keyword) error {
	args := m.Called(ctx, k)
	return args.Error(0)
}

// MockChatLogRepository is a mock implementation of ChatLogRepositoryInterface
type MockChatLogRepository struct {
	mock.Mock
}

func (m *MockChatLogRepository) Create(ctx context.Context, log *domain.ChatLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockChatLogRepository) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) (*ChatLogPageResult, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ChatLogPageResult), args.Error(1)
}

// MockRelay is a mock implementation of Relay
type MockRelay struct {
	mock.Mock
}

func (m *MockRelay) Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error) {
	args := m.Called(ctx, system, messages)
	return args.String(0), args.Error(1)
}

type testTxRepos struct {
	faqs     FAQRepositoryInterface
	domains  DomainRepositoryInterface
	keywords KeywordRepositoryInterface
}

func (t *testTxRepos) FAQs() FAQRepositoryInterface {
	return t.faqs
}

func (t *testTxRepos) Domains() DomainRepositoryInterface {
	return t.domains
}

func (t *testTxRepos) Keywords() KeywordRepositoryInterface {
	return t.keywords
}

type testTxRunner struct {
	repos  TxRepositories
	called int
}

func (t *testTxRunner) WithTx(ctx context.Context, fn func(repos TxRepositories) error) error {
	t.called++
	return fn(t.repos)
}

type fixedUUIDGen struct {
	ids []string
	i   int
}

func (g *fixedUUIDGen) NewString() string {
	id := g.ids[g.i%len(g.ids)]
	g.i++
	return id
}

func (m *MockFAQRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDomainRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockKeywordRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
