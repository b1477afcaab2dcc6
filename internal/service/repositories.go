package service

import (
	"context"

	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/pagination"
)

// FAQFilter narrows FAQ listings. Every field is optional; set fields AND-compose.
type FAQFilter struct {
	DomainSlug      string
	KeywordCategory string
	// Search is a case-insensitive substring match against question or answer.
	Search string
	// Status restricts to one status; empty means any status.
	Status domain.FAQStatus
}

// FAQRepositoryInterface defines the repository interface for FAQ persistence
type FAQRepositoryInterface interface {
	Create(ctx context.Context, f *domain.FAQ) error
	GetByID(ctx context.Context, id string) (*domain.FAQ, error)
	Update(ctx context.Context, f *domain.FAQ) error
	Delete(ctx context.Context, id string) error
	NextSortOrder(ctx context.Context, domainID string) (int, error)
	ReplaceKeywords(ctx context.Context, faqID string, keywordIDs []string) error
	DeleteKeywords(ctx context.Context, faqID string) error
	FindPublishedByDomainSlug(ctx context.Context, slug, excludeID string, limit int) ([]*domain.FAQ, error)
	FindByFilters(ctx context.Context, filter FAQFilter) ([]*domain.FAQ, error)
	ListRecentPublished(ctx context.Context, limit int) ([]*domain.FAQ, error)
	DeleteAll(ctx context.Context) error
}

// DomainRepositoryInterface defines the repository interface for domain persistence
type DomainRepositoryInterface interface {
	List(ctx context.Context) ([]*domain.Domain, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Domain, error)
	Upsert(ctx context.Context, d *domain.Domain) error
	DeleteAll(ctx context.Context) error
}

// KeywordRepositoryInterface defines the repository interface for keyword persistence
type KeywordRepositoryInterface interface {
	List(ctx context.Context) ([]*domain.Keyword, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Keyword, error)
	Upsert(ctx context.Context, k *domain.Keyword) error
	DeleteAll(ctx context.Context) error
}

type ChatLogPageResult struct {
	Items      []*domain.ChatLog
	NextCursor string
	HasMore    bool
}

// ChatLogRepositoryInterface defines the repository interface for chat logs
type ChatLogRepositoryInterface interface {
	Create(ctx context.Context, log *domain.ChatLog) error
	ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) (*ChatLogPageResult, error)
}
