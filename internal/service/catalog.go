package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/media-confidence/aifaq/internal/domain"
)

// CatalogService holds the current catalog snapshot and the system prompt
// derived from it. Refresh swaps both at once.
type CatalogService struct {
	domainRepo  DomainRepositoryInterface
	keywordRepo KeywordRepositoryInterface

	mu      sync.RWMutex
	catalog *domain.Catalog
	prompt  string
}

// NewCatalogService starts with the default catalog until Refresh succeeds.
func NewCatalogService(domainRepo DomainRepositoryInterface, keywordRepo KeywordRepositoryInterface) *CatalogService {
	c := domain.DefaultCatalog()
	return &CatalogService{
		domainRepo:  domainRepo,
		keywordRepo: keywordRepo,
		catalog:     c,
		prompt:      BuildSystemPrompt(c),
	}
}

// Refresh reloads domains and keywords from the store. An empty store keeps
// the default catalog; a store without keywords keeps the default categories.
func (s *CatalogService) Refresh(ctx context.Context) error {
	domains, err := s.domainRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list domains: %w", err)
	}
	keywords, err := s.keywordRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list keywords: %w", err)
	}

	c := domain.NewCatalog(domains, keywords)
	switch {
	case c.IsEmpty():
		c = domain.DefaultCatalog()
	case len(c.Categories) == 0:
		c = domain.NewCatalogFromParts(c.Domains, domain.DefaultCatalog().Categories)
	}
	prompt := BuildSystemPrompt(c)

	s.mu.Lock()
	s.catalog = c
	s.prompt = prompt
	s.mu.Unlock()
	return nil
}

// ProcessJobs lets the catalog be refreshed by a jobs.Worker.
func (s *CatalogService) ProcessJobs(ctx context.Context) error {
	return s.Refresh(ctx)
}

func (s *CatalogService) Catalog() *domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *CatalogService) SystemPrompt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prompt
}
