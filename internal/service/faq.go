package service

import (
	"context"
	"time"

	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/telemetry"
)

// RecentFAQLimit is how many entries the top page shows.
const RecentFAQLimit = 8

// FAQService handles listing and admin mutation of FAQ entries
type FAQService struct {
	faqRepo     FAQRepositoryInterface
	domainRepo  DomainRepositoryInterface
	keywordRepo KeywordRepositoryInterface
	txRunner    TxRunner
	resolver    *MatchResolver
	uuidGen     UUIDGenerator
}

// NewFAQService creates a new FAQService instance
func NewFAQService(
	faqRepo FAQRepositoryInterface,
	domainRepo DomainRepositoryInterface,
	keywordRepo KeywordRepositoryInterface,
	txRunner TxRunner,
) *FAQService {
	return NewFAQServiceWithUUIDGen(faqRepo, domainRepo, keywordRepo, txRunner, &DefaultUUIDGenerator{})
}

// NewFAQServiceWithUUIDGen creates a new FAQService with custom UUID generator (for testing)
func NewFAQServiceWithUUIDGen(
	faqRepo FAQRepositoryInterface,
	domainRepo DomainRepositoryInterface,
	keywordRepo KeywordRepositoryInterface,
	txRunner TxRunner,
	uuidGen UUIDGenerator,
) *FAQService {
	return &FAQService{
		faqRepo:     faqRepo,
		domainRepo:  domainRepo,
		keywordRepo: keywordRepo,
		txRunner:    txRunner,
		resolver:    NewMatchResolver(faqRepo),
		uuidGen:     uuidGen,
	}
}

// CreateFAQInput represents the input for creating a FAQ
type CreateFAQInput struct {
	DomainID   string
	Question   string
	Episode    string
	Answer     string
	Status     domain.FAQStatus
	KeywordIDs []string
}

// UpdateFAQInput is a partial update; nil fields are left unchanged.
// A non-nil KeywordIDs replaces the whole keyword set.
type UpdateFAQInput struct {
	ID         string
	DomainID   *string
	Question   *string
	Episode    *string
	Answer     *string
	Status     *domain.FAQStatus
	KeywordIDs *[]string
}

// FAQDetail is a FAQ plus its related entries
type FAQDetail struct {
	FAQ     *domain.FAQ
	Related []*domain.FAQ
}

// List returns FAQs matching filter, ordered by domain slug then sort order.
func (s *FAQService) List(ctx context.Context, filter FAQFilter) ([]*domain.FAQ, error) {
	ctx, span := telemetry.StartSpan(ctx, "FAQService.List", telemetry.SpanAttributes{
		DomainSlug: filter.DomainSlug,
		Operation:  "list",
	})
	defer span.End()

	if filter.Status != "" && !domain.IsValidFAQStatus(filter.Status) {
		return nil, domain.ErrInvalidFAQStatus
	}

	faqs, err := s.faqRepo.FindByFilters(ctx, filter)
	if err != nil {
		return nil, err
	}
	if faqs == nil {
		faqs = []*domain.FAQ{}
	}
	return faqs, nil
}

// Recent returns the newest published FAQs.
func (s *FAQService) Recent(ctx context.Context) ([]*domain.FAQ, error) {
	return s.faqRepo.ListRecentPublished(ctx, RecentFAQLimit)
}

// GetByID retrieves a FAQ with its domain and keywords
func (s *FAQService) GetByID(ctx context.Context, id string) (*domain.FAQ, error) {
	ctx, span := telemetry.StartSpan(ctx, "FAQService.GetByID", telemetry.SpanAttributes{
		FAQID:     id,
		Operation: "get",
	})
	defer span.End()

	return s.faqRepo.GetByID(ctx, id)
}

// GetWithRelated retrieves a FAQ and up to three other published FAQs in its domain.
func (s *FAQService) GetWithRelated(ctx context.Context, id string) (*FAQDetail, error) {
	faq, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.resolver.Related(ctx, faq)
	if err != nil {
		return nil, err
	}
	return &FAQDetail{FAQ: faq, Related: related}, nil
}

// Create inserts a FAQ at the end of its domain's order and attaches keywords
// in one transaction.
func (s *FAQService) Create(ctx context.Context, input CreateFAQInput) (*domain.FAQ, error) {
	ctx, span := telemetry.StartSpan(ctx, "FAQService.Create", telemetry.SpanAttributes{
		Operation: "create",
	})
	defer span.End()

	status := input.Status
	if status == "" {
		status = domain.FAQStatusDraft
	}

	now := time.Now().UTC()
	faq := &domain.FAQ{
		ID:        s.uuidGen.NewString(),
		DomainID:  input.DomainID,
		Question:  input.Question,
		Episode:   input.Episode,
		Answer:    input.Answer,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := domain.ValidateFAQ(faq); err != nil {
		return nil, err
	}

	err := s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		order, err := repos.FAQs().NextSortOrder(ctx, faq.DomainID)
		if err != nil {
			return err
		}
		faq.SortOrder = order

		if err := repos.FAQs().Create(ctx, faq); err != nil {
			return err
		}
		if len(input.KeywordIDs) == 0 {
			return nil
		}
		return repos.FAQs().ReplaceKeywords(ctx, faq.ID, input.KeywordIDs)
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return s.faqRepo.GetByID(ctx, faq.ID)
}

// Update applies a partial update. Keyword replacement happens in the same
// transaction so readers never see a half-updated set.
func (s *FAQService) Update(ctx context.Context, input UpdateFAQInput) (*domain.FAQ, error) {
	ctx, span := telemetry.StartSpan(ctx, "FAQService.Update", telemetry.SpanAttributes{
		FAQID:     input.ID,
		Operation: "update",
	})
	defer span.End()

	err := s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		faq, err := repos.FAQs().GetByID(ctx, input.ID)
		if err != nil {
			return err
		}

		if input.DomainID != nil {
			faq.DomainID = *input.DomainID
		}
		if input.Question != nil {
			faq.Question = *input.Question
		}
		if input.Episode != nil {
			faq.Episode = *input.Episode
		}
		if input.Answer != nil {
			faq.Answer = *input.Answer
		}
		if input.Status != nil {
			faq.Status = *input.Status
		}
		faq.UpdatedAt = time.Now().UTC()

		if err := domain.ValidateFAQ(faq); err != nil {
			return err
		}
		if err := repos.FAQs().Update(ctx, faq); err != nil {
			return err
		}

		if input.KeywordIDs != nil {
			return repos.FAQs().ReplaceKeywords(ctx, faq.ID, *input.KeywordIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.faqRepo.GetByID(ctx, input.ID)
}

// Delete removes keyword associations and then the FAQ itself.
func (s *FAQService) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "FAQService.Delete", telemetry.SpanAttributes{
		FAQID:     id,
		Operation: "delete",
	})
	defer span.End()

	return s.txRunner.WithTx(ctx, func(repos TxRepositories) error {
		if err := repos.FAQs().DeleteKeywords(ctx, id); err != nil {
			return err
		}
		return repos.FAQs().Delete(ctx, id)
	})
}

// ListDomains returns all domains ordered by slug
func (s *FAQService) ListDomains(ctx context.Context) ([]*domain.Domain, error) {
	return s.domainRepo.List(ctx)
}

// ListKeywords returns all keywords ordered by category
func (s *FAQService) ListKeywords(ctx context.Context) ([]*domain.Keyword, error) {
	return s.keywordRepo.List(ctx)
}
