package service

import (
	"context"
	"fmt"

	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/telemetry"
)

// DefaultMatchLimit caps how many FAQs a diagnosis or a detail page surfaces.
const DefaultMatchLimit = 3

// PublishedFAQFinder is the read query the resolver depends on.
type PublishedFAQFinder interface {
	FindPublishedByDomainSlug(ctx context.Context, slug, excludeID string, limit int) ([]*domain.FAQ, error)
}

// MatchResolver retrieves published FAQs for a domain, ordered by per-domain
// sort order and capped.
type MatchResolver struct {
	finder PublishedFAQFinder
	limit  int
}

func NewMatchResolver(finder PublishedFAQFinder) *MatchResolver {
	return &MatchResolver{finder: finder, limit: DefaultMatchLimit}
}

// Match returns the FAQs for a diagnosis. An absent diagnosis, an empty
// domain or an unknown slug all yield an empty slice.
func (m *MatchResolver) Match(ctx context.Context, d *domain.Diagnosis) ([]*domain.FAQ, error) {
	if d == nil || d.Domain == "" {
		return []*domain.FAQ{}, nil
	}

	ctx, span := telemetry.StartSpan(ctx, "MatchResolver.Match", telemetry.SpanAttributes{
		DomainSlug: d.Domain,
		Operation:  "match",
	})
	defer span.End()

	return m.find(ctx, d.Domain, "")
}

// Related returns other published FAQs in the same domain as faq.
func (m *MatchResolver) Related(ctx context.Context, faq *domain.FAQ) ([]*domain.FAQ, error) {
	if faq == nil || faq.Domain == nil || faq.Domain.Slug == "" {
		return []*domain.FAQ{}, nil
	}
	return m.find(ctx, faq.Domain.Slug, faq.ID)
}

func (m *MatchResolver) find(ctx context.Context, slug, excludeID string) ([]*domain.FAQ, error) {
	faqs, err := m.finder.FindPublishedByDomainSlug(ctx, slug, excludeID, m.limit)
	if err != nil {
		return nil, fmt.Errorf("find published faqs for %q: %w", slug, err)
	}
	if faqs == nil {
		faqs = []*domain.FAQ{}
	}
	if len(faqs) > m.limit {
		faqs = faqs[:m.limit]
	}
	return faqs, nil
}
