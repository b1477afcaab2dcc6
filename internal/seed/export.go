package seed

import (
	"context"

	"github.com/media-confidence/aifaq/internal/service"
)

// Exporter reads the whole catalog back into a Document.
type Exporter struct {
	faqRepo     service.FAQRepositoryInterface
	domainRepo  service.DomainRepositoryInterface
	keywordRepo service.KeywordRepositoryInterface
}

func NewExporter(faqRepo service.FAQRepositoryInterface, domainRepo service.DomainRepositoryInterface, keywordRepo service.KeywordRepositoryInterface) *Exporter {
	return &Exporter{faqRepo: faqRepo, domainRepo: domainRepo, keywordRepo: keywordRepo}
}

// Export returns every domain, keyword and FAQ (all statuses). FAQs come in
// domain slug then display order, so Apply on the result preserves ordering
// within each domain.
func (e *Exporter) Export(ctx context.Context) (*Document, error) {
	domains, err := e.domainRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	keywords, err := e.keywordRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	faqs, err := e.faqRepo.FindByFilters(ctx, service.FAQFilter{})
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Domains:  make([]DomainEntry, 0, len(domains)),
		Keywords: make([]KeywordEntry, 0, len(keywords)),
		FAQs:     make([]FAQEntry, 0, len(faqs)),
	}
	for _, d := range domains {
		doc.Domains = append(doc.Domains, DomainEntry{
			Slug:        d.Slug,
			Name:        d.Name,
			NameJa:      d.NameJa,
			Icon:        d.Icon,
			Description: d.Description,
		})
	}
	for _, k := range keywords {
		doc.Keywords = append(doc.Keywords, KeywordEntry{
			Slug:        k.Slug,
			Name:        k.Name,
			Category:    k.Category,
			Description: k.Description,
		})
	}
	for _, f := range faqs {
		entry := FAQEntry{
			Question:     f.Question,
			Episode:      f.Episode,
			Answer:       f.Answer,
			Status:       f.Status,
			KeywordSlugs: make([]string, 0, len(f.Keywords)),
		}
		if f.Domain != nil {
			entry.DomainSlug = f.Domain.Slug
		}
		for _, k := range f.Keywords {
			entry.KeywordSlugs = append(entry.KeywordSlugs, k.Slug)
		}
		doc.FAQs = append(doc.FAQs, entry)
	}
	return doc, nil
}
