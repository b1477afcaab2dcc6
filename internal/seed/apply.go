package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/service"
	"github.com/rs/zerolog"
)

// Result counts what Apply wrote.
type Result struct {
	Domains  int
	Keywords int
	FAQs     int
	Skipped  int
}

type Options struct {
	// Reset deletes every FAQ, keyword and domain before loading.
	Reset bool
}

// Seeder writes documents to the store in a single transaction.
type Seeder struct {
	txRunner service.TxRunner
	uuidGen  service.UUIDGenerator
	now      func() time.Time
}

func NewSeeder(txRunner service.TxRunner, uuidGen service.UUIDGenerator) *Seeder {
	return &Seeder{txRunner: txRunner, uuidGen: uuidGen, now: time.Now}
}

// Apply upserts domains and keywords by slug, then creates each FAQ with
// sort order equal to its position in the document. FAQs naming an unknown
// domain are skipped; unknown keyword slugs are dropped.
func (s *Seeder) Apply(ctx context.Context, doc *Document, opts Options) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	result := &Result{}

	err := s.txRunner.WithTx(ctx, func(repos service.TxRepositories) error {
		if opts.Reset {
			if err := repos.FAQs().DeleteAll(ctx); err != nil {
				return fmt.Errorf("reset faqs: %w", err)
			}
			if err := repos.Keywords().DeleteAll(ctx); err != nil {
				return fmt.Errorf("reset keywords: %w", err)
			}
			if err := repos.Domains().DeleteAll(ctx); err != nil {
				return fmt.Errorf("reset domains: %w", err)
			}
		}

		domainIDs := make(map[string]string, len(doc.Domains))
		for _, e := range doc.Domains {
			d := &domain.Domain{
				ID:          s.uuidGen.NewString(),
				Slug:        e.Slug,
				Name:        e.Name,
				NameJa:      e.NameJa,
				Icon:        e.Icon,
				Description: e.Description,
			}
			if err := repos.Domains().Upsert(ctx, d); err != nil {
				return fmt.Errorf("domain %q: %w", e.Slug, err)
			}
			domainIDs[d.Slug] = d.ID
			result.Domains++
		}

		keywordIDs := make(map[string]string, len(doc.Keywords))
		for _, e := range doc.Keywords {
			k := &domain.Keyword{
				ID:          s.uuidGen.NewString(),
				Slug:        e.Slug,
				Name:        e.Name,
				Category:    e.Category,
				Description: e.Description,
			}
			if err := repos.Keywords().Upsert(ctx, k); err != nil {
				return fmt.Errorf("keyword %q: %w", e.Slug, err)
			}
			keywordIDs[k.Slug] = k.ID
			result.Keywords++
		}

		for i, e := range doc.FAQs {
			domainID, ok := domainIDs[e.DomainSlug]
			if !ok {
				d, err := repos.Domains().GetBySlug(ctx, e.DomainSlug)
				if err != nil {
					if domain.IsNotFound(err) {
						logger.Warn().Str("domain_slug", e.DomainSlug).Int("index", i).Msg("seed: domain not found, skipping faq")
						result.Skipped++
						continue
					}
					return err
				}
				domainID = d.ID
				domainIDs[e.DomainSlug] = domainID
			}

			ids, err := s.resolveKeywords(ctx, repos, keywordIDs, e.KeywordSlugs, i)
			if err != nil {
				return err
			}

			status := e.Status
			if status == "" {
				status = domain.FAQStatusPublished
			}
			now := s.now().UTC()
			f := &domain.FAQ{
				ID:        s.uuidGen.NewString(),
				DomainID:  domainID,
				Question:  e.Question,
				Episode:   e.Episode,
				Answer:    e.Answer,
				Status:    status,
				SortOrder: i,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := repos.FAQs().Create(ctx, f); err != nil {
				return fmt.Errorf("faqs[%d]: %w", i, err)
			}
			if len(ids) > 0 {
				if err := repos.FAQs().ReplaceKeywords(ctx, f.ID, ids); err != nil {
					return fmt.Errorf("faqs[%d] keywords: %w", i, err)
				}
			}
			result.FAQs++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Seeder) resolveKeywords(ctx context.Context, repos service.TxRepositories, known map[string]string, slugs []string, index int) ([]string, error) {
	ids := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		id, ok := known[slug]
		if !ok {
			k, err := repos.Keywords().GetBySlug(ctx, slug)
			if err != nil {
				if domain.IsNotFound(err) {
					zerolog.Ctx(ctx).Warn().Str("keyword_slug", slug).Int("index", index).Msg("seed: keyword not found, dropping")
					continue
				}
				return nil, err
			}
			id = k.ID
			known[slug] = id
		}
		ids = append(ids, id)
	}
	return ids, nil
}
