package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/service"
)

const faqSelect = `SELECT f.id, f.domain_id, f.question, f.episode, f.answer, f.status, f.sort_order, f.created_at, f.updated_at,
       d.id, d.slug, d.name, d.name_ja, d.icon, d.description
  FROM faqs f
  JOIN domains d ON d.id = f.domain_id`

type FAQRepository struct {
	db dbtx
}

func NewFAQRepository(pool *pgxpool.Pool) *FAQRepository {
	return &FAQRepository{db: pool}
}

func NewFAQRepositoryWithTx(tx pgx.Tx) *FAQRepository {
	return &FAQRepository{db: tx}
}

func (r *FAQRepository) Create(ctx context.Context, f *domain.FAQ) error {
	now := time.Now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = f.CreatedAt
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO faqs (id, domain_id, question, episode, answer, status, sort_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		f.ID, f.DomainID, f.Question, nullableString(f.Episode), f.Answer, f.Status, f.SortOrder, f.CreatedAt, f.UpdatedAt,
	)
	return translateWriteError(err)
}

// GetByID returns the FAQ with its domain and keywords, whatever its status.
func (r *FAQRepository) GetByID(ctx context.Context, id string) (*domain.FAQ, error) {
	rows, err := r.db.Query(ctx, faqSelect+` WHERE f.id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrFAQNotFound
		}
		return nil, err
	}
	faqs, err := r.collect(ctx, rows)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrFAQNotFound
		}
		return nil, err
	}
	if len(faqs) == 0 {
		return nil, domain.ErrFAQNotFound
	}
	return faqs[0], nil
}

func (r *FAQRepository) Update(ctx context.Context, f *domain.FAQ) error {
	f.UpdatedAt = time.Now().UTC()
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE faqs
		 SET domain_id = $1, question = $2, episode = $3, answer = $4, status = $5, sort_order = $6, updated_at = $7
		 WHERE id = $8`,
		f.DomainID, f.Question, nullableString(f.Episode), f.Answer, f.Status, f.SortOrder, f.UpdatedAt, f.ID,
	)
	if err != nil {
		return translateWriteError(err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrFAQNotFound
	}
	return nil
}

func (r *FAQRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrFAQNotFound
		}
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrFAQNotFound
	}
	return nil
}

// NextSortOrder returns one past the highest sort order in the domain, or 1
// for an empty domain.
func (r *FAQRepository) NextSortOrder(ctx context.Context, domainID string) (int, error) {
	var next int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(sort_order), 0) + 1 FROM faqs WHERE domain_id = $1`,
		domainID,
	).Scan(&next)
	if err != nil {
		return 0, translateWriteError(err)
	}
	return next, nil
}

// ReplaceKeywords deletes the FAQ's associations and inserts the given set.
// Duplicate ids collapse. Callers run it inside a transaction.
func (r *FAQRepository) ReplaceKeywords(ctx context.Context, faqID string, keywordIDs []string) error {
	if err := r.DeleteKeywords(ctx, faqID); err != nil {
		return err
	}

	for _, keywordID := range keywordIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO faq_keywords (faq_id, keyword_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`,
			faqID, keywordID,
		)
		if err != nil {
			return translateWriteError(err)
		}
	}
	return nil
}

func (r *FAQRepository) DeleteKeywords(ctx context.Context, faqID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM faq_keywords WHERE faq_id = $1`, faqID)
	if err != nil && isNotFound(err) {
		return domain.ErrFAQNotFound
	}
	return err
}

// DeleteAll removes every FAQ and its keyword associations.
func (r *FAQRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM faq_keywords`); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM faqs`)
	return err
}

// FindPublishedByDomainSlug returns published FAQs of the domain in display
// order, skipping excludeID when set.
func (r *FAQRepository) FindPublishedByDomainSlug(ctx context.Context, slug, excludeID string, limit int) ([]*domain.FAQ, error) {
	if limit <= 0 {
		limit = service.DefaultMatchLimit
	}
	rows, err := r.db.Query(ctx,
		faqSelect+`
		 WHERE d.slug = $1 AND f.status = $2 AND ($3 = '' OR f.id::text <> $3)
		 ORDER BY f.sort_order ASC, f.created_at ASC, f.id ASC
		 LIMIT $4`,
		slug, domain.FAQStatusPublished, excludeID, limit,
	)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

// FindByFilters returns FAQs matching every set field of filter, ordered by
// domain slug then display order.
func (r *FAQRepository) FindByFilters(ctx context.Context, filter service.FAQFilter) ([]*domain.FAQ, error) {
	where, args := buildFAQFilter(filter)
	query := faqSelect
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY d.slug ASC, f.sort_order ASC, f.created_at ASC, f.id ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *FAQRepository) ListRecentPublished(ctx context.Context, limit int) ([]*domain.FAQ, error) {
	rows, err := r.db.Query(ctx,
		faqSelect+`
		 WHERE f.status = $1
		 ORDER BY f.created_at DESC, f.id DESC
		 LIMIT $2`,
		domain.FAQStatusPublished, limit,
	)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func buildFAQFilter(filter service.FAQFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.DomainSlug != "" {
		add("d.slug = $%d", filter.DomainSlug)
	}
	if filter.Status != "" {
		add("f.status = $%d", filter.Status)
	}
	if filter.KeywordCategory != "" {
		add(`EXISTS (SELECT 1 FROM faq_keywords fk JOIN keywords k ON k.id = fk.keyword_id
		         WHERE fk.faq_id = f.id AND k.category = $%d)`, filter.KeywordCategory)
	}
	if filter.Search != "" {
		args = append(args, containsPattern(filter.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(f.question ILIKE $%d OR f.answer ILIKE $%d)", n, n))
	}

	return strings.Join(conds, " AND "), args
}

// collect scans FAQ rows and attaches their keywords with one extra query.
func (r *FAQRepository) collect(ctx context.Context, rows pgx.Rows) ([]*domain.FAQ, error) {
	faqs, err := scanFAQRows(rows)
	if err != nil {
		return nil, err
	}
	if len(faqs) == 0 {
		return []*domain.FAQ{}, nil
	}
	if err := r.attachKeywords(ctx, faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *FAQRepository) attachKeywords(ctx context.Context, faqs []*domain.FAQ) error {
	ids := make([]string, 0, len(faqs))
	byID := make(map[string]*domain.FAQ, len(faqs))
	for _, f := range faqs {
		f.Keywords = []*domain.Keyword{}
		ids = append(ids, f.ID)
		byID[f.ID] = f
	}

	rows, err := r.db.Query(ctx,
		`SELECT fk.faq_id::text, k.id, k.slug, k.name, k.category, k.description
		 FROM faq_keywords fk
		 JOIN keywords k ON k.id = fk.keyword_id
		 WHERE fk.faq_id::text = ANY($1)
		 ORDER BY k.category ASC, k.slug ASC`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var faqID string
		var k domain.Keyword
		var desc *string
		if err := rows.Scan(&faqID, &k.ID, &k.Slug, &k.Name, &k.Category, &desc); err != nil {
			return err
		}
		k.Description = derefString(desc)
		if f, ok := byID[faqID]; ok {
			f.Keywords = append(f.Keywords, &k)
		}
	}
	return rows.Err()
}

func scanFAQRows(rows pgx.Rows) ([]*domain.FAQ, error) {
	defer rows.Close()

	var out []*domain.FAQ
	for rows.Next() {
		var f domain.FAQ
		var d domain.Domain
		var episode, domainDesc *string
		if err := rows.Scan(
			&f.ID, &f.DomainID, &f.Question, &episode, &f.Answer, &f.Status, &f.SortOrder, &f.CreatedAt, &f.UpdatedAt,
			&d.ID, &d.Slug, &d.Name, &d.NameJa, &d.Icon, &domainDesc,
		); err != nil {
			return nil, err
		}
		f.Episode = derefString(episode)
		d.Description = derefString(domainDesc)
		f.Domain = &d
		out = append(out, &f)
	}
	return out, rows.Err()
}

// translateWriteError maps constraint violations to domain errors.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	switch pgErrorCode(err) {
	case pgForeignKeyViolation, pgInvalidTextRepresent:
		return fmt.Errorf("%w: %v", domain.ErrUnknownReference, err)
	}
	return err
}
