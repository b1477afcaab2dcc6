package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/media-confidence/aifaq/internal/domain"
)

type KeywordRepository struct {
	db dbtx
}

func NewKeywordRepository(pool *pgxpool.Pool) *KeywordRepository {
	return &KeywordRepository{db: pool}
}

func NewKeywordRepositoryWithTx(tx pgx.Tx) *KeywordRepository {
	return &KeywordRepository{db: tx}
}

// List returns every keyword ordered by category, then slug.
func (r *KeywordRepository) List(ctx context.Context) ([]*domain.Keyword, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, slug, name, category, description FROM keywords ORDER BY category ASC, slug ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanKeywordRows(rows)
}

func (r *KeywordRepository) GetBySlug(ctx context.Context, slug string) (*domain.Keyword, error) {
	var k domain.Keyword
	var desc *string
	err := r.db.QueryRow(ctx,
		`SELECT id, slug, name, category, description FROM keywords WHERE slug = $1`,
		slug,
	).Scan(&k.ID, &k.Slug, &k.Name, &k.Category, &desc)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrKeywordNotFound
		}
		return nil, err
	}
	k.Description = derefString(desc)
	return &k, nil
}

// Upsert inserts k or updates the row with the same slug. k.ID is set to the
// stored id.
func (r *KeywordRepository) Upsert(ctx context.Context, k *domain.Keyword) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO keywords (id, slug, name, category, description)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (slug) DO UPDATE
		 SET name = EXCLUDED.name, category = EXCLUDED.category, description = EXCLUDED.description
		 RETURNING id`,
		k.ID, k.Slug, k.Name, k.Category, nullableString(k.Description),
	).Scan(&k.ID)
}

// DeleteAll removes every keyword and its associations.
func (r *KeywordRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM keywords`)
	return err
}

func scanKeywordRows(rows pgx.Rows) ([]*domain.Keyword, error) {
	var out []*domain.Keyword
	for rows.Next() {
		var k domain.Keyword
		var desc *string
		if err := rows.Scan(&k.ID, &k.Slug, &k.Name, &k.Category, &desc); err != nil {
			return nil, err
		}
		k.Description = derefString(desc)
		out = append(out, &k)
	}
	return out, rows.Err()
}
