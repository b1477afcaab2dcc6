package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/media-confidence/aifaq/internal/domain"
)

type DomainRepository struct {
	db dbtx
}

func NewDomainRepository(pool *pgxpool.Pool) *DomainRepository {
	return &DomainRepository{db: pool}
}

func NewDomainRepositoryWithTx(tx pgx.Tx) *DomainRepository {
	return &DomainRepository{db: tx}
}

// List returns every domain ordered by slug.
func (r *DomainRepository) List(ctx context.Context) ([]*domain.Domain, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, slug, name, name_ja, icon, description FROM domains ORDER BY slug ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Domain
	for rows.Next() {
		var d domain.Domain
		var desc *string
		if err := rows.Scan(&d.ID, &d.Slug, &d.Name, &d.NameJa, &d.Icon, &desc); err != nil {
			return nil, err
		}
		d.Description = derefString(desc)
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *DomainRepository) GetBySlug(ctx context.Context, slug string) (*domain.Domain, error) {
	var d domain.Domain
	var desc *string
	err := r.db.QueryRow(ctx,
		`SELECT id, slug, name, name_ja, icon, description FROM domains WHERE slug = $1`,
		slug,
	).Scan(&d.ID, &d.Slug, &d.Name, &d.NameJa, &d.Icon, &desc)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrDomainNotFound
		}
		return nil, err
	}
	d.Description = derefString(desc)
	return &d, nil
}

// Upsert inserts d or updates the row with the same slug. d.ID is set to the
// stored id.
func (r *DomainRepository) Upsert(ctx context.Context, d *domain.Domain) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO domains (id, slug, name, name_ja, icon, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (slug) DO UPDATE
		 SET name = EXCLUDED.name, name_ja = EXCLUDED.name_ja, icon = EXCLUDED.icon, description = EXCLUDED.description
		 RETURNING id`,
		d.ID, d.Slug, d.Name, d.NameJa, d.Icon, nullableString(d.Description),
	).Scan(&d.ID)
}

// DeleteAll removes every domain. FAQs must be removed first.
func (r *DomainRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM domains`)
	return err
}
