//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/media-confidence/aifaq/internal/domain"
	"github.com/media-confidence/aifaq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainRepository_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewDatabase(ctx, t)
	repo := NewDomainRepository(pool)

	first := &domain.Domain{ID: uuid.NewString(), Slug: "sales", Name: "Sales", NameJa: "営業", Icon: "💼"}
	require.NoError(t, repo.Upsert(ctx, first))
	require.NoError(t, repo.Upsert(ctx, &domain.Domain{ID: uuid.NewString(), Slug: "design", Name: "Design"}))

	again := &domain.Domain{ID: uuid.NewString(), Slug: "sales", Name: "Sales", NameJa: "営業・商談"}
	require.NoError(t, repo.Upsert(ctx, again))
	assert.Equal(t, first.ID, again.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "design", all[0].Slug)
	assert.Equal(t, "営業・商談", all[1].NameJa)

	_, err = repo.GetBySlug(ctx, "astrology")
	assert.ErrorIs(t, err, domain.ErrDomainNotFound)
}

func TestKeywordRepository_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	pool := testutil.NewDatabase(ctx, t)
	repo := NewKeywordRepository(pool)

	require.NoError(t, repo.Upsert(ctx, &domain.Keyword{ID: uuid.NewString(), Slug: "b", Name: "B", Category: "自動化"}))
	require.NoError(t, repo.Upsert(ctx, &domain.Keyword{ID: uuid.NewString(), Slug: "a", Name: "A", Category: "効率化", Description: "desc"}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	got, err := repo.GetBySlug(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "desc", got.Description)

	_, err = repo.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrKeywordNotFound)
}
