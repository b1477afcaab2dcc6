package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCatalog_DedupesCategoriesInOrder(t *testing.T) {
	domains := []*Domain{
		{ID: "d1", Slug: "sales", Name: "Sales", NameJa: "営業"},
		{ID: "d2", Slug: "cs", Name: "Customer Support"},
		nil,
	}
	keywords := []*Keyword{
		{ID: "k1", Slug: "proposal", Category: "効率化"},
		{ID: "k2", Slug: "dashboard", Category: "可視化"},
		{ID: "k3", Slug: "faq-bot", Category: "効率化"},
		{ID: "k4", Slug: "blank"},
	}

	c := NewCatalog(domains, keywords)

	assert.Equal(t, []string{"sales", "cs"}, c.DomainSlugs())
	assert.Equal(t, "営業", c.Domains[0].Name)
	assert.Equal(t, "Customer Support", c.Domains[1].Name)
	assert.Equal(t, []string{"効率化", "可視化"}, c.Categories)
	assert.True(t, c.HasDomain("sales"))
	assert.False(t, c.HasDomain("marketing"))
	assert.True(t, c.HasCategory("可視化"))
	assert.False(t, c.HasCategory("自動生成"))
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Len(t, c.Domains, 7)
	assert.Len(t, c.Categories, 8)
	assert.True(t, c.HasDomain("planning"))
	assert.True(t, c.HasCategory("属人化解消"))
	assert.False(t, c.IsEmpty())
}

func TestCatalog_FilterCategories(t *testing.T) {
	c := DefaultCatalog()

	got := c.FilterCategories([]string{"可視化", "unknown", "効率化"})

	assert.Equal(t, []string{"可視化", "効率化"}, got)
}

func TestCatalog_IsEmpty(t *testing.T) {
	var nilCatalog *Catalog
	assert.True(t, nilCatalog.IsEmpty())
	assert.True(t, NewCatalog(nil, nil).IsEmpty())
}
