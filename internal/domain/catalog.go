package domain

// CatalogDomain is the subset of Domain the assistant is told about
type CatalogDomain struct {
	Slug string
	Name string
	Icon string
}

// Catalog is the canonical enumeration of valid domain slugs and keyword
// categories. Both the assistant instruction and diagnosis validation are
// derived from it.
type Catalog struct {
	Domains    []CatalogDomain
	Categories []string

	domainSet   map[string]struct{}
	categorySet map[string]struct{}
}

// NewCatalog builds a catalog from store rows. Categories keep the order of
// first appearance in keywords.
func NewCatalog(domains []*Domain, keywords []*Keyword) *Catalog {
	c := &Catalog{}
	for _, d := range domains {
		if d == nil || d.Slug == "" {
			continue
		}
		c.Domains = append(c.Domains, CatalogDomain{Slug: d.Slug, Name: d.DisplayName(), Icon: d.Icon})
	}
	seen := make(map[string]struct{})
	for _, k := range keywords {
		if k == nil || k.Category == "" {
			continue
		}
		if _, ok := seen[k.Category]; ok {
			continue
		}
		seen[k.Category] = struct{}{}
		c.Categories = append(c.Categories, k.Category)
	}
	c.index()
	return c
}

// NewCatalogFromParts builds a catalog from already-derived entries.
func NewCatalogFromParts(domains []CatalogDomain, categories []string) *Catalog {
	c := &Catalog{
		Domains:    append([]CatalogDomain(nil), domains...),
		Categories: append([]string(nil), categories...),
	}
	c.index()
	return c
}

// DefaultCatalog is used until the store holds at least one domain.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		Domains: []CatalogDomain{
			{Slug: "marketing", Name: "マーケティング", Icon: "Megaphone"},
			{Slug: "design", Name: "デザイン・Web制作", Icon: "Palette"},
			{Slug: "sales", Name: "営業", Icon: "Briefcase"},
			{Slug: "cs", Name: "カスタマーサポート", Icon: "MessageCircle"},
			{Slug: "recruiting", Name: "採用", Icon: "Users"},
			{Slug: "education", Name: "教育・研修", Icon: "BookOpen"},
			{Slug: "planning", Name: "経営企画", Icon: "BarChart3"},
		},
		Categories: []string{
			"効率化", "平準化", "正確化", "即時キャッチアップ",
			"属人化解消", "個別最適化", "可視化", "自動生成",
		},
	}
	c.index()
	return c
}

func (c *Catalog) index() {
	c.domainSet = make(map[string]struct{}, len(c.Domains))
	for _, d := range c.Domains {
		c.domainSet[d.Slug] = struct{}{}
	}
	c.categorySet = make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		c.categorySet[cat] = struct{}{}
	}
}

// IsEmpty reports whether the catalog has no domains.
func (c *Catalog) IsEmpty() bool {
	return c == nil || len(c.Domains) == 0
}

func (c *Catalog) HasDomain(slug string) bool {
	_, ok := c.domainSet[slug]
	return ok
}

func (c *Catalog) HasCategory(category string) bool {
	_, ok := c.categorySet[category]
	return ok
}

// DomainSlugs returns the slugs in catalog order.
func (c *Catalog) DomainSlugs() []string {
	out := make([]string, len(c.Domains))
	for i, d := range c.Domains {
		out[i] = d.Slug
	}
	return out
}

// FilterCategories keeps only categories known to the catalog, preserving order.
func (c *Catalog) FilterCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, cat := range categories {
		if c.HasCategory(cat) {
			out = append(out, cat)
		}
	}
	return out
}
