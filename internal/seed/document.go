// Package seed loads and dumps the FAQ catalog as a YAML document.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/media-confidence/aifaq/internal/domain"
	"gopkg.in/yaml.v3"
)

// Document is the seed file layout. FAQs reference domains and keywords by slug.
type Document struct {
	Domains  []DomainEntry  `yaml:"domains"`
	Keywords []KeywordEntry `yaml:"keywords"`
	FAQs     []FAQEntry     `yaml:"faqs"`
}

type DomainEntry struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	NameJa      string `yaml:"nameJa,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type KeywordEntry struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description,omitempty"`
}

// FAQEntry is one FAQ. An empty Status means published.
type FAQEntry struct {
	DomainSlug   string           `yaml:"domainSlug"`
	Question     string           `yaml:"question"`
	Episode      string           `yaml:"episode,omitempty"`
	Answer       string           `yaml:"answer"`
	Status       domain.FAQStatus `yaml:"status,omitempty"`
	KeywordSlugs []string         `yaml:"keywordSlugs,flow"`
}

// Parse decodes and validates a seed document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError("seed document is empty")
		}
		return nil, fmt.Errorf("decode seed document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode writes doc as YAML with two-space indentation.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode seed document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks required fields and slug uniqueness. References from FAQs
// to unknown slugs are not errors here; Apply skips them.
func (d *Document) Validate() error {
	domains := make(map[string]bool, len(d.Domains))
	for i, e := range d.Domains {
		if e.Slug == "" || e.Name == "" {
			return domain.NewValidationError(fmt.Sprintf("domains[%d]: slug and name are required", i))
		}
		if domains[e.Slug] {
			return domain.NewValidationError(fmt.Sprintf("domains[%d]: duplicate slug %q", i, e.Slug))
		}
		domains[e.Slug] = true
	}

	keywords := make(map[string]bool, len(d.Keywords))
	for i, e := range d.Keywords {
		if e.Slug == "" || e.Name == "" || e.Category == "" {
			return domain.NewValidationError(fmt.Sprintf("keywords[%d]: slug, name and category are required", i))
		}
		if keywords[e.Slug] {
			return domain.NewValidationError(fmt.Sprintf("keywords[%d]: duplicate slug %q", i, e.Slug))
		}
		keywords[e.Slug] = true
	}

	for i, e := range d.FAQs {
		if e.DomainSlug == "" || e.Question == "" || e.Answer == "" {
			return domain.NewValidationError(fmt.Sprintf("faqs[%d]: domainSlug, question and answer are required", i))
		}
		if e.Status != "" && !domain.IsValidFAQStatus(e.Status) {
			return domain.NewValidationError(fmt.Sprintf("faqs[%d]: invalid status %q", i, e.Status))
		}
	}
	return nil
}
