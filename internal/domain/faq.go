package domain

import (
	"time"
)

// FAQStatus gates visibility of an entry in public listings and matching
type FAQStatus string

const (
	FAQStatusDraft     FAQStatus = "draft"
	FAQStatusPublished FAQStatus = "published"
)

// FAQ is one problem/solution entry.
//
// SortOrder is scoped per domain and used only for display sequencing.
// Domain and Keywords are populated by read queries and ignored on write.
type FAQ struct {
	ID        string
	DomainID  string
	Question  string
	Episode   string
	Answer    string
	Status    FAQStatus
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time

	Domain   *Domain
	Keywords []*Keyword
}

// KeywordIDs returns the ids of the attached keywords.
func (f *FAQ) KeywordIDs() []string {
	ids := make([]string, 0, len(f.Keywords))
	for _, k := range f.Keywords {
		ids = append(ids, k.ID)
	}
	return ids
}

// ValidateFAQ validates a FAQ instance
func ValidateFAQ(f *FAQ) error {
	if f == nil {
		return NewValidationError("faq cannot be nil")
	}
	if f.ID == "" {
		return NewValidationError("faq ID is required")
	}
	if f.DomainID == "" {
		return NewValidationError("faq domainId is required")
	}
	if f.Question == "" {
		return NewValidationError("faq question is required")
	}
	if f.Answer == "" {
		return NewValidationError("faq answer is required")
	}
	if !IsValidFAQStatus(f.Status) {
		return ErrInvalidFAQStatus
	}
	return nil
}

// IsValidFAQStatus checks if a FAQStatus is valid
func IsValidFAQStatus(s FAQStatus) bool {
	switch s {
	case FAQStatusDraft, FAQStatusPublished:
		return true
	}
	return false
}
