package domain

import "fmt"

// Keyword tags the kind of AI-enabled improvement an answer offers.
// Category is the grouping label used for filtering.
type Keyword struct {
	ID          string
	Slug        string
	Name        string
	Category    string
	Description string
}

// ValidateKeyword validates a Keyword instance
func ValidateKeyword(k *Keyword) error {
	if k == nil {
		return fmt.Errorf("keyword cannot be nil")
	}
	if k.ID == "" {
		return fmt.Errorf("keyword ID is required")
	}
	if k.Slug == "" {
		return fmt.Errorf("keyword Slug is required")
	}
	if k.Category == "" {
		return fmt.Errorf("keyword Category is required")
	}
	return nil
}
