package domain

import "fmt"

// Domain is a business-function category that groups FAQ entries
type Domain struct {
	ID          string
	Slug        string
	Name        string
	NameJa      string
	Icon        string
	Description string
}

// ValidateDomain validates a Domain instance
func ValidateDomain(d *Domain) error {
	if d == nil {
		return fmt.Errorf("domain cannot be nil")
	}
	if d.ID == "" {
		return fmt.Errorf("domain ID is required")
	}
	if d.Slug == "" {
		return fmt.Errorf("domain Slug is required")
	}
	if d.Name == "" {
		return fmt.Errorf("domain Name is required")
	}
	return nil
}

// DisplayName prefers the localized name.
func (d *Domain) DisplayName() string {
	if d.NameJa != "" {
		return d.NameJa
	}
	return d.Name
}
