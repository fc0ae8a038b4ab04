package domain

import "fmt"

// Category groups products in the catalog.
type Category struct {
	ID       int64
	Title    string
	ImageURL string
}

// Key identifies the category for set semantics: identity when assigned,
// otherwise every attribute.
func (c Category) Key() string {
	if c.ID != 0 {
		return fmt.Sprintf("id:%d", c.ID)
	}
	return fmt.Sprintf("v:%q|%q", c.Title, c.ImageURL)
}
