package models

import "strings"

// ObjectFilter narrows an object listing. The zero value matches everything.
type ObjectFilter struct {
	// Text is matched case-insensitively against name, number and description.
	Text  string
	Class ObjectClass
}

func (f ObjectFilter) Match(o *SCEObject) bool {
	if f.Class != "" && o.ObjectClass != f.Class {
		return false
	}
	return containsFold(f.Text, o.Name, o.Number, o.Description)
}

// PostFilter narrows a post listing. The zero value matches everything.
type PostFilter struct {
	// Text is matched case-insensitively against title and content.
	Text     string
	Category PostCategory
}

func (f PostFilter) Match(p *Post) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	return containsFold(f.Text, p.Title, p.Content)
}

func containsFold(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
