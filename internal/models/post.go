package models

import (
	"fmt"
	"strings"
	"time"
)

// PostCategory groups posts by topic.
type PostCategory string

const (
	CategoryNews     PostCategory = "NEWS"
	CategoryResearch PostCategory = "RESEARCH"
	CategoryReport   PostCategory = "REPORT"
)

var PostCategories = []PostCategory{CategoryNews, CategoryResearch, CategoryReport}

func (c PostCategory) Valid() bool {
	switch c {
	case CategoryNews, CategoryResearch, CategoryReport:
		return true
	}
	return false
}

func ParsePostCategory(s string) (PostCategory, error) {
	c := PostCategory(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown post category %q", s)
	}
	return c, nil
}

// Post is a news, research or report article.
type Post struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Category  PostCategory `json:"category"`
	CreatedAt time.Time    `json:"createdAt"`
	CreatedBy string       `json:"createdBy"`
}

// NewPost carries the caller-supplied fields of a post.
type NewPost struct {
	Title    string
	Content  string
	Category PostCategory
}

func (n NewPost) Validate() error {
	switch {
	case strings.TrimSpace(n.Title) == "":
		return fmt.Errorf("title is required")
	case strings.TrimSpace(n.Content) == "":
		return fmt.Errorf("content is required")
	case !n.Category.Valid():
		return fmt.Errorf("unknown post category %q", n.Category)
	}
	return nil
}
