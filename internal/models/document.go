package models

import "fmt"

// Entity id prefixes. All kinds share one counter, so ids are unique across
// the whole archive and never reused.
const (
	KindUser   = "user"
	KindObject = "object"
	KindPost   = "post"
)

// FormatID builds an entity id such as "user_3".
func FormatID(kind string, n int64) string {
	return fmt.Sprintf("%s_%d", kind, n)
}

// Document is the whole archive as one value: the persisted form of the
// single-document store and the export format of every store.
type Document struct {
	Users   []*User      `json:"users"`
	Objects []*SCEObject `json:"objects"`
	Posts   []*Post      `json:"posts"`
	NextID  int64        `json:"nextId"`
}

// NewDocument returns an empty archive whose counter starts at 1.
func NewDocument() *Document {
	return &Document{
		Users:   []*User{},
		Objects: []*SCEObject{},
		Posts:   []*Post{},
		NextID:  1,
	}
}

// Normalize replaces nil collections with empty ones and repairs a counter
// that would hand out an id below 1.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []*User{}
	}
	if d.Objects == nil {
		d.Objects = []*SCEObject{}
	}
	if d.Posts == nil {
		d.Posts = []*Post{}
	}
	if d.NextID < 1 {
		d.NextID = 1
	}
}
