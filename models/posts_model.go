package models

import "time"

// DefaultImage is the sentinel stored when a post has no user-supplied image.
const DefaultImage = "default.jpg"

type Post struct {
	ID        int64
	Title     string
	Image     string
	Content   string
	CreatedAt time.Time
}

// HasImage reports whether the post carries a custom uploaded image.
func (p Post) HasImage() bool {
	return p.Image != "" && p.Image != DefaultImage
}
