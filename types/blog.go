package types

import "time"

const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// Blog is an article written by a volunteer or admin. Only published blogs
// are visible to the public.
type Blog struct {
	ID          string    `json:"_id,omitempty" db:"id"`
	Title       string    `json:"title" db:"title"`
	Thumbnail   string    `json:"thumbnail" db:"thumbnail"`
	Content     string    `json:"content" db:"content"`
	AuthorEmail string    `json:"authorEmail,omitempty" db:"author_email"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
