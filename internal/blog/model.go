package blog

import "time"

type Post struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Slug        string     `bson:"slug" json:"slug"`
	Excerpt     string     `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content     string     `bson:"content" json:"content"`
	CoverURL    string     `bson:"coverUrl,omitempty" json:"coverUrl,omitempty"`
	CoverKey    string     `bson:"coverKey,omitempty" json:"-"`
	Category    string     `bson:"category,omitempty" json:"category,omitempty"`
	Tags        []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	Published   bool       `bson:"published" json:"published"`
	PublishedAt *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}
