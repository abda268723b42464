package domain

import "time"

// Bookmark is set membership: the user has saved the topic. No payload.
type Bookmark struct {
	UserID    string    `json:"user_id"`
	TopicID   string    `json:"topic_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BookmarkResult reports membership after a toggle.
type BookmarkResult struct {
	Bookmarked bool `json:"bookmarked"`
}
