package domain

import "time"

// Solution records which post answers a topic. One row per topic at most;
// the store's primary key enforces that structurally.
type Solution struct {
	TopicID  string    `json:"topic_id"`
	PostID   string    `json:"post_id"`
	MarkedBy string    `json:"marked_by"`
	MarkedAt time.Time `json:"marked_at"`
}

// SolutionResult reports whether the post is the topic's solution after a toggle.
type SolutionResult struct {
	IsSolution bool `json:"is_solution"`
}
