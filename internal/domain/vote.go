package domain

import "time"

// Vote values.
const (
	VoteUp   = 1
	VoteDown = -1
	VoteNone = 0
)

// ValidVoteValue reports whether v is a castable vote value.
// VoteNone is not castable; removing a vote happens by re-casting the same value.
func ValidVoteValue(v int) bool {
	return v == VoteUp || v == VoteDown
}

// Vote is a single user's vote on a single post.
// At most one row exists per (post, user); changing your mind updates the row,
// repeating the same vote deletes it (toggle-off).
type Vote struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Value     int       `json:"value"` // VoteUp or VoteDown
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VoteResult is the state of a post's tally after a cast, as seen by the
// casting user.
type VoteResult struct {
	Score    int `json:"score"`
	UserVote int `json:"user_vote"` // VoteUp, VoteDown, or VoteNone
}
