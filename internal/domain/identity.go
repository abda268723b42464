// Package domain defines the core types of the interaction engine: votes,
// scores, solutions, bookmarks, and notifications. Content itself (topics,
// posts, users) lives in collaborator services; the engine only sees their
// identities.
package domain

// PostIdentity is the slice of a post the engine needs: its ID, the topic it
// belongs to, and who wrote it. Resolved through the store from the content
// service's tables and trusted as already validated.
type PostIdentity struct {
	ID       string `json:"id"`
	TopicID  string `json:"topic_id"`
	AuthorID string `json:"author_id"`
}

// TopicIdentity identifies a topic owned by the content service.
type TopicIdentity struct {
	ID string `json:"id"`
}

// UserIdentity identifies an authenticated user. The auth service validates
// credentials; the engine receives the ID via verified access tokens.
type UserIdentity struct {
	ID string `json:"id"`
}
