// Package store defines the persistence interface for the interaction engine
// and the seams (event emitter, errors) shared by its implementations.
package store

import (
	"context"

	"github.com/parleyapp/parley-server/internal/domain"
)

// Store is the persistence interface for votes, solutions, bookmarks, and
// the notification log. The SQLite implementation lives in store/sqlite.
//
// Mutations are atomic per entity: each method either fully commits or fully
// rolls back, inside a single transaction. Callers own retry policy for
// lock contention (see ErrBusy).
type Store interface {
	// Votes. CastVote runs the full cast state machine for (postID, userID):
	// no prior vote inserts, an opposite vote flips, repeating the same vote
	// removes it. The post's running score adjusts in the same transaction.
	CastVote(ctx context.Context, postID, userID string, value int) (*domain.VoteResult, error)
	GetVote(ctx context.Context, postID, userID string) (*domain.Vote, error)
	GetScore(ctx context.Context, postID string) (int, error)
	// RecountScore recomputes the score from vote rows. Repair tool only,
	// never on the request path.
	RecountScore(ctx context.Context, postID string) (int, error)

	// Solutions. ToggleSolution unmarks when postID already holds the
	// topic's flag, otherwise moves the flag to postID, atomically.
	ToggleSolution(ctx context.Context, topicID, postID, markedBy string) (*domain.SolutionResult, error)
	GetSolution(ctx context.Context, topicID string) (*domain.Solution, error)

	// Bookmarks.
	ToggleBookmark(ctx context.Context, userID, topicID string) (*domain.BookmarkResult, error)
	IsBookmarked(ctx context.Context, userID, topicID string) (bool, error)
	ListBookmarks(ctx context.Context, userID string) ([]*domain.Bookmark, error)

	// Notifications. AppendNotification assigns n.Seq (strictly increasing
	// per recipient) inside the append transaction and writes the row.
	AppendNotification(ctx context.Context, n *domain.Notification) error
	ListNotifications(ctx context.Context, recipientID string, beforeSeq int64, limit int) (*domain.NotificationPage, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	MarkNotificationRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context, recipientID string) (int, error)

	Close() error
}
