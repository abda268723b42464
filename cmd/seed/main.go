// Package main provides a tool to seed the database with test forum data.
//
// It creates topics and posts in the shared content tables, then layers
// votes, bookmarks, and notifications on top so the interaction endpoints
// have something to serve during development.
//
// Usage:
//
//	STORE_PATH=~/Parley/data/parley.db go run ./cmd/seed
//	go run ./cmd/seed --topics 10 --users 5
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/id"
	"github.com/parleyapp/parley-server/internal/store/sqlite"
)

var (
	numTopics = flag.Int("topics", 8, "Number of topics to create")
	numUsers  = flag.Int("users", 4, "Number of simulated users")
)

func main() {
	flag.Parse()

	dbPath := os.Getenv("STORE_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "Parley", "data", "parley.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]string, *numUsers)
	for i := range users {
		users[i] = fmt.Sprintf("user-seed-%d", i+1)
	}

	totalPosts := 0
	totalVotes := 0

	for t := range *numTopics {
		topicID := fmt.Sprintf("topic-seed-%d", t+1)
		if err := s.UpsertTopic(ctx, topicID); err != nil {
			log.Fatalf("Failed to create topic %s: %v", topicID, err)
		}

		// 2-6 posts per topic, each by a random user.
		numPosts := 2 + rng.Intn(5)
		postIDs := make([]string, 0, numPosts)
		for p := range numPosts {
			postID := fmt.Sprintf("post-seed-%d-%d", t+1, p+1)
			post := &domain.PostIdentity{
				ID:       postID,
				TopicID:  topicID,
				AuthorID: users[rng.Intn(len(users))],
			}
			if err := s.UpsertPost(ctx, post); err != nil {
				log.Fatalf("Failed to create post %s: %v", postID, err)
			}
			postIDs = append(postIDs, postID)
			totalPosts++
		}

		// Each user votes on roughly half the posts.
		for _, userID := range users {
			for _, postID := range postIDs {
				if rng.Float32() > 0.5 {
					continue
				}
				value := 1
				if rng.Float32() < 0.25 {
					value = -1
				}
				if _, err := s.CastVote(ctx, postID, userID, value); err != nil {
					log.Printf("Failed to vote on %s: %v", postID, err)
					continue
				}
				totalVotes++
			}
		}

		// A third of the topics get bookmarked by someone.
		if rng.Float32() < 0.33 {
			userID := users[rng.Intn(len(users))]
			if _, err := s.ToggleBookmark(ctx, userID, topicID); err != nil {
				log.Printf("Failed to bookmark %s: %v", topicID, err)
			}
		}

		fmt.Printf("  Created %s with %d posts\n", topicID, numPosts)
	}

	// A few notifications so the inbox is not empty.
	for _, userID := range users {
		n := &domain.Notification{
			ID:          id.MustGenerate("ntf"),
			RecipientID: userID,
			Kind:        domain.NotificationMention,
			TopicID:     "topic-seed-1",
			PostID:      "post-seed-1-1",
			ActorID:     users[0],
			Body:        "You were mentioned in a seeded topic",
			CreatedAt:   time.Now(),
		}
		if err := s.AppendNotification(ctx, n); err != nil {
			log.Printf("Failed to notify %s: %v", userID, err)
		}
	}

	fmt.Printf("\nSeeded %d topics, %d posts, %d votes for %d users\n",
		*numTopics, totalPosts, totalVotes, len(users))
}
