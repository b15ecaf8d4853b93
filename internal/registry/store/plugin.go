package store

import (
	"context"
	"fmt"
	"time"

	"github.com/atboard/board-service/internal/model"
)

// TopicQuery holds the caller-supplied criteria for the general topic
// listing. Title is matched as a literal, case-sensitive substring; Tags
// require every listed tag to be present (AND semantics).
type TopicQuery struct {
	Title      string
	Tags       []string
	Skip       int
	Limit      int
	ActiveOnly bool
}

// BoardStore is the primary data-access interface for the board service.
//
// Store-level failures are wrapped and propagated unchanged; this layer
// never retries. Insert/Update are single-document operations assumed
// atomic at the store; concurrent updates of the same identifier race at
// last-writer-wins, full-record-replace granularity.
type BoardStore interface {
	// Topics
	FindTopic(ctx context.Context, id string) (model.Topic, error)
	// FindTopicsIn is strict: if any requested id is missing the whole
	// batch fails with a *NotFoundError carrying the ids that were found.
	// Results are sorted by ageUpdate descending.
	FindTopicsIn(ctx context.Context, ids []string) ([]model.Topic, error)
	FindTags(ctx context.Context, limit int) ([]model.TagCount, error)
	FindTopics(ctx context.Context, q TopicQuery) ([]model.Topic, error)
	FindForks(ctx context.Context, parentID string, skip, limit int, activeOnly bool) ([]model.Topic, error)
	InsertTopic(ctx context.Context, t model.Topic) error
	UpdateTopic(ctx context.Context, t model.Topic) error

	// DeactivateStaleTopics flips active=false on every time-limited topic
	// whose update timestamp is older than cutoff, in one bulk operation.
	// Returns the number of topics deactivated.
	DeactivateStaleTopics(ctx context.Context, cutoff time.Time) (int64, error)

	// Profiles
	FindProfile(ctx context.Context, id string) (*model.Profile, error)
	FindProfilesByUser(ctx context.Context, userID string) ([]*model.Profile, error)
	InsertProfile(ctx context.Context, p *model.Profile) error
	UpdateProfile(ctx context.Context, p *model.Profile) error

	Close(ctx context.Context) error
}

// Loader creates a BoardStore from config carried in ctx.
type Loader func(ctx context.Context) (BoardStore, error)

// Plugin represents a store plugin.
type Plugin struct {
	Name   string
	Loader Loader
}

var plugins []Plugin

// Register adds a store plugin.
func Register(p Plugin) {
	plugins = append(plugins, p)
}

// Names returns all registered store plugin names.
func Names() []string {
	names := make([]string, len(plugins))
	for i, p := range plugins {
		names[i] = p.Name
	}
	return names
}

// Select returns the loader for the named store plugin.
func Select(name string) (Loader, error) {
	for _, p := range plugins {
		if p.Name == name {
			return p.Loader, nil
		}
	}
	return nil, fmt.Errorf("unknown store %q; valid: %v", name, Names())
}
