package metrics

import (
	"context"
	"time"

	"github.com/atboard/board-service/internal/model"
	"github.com/atboard/board-service/internal/registry/store"
	"github.com/atboard/board-service/internal/security"
)

// Wrap returns a BoardStore that records StoreLatency for every operation.
func Wrap(inner store.BoardStore) store.BoardStore {
	return &metricsStore{inner: inner}
}

type metricsStore struct {
	inner store.BoardStore
}

func observe(op string, start time.Time) {
	security.StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *metricsStore) FindTopic(ctx context.Context, id string) (model.Topic, error) {
	defer observe("find_topic", time.Now())
	return m.inner.FindTopic(ctx, id)
}

func (m *metricsStore) FindTopicsIn(ctx context.Context, ids []string) ([]model.Topic, error) {
	defer observe("find_topics_in", time.Now())
	return m.inner.FindTopicsIn(ctx, ids)
}

func (m *metricsStore) FindTags(ctx context.Context, limit int) ([]model.TagCount, error) {
	defer observe("find_tags", time.Now())
	return m.inner.FindTags(ctx, limit)
}

func (m *metricsStore) FindTopics(ctx context.Context, q store.TopicQuery) ([]model.Topic, error) {
	defer observe("find_topics", time.Now())
	return m.inner.FindTopics(ctx, q)
}

func (m *metricsStore) FindForks(ctx context.Context, parentID string, skip, limit int, activeOnly bool) ([]model.Topic, error) {
	defer observe("find_forks", time.Now())
	return m.inner.FindForks(ctx, parentID, skip, limit, activeOnly)
}

func (m *metricsStore) InsertTopic(ctx context.Context, t model.Topic) error {
	defer observe("insert_topic", time.Now())
	return m.inner.InsertTopic(ctx, t)
}

func (m *metricsStore) UpdateTopic(ctx context.Context, t model.Topic) error {
	defer observe("update_topic", time.Now())
	return m.inner.UpdateTopic(ctx, t)
}

func (m *metricsStore) DeactivateStaleTopics(ctx context.Context, cutoff time.Time) (int64, error) {
	defer observe("deactivate_stale_topics", time.Now())
	return m.inner.DeactivateStaleTopics(ctx, cutoff)
}

func (m *metricsStore) FindProfile(ctx context.Context, id string) (*model.Profile, error) {
	defer observe("find_profile", time.Now())
	return m.inner.FindProfile(ctx, id)
}

func (m *metricsStore) FindProfilesByUser(ctx context.Context, userID string) ([]*model.Profile, error) {
	defer observe("find_profiles_by_user", time.Now())
	return m.inner.FindProfilesByUser(ctx, userID)
}

func (m *metricsStore) InsertProfile(ctx context.Context, p *model.Profile) error {
	defer observe("insert_profile", time.Now())
	return m.inner.InsertProfile(ctx, p)
}

func (m *metricsStore) UpdateProfile(ctx context.Context, p *model.Profile) error {
	defer observe("update_profile", time.Now())
	return m.inner.UpdateProfile(ctx, p)
}

func (m *metricsStore) Close(ctx context.Context) error {
	return m.inner.Close(ctx)
}
