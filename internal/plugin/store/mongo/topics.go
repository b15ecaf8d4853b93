package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atboard/board-service/internal/model"
	registrystore "github.com/atboard/board-service/internal/registry/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ageUpdateDesc = bson.D{{Key: "ageUpdate", Value: -1}}

// FindTopic returns the hydrated topic for id.
func (s *MongoStore) FindTopic(ctx context.Context, id string) (model.Topic, error) {
	var doc topicDoc
	err := s.topics().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &registrystore.NotFoundError{Resource: "topic", ID: id}
		}
		return nil, fmt.Errorf("find topic: %w", err)
	}
	topics, err := s.hydrateAll(ctx, []topicDoc{doc})
	if err != nil {
		return nil, err
	}
	return topics[0], nil
}

// FindTopicsIn returns the hydrated topics for a batch of ids, sorted by
// ageUpdate descending. Any missing id fails the whole batch; the returned
// NotFoundError carries the ids that did resolve.
func (s *MongoStore) FindTopicsIn(ctx context.Context, ids []string) ([]model.Topic, error) {
	cursor, err := s.topics().Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(ageUpdateDesc),
	)
	if err != nil {
		return nil, fmt.Errorf("find topics in: %w", err)
	}
	var docs []topicDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}

	if len(docs) != len(ids) {
		found := make([]string, len(docs))
		for i, d := range docs {
			found[i] = d.ID
		}
		return nil, &registrystore.NotFoundError{
			Resource: "topic",
			ID:       fmt.Sprintf("%d of %d requested", len(ids)-len(docs), len(ids)),
			FoundIDs: found,
		}
	}
	return s.hydrateAll(ctx, docs)
}

// FindTags returns the limit most-used tags, descending by usage.
func (s *MongoStore) FindTags(ctx context.Context, limit int) ([]model.TagCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$unwind", Value: "$tags"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tags"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cursor, err := s.topics().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate tags: %w", err)
	}
	defer cursor.Close(ctx)

	var tags []model.TagCount
	for cursor.Next(ctx) {
		var row struct {
			Name  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode tag count: %w", err)
		}
		tags = append(tags, model.TagCount{Name: row.Name, Count: row.Count})
	}
	return tags, cursor.Err()
}

// FindTopics runs the general listing. Fork topics are never returned
// here; the filter restricts type to normal and one.
func (s *MongoStore) FindTopics(ctx context.Context, q registrystore.TopicQuery) ([]model.Topic, error) {
	return s.findFiltered(ctx, topicListFilter(q), q.Skip, q.Limit)
}

// FindForks lists the forks of a normal topic, same sort and paging
// contract as FindTopics.
func (s *MongoStore) FindForks(ctx context.Context, parentID string, skip, limit int, activeOnly bool) ([]model.Topic, error) {
	return s.findFiltered(ctx, forkListFilter(parentID, activeOnly), skip, limit)
}

func (s *MongoStore) findFiltered(ctx context.Context, filter bson.M, skip, limit int) ([]model.Topic, error) {
	opts := options.Find().
		SetSort(ageUpdateDesc).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cursor, err := s.topics().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find topics: %w", err)
	}
	var docs []topicDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	return s.hydrateAll(ctx, docs)
}

// InsertTopic persists a new topic record.
func (s *MongoStore) InsertTopic(ctx context.Context, t model.Topic) error {
	if _, err := s.topics().InsertOne(ctx, flattenTopic(t)); err != nil {
		return fmt.Errorf("insert topic: %w", err)
	}
	return nil
}

// UpdateTopic replaces the stored record keyed by identity. This is a
// full-record replace, not a partial patch.
func (s *MongoStore) UpdateTopic(ctx context.Context, t model.Topic) error {
	if _, err := s.topics().ReplaceOne(ctx, bson.M{"_id": t.Attrs().ID}, flattenTopic(t)); err != nil {
		return fmt.Errorf("update topic: %w", err)
	}
	return nil
}

// DeactivateStaleTopics bulk-deactivates every time-limited topic whose
// update timestamp is older than cutoff. One UpdateMany touching only the
// active field; re-running on an already-deactivated set is a no-op.
func (s *MongoStore) DeactivateStaleTopics(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.topics().UpdateMany(ctx,
		bson.M{
			"type":   bson.M{"$in": bson.A{"one", "fork"}},
			"update": bson.M{"$lt": cutoff},
			"active": true,
		},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		return 0, fmt.Errorf("deactivate stale topics: %w", err)
	}
	return result.ModifiedCount, nil
}

// hydrateAll resolves a batch of raw records into typed topics. The
// response-count lookup is computed once for the whole batch, so each page
// costs exactly one aggregation query regardless of page size.
func (s *MongoStore) hydrateAll(ctx context.Context, docs []topicDoc) ([]model.Topic, error) {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	counts, err := s.resCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	topics := make([]model.Topic, len(docs))
	for i, d := range docs {
		// Absent ids have an implicit count of zero.
		t, err := hydrateTopic(d, counts[d.ID])
		if err != nil {
			return nil, err
		}
		topics[i] = t
	}
	return topics, nil
}

// resCounts returns the response count per topic id for one batch via a
// single grouped aggregation over the response collection. The group runs
// over all responses and is narrowed to the batch afterwards; restricting
// earlier would be an optimization, not a correctness requirement.
func (s *MongoStore) resCounts(ctx context.Context, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$topic"},
			{Key: "resCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}},
		}}},
	}
	cursor, err := s.reses().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate response counts: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			ID       string `bson:"_id"`
			ResCount int64  `bson:"resCount"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode response count: %w", err)
		}
		counts[row.ID] = row.ResCount
	}
	return counts, cursor.Err()
}
