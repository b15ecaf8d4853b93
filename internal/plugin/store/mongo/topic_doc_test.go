package mongo

import (
	"errors"
	"testing"
	"time"

	"github.com/atboard/board-service/internal/model"
	registrystore "github.com/atboard/board-service/internal/registry/store"
	"github.com/stretchr/testify/require"
)

func sampleAttrs(id string, count int64) model.TopicAttrs {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return model.TopicAttrs{
		ID:        id,
		Title:     "sample topic",
		Tags:      []string{"go", "news"},
		Date:      now,
		Update:    now.Add(time.Hour),
		AgeUpdate: now.Add(2 * time.Hour),
		Active:    true,
		ResCount:  count,
	}
}

func TestTopicRoundTrip(t *testing.T) {
	topics := []model.Topic{
		&model.NormalTopic{TopicAttrs: sampleAttrs("t1", 3)},
		&model.OneTopic{TopicAttrs: sampleAttrs("t2", 0)},
		&model.ForkTopic{TopicAttrs: sampleAttrs("t3", 7), Parent: "t1"},
	}

	for _, original := range topics {
		hydrated, err := hydrateTopic(flattenTopic(original), original.Attrs().ResCount)
		require.NoError(t, err)
		require.Equal(t, original, hydrated)
	}
}

func TestFlattenNeverStoresResCount(t *testing.T) {
	doc := flattenTopic(&model.NormalTopic{TopicAttrs: sampleAttrs("t1", 42)})
	hydrated, err := hydrateTopic(doc, 0)
	require.NoError(t, err)
	require.Equal(t, int64(0), hydrated.Attrs().ResCount)
}

func TestHydrateUnknownKindFails(t *testing.T) {
	_, err := hydrateTopic(topicDoc{ID: "t1", Type: "poll"}, 0)
	require.Error(t, err)

	var corrupt *registrystore.CorruptRecordError
	require.True(t, errors.As(err, &corrupt))
	require.Equal(t, "topic", corrupt.Resource)
	require.Equal(t, "t1", corrupt.ID)
}

func TestForkParentPreserved(t *testing.T) {
	doc := flattenTopic(&model.ForkTopic{TopicAttrs: sampleAttrs("f1", 0), Parent: "n1"})
	require.Equal(t, "n1", doc.Parent)
	require.Equal(t, "fork", doc.Type)

	hydrated, err := hydrateTopic(doc, 0)
	require.NoError(t, err)
	require.Equal(t, "n1", hydrated.(*model.ForkTopic).Parent)
}
