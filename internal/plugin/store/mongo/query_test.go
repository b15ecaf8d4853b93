package mongo

import (
	"testing"

	registrystore "github.com/atboard/board-service/internal/registry/store"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestEscapeRegex(t *testing.T) {
	require.Equal(t, `a\.b`, escapeRegex("a.b"))
	require.Equal(t, `plain text`, escapeRegex("plain text"))
	require.Equal(t, `\-\/\\\^\$\*\+\?\.\(\)\|\[\]\{\}`, escapeRegex(`-/\^$*+?.()|[]{}`))
	require.Equal(t, `日本語\?`, escapeRegex("日本語?"))
	require.Equal(t, "", escapeRegex(""))
}

func TestTopicListFilter(t *testing.T) {
	filter := topicListFilter(registrystore.TopicQuery{Title: "a.b"})

	require.Equal(t, bson.M{"$regex": `a\.b`}, filter["title"])
	// Forks must never match the general listing.
	require.Equal(t, bson.M{"$in": bson.A{"normal", "one"}}, filter["type"])
	require.NotContains(t, filter, "tags")
	require.NotContains(t, filter, "active")
}

func TestTopicListFilterTagsAndActive(t *testing.T) {
	filter := topicListFilter(registrystore.TopicQuery{
		Title:      "",
		Tags:       []string{"go", "news"},
		ActiveOnly: true,
	})

	// All requested tags are required, not any.
	require.Equal(t, bson.M{"$all": []string{"go", "news"}}, filter["tags"])
	require.Equal(t, true, filter["active"])
}

func TestForkListFilter(t *testing.T) {
	filter := forkListFilter("parent-1", false)
	require.Equal(t, bson.M{"parent": "parent-1", "type": "fork"}, filter)

	filter = forkListFilter("parent-1", true)
	require.Equal(t, true, filter["active"])
	require.Equal(t, "fork", filter["type"])
}
