package mongo

import (
	"strings"

	registrystore "github.com/atboard/board-service/internal/registry/store"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// escapeRegex escapes every regex metacharacter in user-supplied text so
// it embeds into a MongoDB pattern as a literal substring match. The
// escape set intentionally includes '-' and '/', which the server's PCRE
// engine treats as meaningful in some positions.
func escapeRegex(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '-', '/', '\\', '^', '$', '*', '+', '?', '.', '(', ')', '|', '[', ']', '{', '}':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// topicListFilter builds the general listing filter. Forks are never
// matched here; they are only reachable through forkListFilter.
func topicListFilter(q registrystore.TopicQuery) bson.M {
	filter := bson.M{
		"title": bson.M{"$regex": escapeRegex(q.Title)},
		"type":  bson.M{"$in": bson.A{"normal", "one"}},
	}
	if len(q.Tags) > 0 {
		filter["tags"] = bson.M{"$all": q.Tags}
	}
	if q.ActiveOnly {
		filter["active"] = true
	}
	return filter
}

// forkListFilter builds the filter for listing forks of a parent topic.
func forkListFilter(parentID string, activeOnly bool) bson.M {
	filter := bson.M{
		"parent": parentID,
		"type":   "fork",
	}
	if activeOnly {
		filter["active"] = true
	}
	return filter
}
