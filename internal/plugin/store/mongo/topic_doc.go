package mongo

import (
	"fmt"
	"time"

	"github.com/atboard/board-service/internal/model"
	registrystore "github.com/atboard/board-service/internal/registry/store"
)

// topicDoc is the stored shape of a topic. The response count is derived
// at read time and never persisted.
type topicDoc struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	Tags      []string  `bson:"tags"`
	Type      string    `bson:"type"`
	Active    bool      `bson:"active"`
	Parent    string    `bson:"parent,omitempty"`
	Date      time.Time `bson:"date"`
	Update    time.Time `bson:"update"`
	AgeUpdate time.Time `bson:"ageUpdate"`
}

// hydrateTopic resolves a raw record plus its response count into the
// typed variant. An unrecognized type discriminator is a data-integrity
// fault, never a silent default.
func hydrateTopic(doc topicDoc, resCount int64) (model.Topic, error) {
	attrs := model.TopicAttrs{
		ID:        doc.ID,
		Title:     doc.Title,
		Tags:      doc.Tags,
		Date:      doc.Date,
		Update:    doc.Update,
		AgeUpdate: doc.AgeUpdate,
		Active:    doc.Active,
		ResCount:  resCount,
	}
	switch model.TopicKind(doc.Type) {
	case model.KindNormal:
		return &model.NormalTopic{TopicAttrs: attrs}, nil
	case model.KindOne:
		return &model.OneTopic{TopicAttrs: attrs}, nil
	case model.KindFork:
		return &model.ForkTopic{TopicAttrs: attrs, Parent: doc.Parent}, nil
	default:
		return nil, &registrystore.CorruptRecordError{
			Resource: "topic",
			ID:       doc.ID,
			Detail:   fmt.Sprintf("unknown type discriminator %q", doc.Type),
		}
	}
}

// flattenTopic is the inverse of hydrateTopic, minus the derived count.
func flattenTopic(t model.Topic) topicDoc {
	attrs := t.Attrs()
	doc := topicDoc{
		ID:        attrs.ID,
		Title:     attrs.Title,
		Tags:      attrs.Tags,
		Type:      string(t.Kind()),
		Active:    attrs.Active,
		Date:      attrs.Date,
		Update:    attrs.Update,
		AgeUpdate: attrs.AgeUpdate,
	}
	if fork, ok := t.(*model.ForkTopic); ok {
		doc.Parent = fork.Parent
	}
	return doc
}
