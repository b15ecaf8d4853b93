package model

import (
	"time"

	"github.com/google/uuid"
)

// TopicKind discriminates the three topic variants.
type TopicKind string

const (
	KindNormal TopicKind = "normal"
	KindOne    TopicKind = "one"
	KindFork   TopicKind = "fork"
)

// TopicAttrs holds the fields shared by every topic variant.
// ResCount is derived at read time from the response collection and is
// never persisted.
type TopicAttrs struct {
	ID        string
	Title     string
	Tags      []string
	Date      time.Time
	Update    time.Time
	AgeUpdate time.Time
	Active    bool
	ResCount  int64
}

// Topic is the tagged union over the three topic variants.
type Topic interface {
	// Kind returns the variant discriminator.
	Kind() TopicKind
	// Attrs returns the shared attributes.
	Attrs() *TopicAttrs
	// Expirable reports whether the staleness sweep may deactivate this topic.
	Expirable() bool
}

// NormalTopic is a standalone discussion thread. It never expires.
type NormalTopic struct {
	TopicAttrs
}

func (t *NormalTopic) Kind() TopicKind { return KindNormal }
func (t *NormalTopic) Attrs() *TopicAttrs { return &t.TopicAttrs }
func (t *NormalTopic) Expirable() bool { return false }

// OneTopic is a single-response topic; it is deactivated once its update
// timestamp falls outside the inactivity window.
type OneTopic struct {
	TopicAttrs
}

func (t *OneTopic) Kind() TopicKind { return KindOne }
func (t *OneTopic) Attrs() *TopicAttrs { return &t.TopicAttrs }
func (t *OneTopic) Expirable() bool { return true }

// ForkTopic is branched off a normal topic and shares its expiry policy
// with OneTopic. Parent references the normal topic it was forked from;
// the reference is established at creation time and preserved verbatim by
// the store.
type ForkTopic struct {
	TopicAttrs
	Parent string
}

func (t *ForkTopic) Kind() TopicKind { return KindFork }
func (t *ForkTopic) Attrs() *TopicAttrs { return &t.TopicAttrs }
func (t *ForkTopic) Expirable() bool { return true }

// NewTopicID returns a fresh opaque topic identifier.
func NewTopicID() string { return uuid.NewString() }

// TagCount is a (tag, usage count) pair from the tag popularity listing.
type TagCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
