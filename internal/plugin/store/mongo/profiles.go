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

type profileDoc struct {
	ID     string    `bson:"_id"`
	User   string    `bson:"user"`
	Name   string    `bson:"name"`
	Text   string    `bson:"text"`
	MDText string    `bson:"mdtext"`
	Date   time.Time `bson:"date"`
	Update time.Time `bson:"update"`
	SN     string    `bson:"sn"`
}

func profileToDoc(p *model.Profile) profileDoc {
	return profileDoc{
		ID:     p.ID,
		User:   p.User,
		Name:   p.Name,
		Text:   p.Text,
		MDText: p.MDText,
		Date:   p.Date,
		Update: p.Update,
		SN:     p.SN,
	}
}

func profileFromDoc(d profileDoc) *model.Profile {
	return &model.Profile{
		ID:     d.ID,
		User:   d.User,
		Name:   d.Name,
		Text:   d.Text,
		MDText: d.MDText,
		Date:   d.Date,
		Update: d.Update,
		SN:     d.SN,
	}
}

// FindProfile returns the profile for id.
func (s *MongoStore) FindProfile(ctx context.Context, id string) (*model.Profile, error) {
	var doc profileDoc
	err := s.profiles().FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &registrystore.NotFoundError{Resource: "profile", ID: id}
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profileFromDoc(doc), nil
}

// FindProfilesByUser lists the profiles owned by a user, newest first.
func (s *MongoStore) FindProfilesByUser(ctx context.Context, userID string) ([]*model.Profile, error) {
	cursor, err := s.profiles().Find(ctx,
		bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find profiles by user: %w", err)
	}
	var docs []profileDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	profiles := make([]*model.Profile, len(docs))
	for i, d := range docs {
		profiles[i] = profileFromDoc(d)
	}
	return profiles, nil
}

// InsertProfile persists a new profile record.
func (s *MongoStore) InsertProfile(ctx context.Context, p *model.Profile) error {
	if _, err := s.profiles().InsertOne(ctx, profileToDoc(p)); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// UpdateProfile replaces the stored record keyed by identity.
func (s *MongoStore) UpdateProfile(ctx context.Context, p *model.Profile) error {
	if _, err := s.profiles().ReplaceOne(ctx, bson.M{"_id": p.ID}, profileToDoc(p)); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
