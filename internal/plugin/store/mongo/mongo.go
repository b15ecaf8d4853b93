package mongo

import (
	"context"
	"fmt"

	"github.com/atboard/board-service/internal/config"
	registrymigrate "github.com/atboard/board-service/internal/registry/migrate"
	registrystore "github.com/atboard/board-service/internal/registry/store"
	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func init() {
	registrystore.Register(registrystore.Plugin{
		Name: "mongo",
		Loader: func(ctx context.Context) (registrystore.BoardStore, error) {
			cfg := config.FromContext(ctx)
			opts := options.Client().ApplyURI(cfg.DBURL)
			if cfg.DBMaxOpenConns > 0 {
				opts.SetMaxPoolSize(uint64(cfg.DBMaxOpenConns))
			}
			if cfg.DBMaxIdleConns > 0 {
				opts.SetMinPoolSize(uint64(cfg.DBMaxIdleConns))
			}
			client, err := mongo.Connect(opts)
			if err != nil {
				return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
			}
			if err := client.Ping(ctx, nil); err != nil {
				return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
			}
			return NewStore(client, cfg.DBName), nil
		},
	})

	registrymigrate.Register(registrymigrate.Plugin{Order: 100, Migrator: &mongoMigrator{}})
}

// ForceImport is a no-op variable that can be referenced to ensure this package's init() runs.
var ForceImport = 0

// MongoStore implements BoardStore on top of MongoDB.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore wraps a connected client. Used by the loader and by tests.
func NewStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(dbName)}
}

func (s *MongoStore) topics() *mongo.Collection   { return s.db.Collection("topics") }
func (s *MongoStore) reses() *mongo.Collection    { return s.db.Collection("reses") }
func (s *MongoStore) profiles() *mongo.Collection { return s.db.Collection("profiles") }

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoMigrator struct{}

func (m *mongoMigrator) Name() string { return "mongo-schema" }

func (m *mongoMigrator) Migrate(ctx context.Context) error {
	cfg := config.FromContext(ctx)
	if cfg != nil && !cfg.DatastoreMigrateAtStart {
		return nil
	}
	if cfg.DatastoreType != "mongo" {
		return nil
	}

	log.Info("Running migration", "name", m.Name())
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.DBURL))
	if err != nil {
		return fmt.Errorf("mongo migration: failed to connect: %w", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.DBName)

	collections := map[string][]mongo.IndexModel{
		"topics": {
			{Keys: bson.D{{Key: "ageUpdate", Value: -1}}},
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "active", Value: 1}, {Key: "update", Value: 1}}},
			{Keys: bson.D{{Key: "tags", Value: 1}}},
			{Keys: bson.D{{Key: "parent", Value: 1}}},
		},
		"reses": {
			{Keys: bson.D{{Key: "topic", Value: 1}}},
		},
		"profiles": {
			{Keys: bson.D{{Key: "user", Value: 1}}},
			{
				Keys:    bson.D{{Key: "sn", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for name, indexes := range collections {
		db.CreateCollection(ctx, name)
		if len(indexes) > 0 {
			if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
				return fmt.Errorf("mongo migration: failed to create indexes for %s: %w", name, err)
			}
		}
	}

	log.Info("MongoDB schema migration complete")
	return nil
}
