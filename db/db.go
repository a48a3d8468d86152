package db

import (
	"context"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// One client is shared process-wide and established on first use, so a burst
// of concurrent first requests cannot race to connect twice.
var (
	once     sync.Once
	client   *mongo.Client
	database *mongo.Database
	connErr  error
)

func connect() error {
	once.Do(func() {
		uri := os.Getenv("MONGODB_URI")
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		name := os.Getenv("MONGODB_NAME")
		if name == "" {
			name = "recipedb"
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, connErr = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if connErr != nil {
			return
		}
		database = client.Database(name)
		connErr = ensureIndexes(ctx)
	})
	return connErr
}

// ensureIndexes backs username/email uniqueness at the storage layer, so a
// duplicate insert fails even if two registrations race past the lookup.
func ensureIndexes(ctx context.Context) error {
	_, err := database.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func Users() (*mongo.Collection, error) {
	if err := connect(); err != nil {
		return nil, err
	}
	return database.Collection("users"), nil
}

// Recipes returns the collection backing one category. Callers validate the
// category against models.Categories before reaching here.
func Recipes(category string) (*mongo.Collection, error) {
	if err := connect(); err != nil {
		return nil, err
	}
	return database.Collection(category), nil
}

func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
