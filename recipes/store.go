package recipes

import (
	"context"
	"errors"

	"rasoi/db"
	"rasoi/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("recipe not found")

// Store persists recipe documents. Each category maps to its own collection;
// the logic on top is written once and parameterized.
type Store interface {
	Insert(ctx context.Context, category string, recipe *models.Recipe) error
	All(ctx context.Context, category string) ([]models.Recipe, error)
	ByAuthor(ctx context.Context, category, authorID string) ([]models.Recipe, error)
	ByID(ctx context.Context, category string, id primitive.ObjectID) (*models.Recipe, error)
	Update(ctx context.Context, category string, id primitive.ObjectID, updates bson.M) (*models.Recipe, error)
	Delete(ctx context.Context, category string, id primitive.ObjectID) error
}

// store is swapped for a fake in tests.
var store Store = &mongoStore{}

type mongoStore struct{}

func (s *mongoStore) Insert(ctx context.Context, category string, recipe *models.Recipe) error {
	coll, err := db.Recipes(category)
	if err != nil {
		return err
	}

	result, err := coll.InsertOne(ctx, recipe)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		recipe.ID = oid
	}
	return nil
}

func (s *mongoStore) All(ctx context.Context, category string) ([]models.Recipe, error) {
	return s.find(ctx, category, bson.M{})
}

func (s *mongoStore) ByAuthor(ctx context.Context, category, authorID string) ([]models.Recipe, error) {
	return s.find(ctx, category, bson.M{"author": authorID})
}

func (s *mongoStore) find(ctx context.Context, category string, filter bson.M) ([]models.Recipe, error) {
	coll, err := db.Recipes(category)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *mongoStore) ByID(ctx context.Context, category string, id primitive.ObjectID) (*models.Recipe, error) {
	coll, err := db.Recipes(category)
	if err != nil {
		return nil, err
	}

	var recipe models.Recipe
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *mongoStore) Update(ctx context.Context, category string, id primitive.ObjectID, updates bson.M) (*models.Recipe, error) {
	coll, err := db.Recipes(category)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var recipe models.Recipe
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *mongoStore) Delete(ctx context.Context, category string, id primitive.ObjectID) error {
	coll, err := db.Recipes(category)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
