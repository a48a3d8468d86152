package auth

import (
	"context"
	"errors"

	"rasoi/db"
	"rasoi/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrDuplicate    = errors.New("username or email already taken")
)

// CredentialStore persists user records. Usernames and emails are unique,
// enforced by indexes, so Create fails with ErrDuplicate on a collision even
// when two registrations race past FindByUsernameOrEmail.
type CredentialStore interface {
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// Creds is swapped for a fake in tests.
var Creds CredentialStore = &mongoCredentialStore{}

type mongoCredentialStore struct{}

func (s *mongoCredentialStore) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	coll, err := db.Users()
	if err != nil {
		return nil, err
	}

	var user models.User
	filter := bson.M{"$or": []bson.M{{"username": username}, {"email": email}}}
	if err := coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *mongoCredentialStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	coll, err := db.Users()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *mongoCredentialStore) Create(ctx context.Context, user *models.User) error {
	coll, err := db.Users()
	if err != nil {
		return err
	}

	if _, err := coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}
