package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	UserID    string    `json:"id" bson:"userid"`
	Username  string    `json:"username" bson:"username"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"-" bson:"created_at"`
}

// Author is the public slice of a user embedded in recipe reads.
// The password hash never travels through this type.
type Author struct {
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`
}

type Recipe struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Image       string             `json:"image" bson:"image"`
	AuthorID    string             `json:"author_id" bson:"author"`
	Author      *Author            `json:"author,omitempty" bson:"-"`
	Ingredients []string           `json:"ingredients" bson:"ingredients"`
	HowTo       []string           `json:"how_to" bson:"how_to"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// Categories are the four recipe partitions, each backed by its own collection.
var Categories = []string{"breakfast", "lunch", "snacks", "dinner"}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
