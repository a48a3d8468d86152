// Package userdata resolves author ids to their public identity for recipe
// reads. A Redis side-cache fronts the users collection; cache failures fall
// back to Mongo.
package userdata

import (
	"context"
	"encoding/json"
	"log"

	"rasoi/db"
	"rasoi/models"
	"rasoi/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

const cachePrefix = "users:"

// CacheAuthor stores the public identity of a user. Users are immutable in
// this system, so entries never go stale.
func CacheAuthor(user *models.User) {
	author := models.Author{Username: user.Username, Email: user.Email}
	data, err := json.Marshal(author)
	if err != nil {
		return
	}
	if err := rdx.RdxSet(cachePrefix+user.UserID, string(data)); err != nil {
		log.Printf("Failed to cache author %s: %v", user.UserID, err)
	}
}

// AttachAuthors resolves the author of every recipe in the slice to a
// {username, email} pair, batching the Mongo lookup for cache misses.
func AttachAuthors(ctx context.Context, recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	authors := make(map[string]models.Author)
	var missing []string
	seen := make(map[string]bool)

	for _, recipe := range recipes {
		id := recipe.AuthorID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		if cached, err := rdx.RdxGet(cachePrefix + id); err == nil {
			var author models.Author
			if json.Unmarshal([]byte(cached), &author) == nil {
				authors[id] = author
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		fetched, err := fetchAuthors(ctx, missing)
		if err != nil {
			return err
		}
		for id, author := range fetched {
			authors[id] = author
			if data, err := json.Marshal(author); err == nil {
				if err := rdx.RdxSet(cachePrefix+id, string(data)); err != nil {
					log.Printf("Failed to cache author %s: %v", id, err)
				}
			}
		}
	}

	for i := range recipes {
		if author, ok := authors[recipes[i].AuthorID]; ok {
			a := author
			recipes[i].Author = &a
		}
	}
	return nil
}

func fetchAuthors(ctx context.Context, ids []string) (map[string]models.Author, error) {
	coll, err := db.Users()
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"userid": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	authors := make(map[string]models.Author, len(users))
	for _, user := range users {
		authors[user.UserID] = models.Author{Username: user.Username, Email: user.Email}
	}
	return authors, nil
}
