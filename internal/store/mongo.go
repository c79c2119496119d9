package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"retroboard/internal/common"
)

// MongoStore handles CRUD for all four collections.
type MongoStore struct {
	users       *mongo.Collection
	retros      *mongo.Collection
	thoughts    *mongo.Collection
	actionItems *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users:       db.Collection("users"),
		retros:      db.Collection("retros"),
		thoughts:    db.Collection("thoughts"),
		actionItems: db.Collection("actionitems"),
	}
}

// EnsureIndexes creates the unique username index. Run once at startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure username index: %w", err)
	}
	return nil
}

// objectID parses a hex id from a URL parameter, classifying malformed
// values as invalid input rather than a driver error.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("malformed id %q: %w", id, common.ErrInvalidInput)
	}
	return oid, nil
}

// referenceFields are the document fields holding ObjectID references.
// Coercion is limited to them: a plain string field keeps its value even
// when it happens to be valid 24-char hex.
var referenceFields = map[string]bool{
	"_id":          true,
	"retro":        true,
	"admin":        true,
	"participants": true,
}

// toBSON converts a flat query-parameter filter into a bson filter.
// Reference fields are coerced to ObjectIDs and the active flag to a bool
// so they remain matchable from a query string; everything else is
// matched verbatim.
func toBSON(filter map[string]string) bson.M {
	out := bson.M{}
	for key, value := range filter {
		if referenceFields[key] {
			if oid, err := primitive.ObjectIDFromHex(value); err == nil {
				out[key] = oid
				continue
			}
		}
		if key == "active" {
			switch value {
			case "true":
				out[key] = true
				continue
			case "false":
				out[key] = false
				continue
			}
		}
		out[key] = value
	}
	return out
}
