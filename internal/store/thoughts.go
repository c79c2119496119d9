package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"retroboard/internal/common"
	"retroboard/internal/models"
)

// InsertThought inserts a thought. The category enumeration is enforced
// here, at the persistence layer, not in the route.
func (s *MongoStore) InsertThought(ctx context.Context, thought *models.Thought) error {
	if !models.ValidCategory(thought.Category) {
		return fmt.Errorf("category %q is not one of Drop, Add, Keep, Improve: %w", thought.Category, common.ErrInvalidInput)
	}
	res, err := s.thoughts.InsertOne(ctx, thought)
	if err != nil {
		return fmt.Errorf("insert thought: %w", err)
	}
	thought.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetThought returns the thought with the given hex id.
func (s *MongoStore) GetThought(ctx context.Context, id string) (*models.Thought, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var thought models.Thought
	err = s.thoughts.FindOne(ctx, bson.M{"_id": oid}).Decode(&thought)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("thought %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find thought: %w", err)
	}
	return &thought, nil
}

// UpdateThought applies the given fields as a $set overwrite and returns
// the post-update document. A category change is re-validated.
func (s *MongoStore) UpdateThought(ctx context.Context, id string, fields map[string]interface{}) (*models.Thought, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	delete(fields, "_id")
	delete(fields, "id")
	// The server rejects an empty $set; a body with no updatable fields
	// is a no-op returning the current document.
	if len(fields) == 0 {
		return s.GetThought(ctx, id)
	}
	if category, ok := fields["category"].(string); ok && !models.ValidCategory(category) {
		return nil, fmt.Errorf("category %q is not one of Drop, Add, Keep, Improve: %w", category, common.ErrInvalidInput)
	}

	var thought models.Thought
	err = s.thoughts.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&thought)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("thought %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update thought: %w", err)
	}
	return &thought, nil
}

// DeleteThought removes a thought and returns the deleted document.
func (s *MongoStore) DeleteThought(ctx context.Context, id string) (*models.Thought, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var thought models.Thought
	err = s.thoughts.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&thought)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("thought %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete thought: %w", err)
	}
	return &thought, nil
}

// ListThoughts returns thoughts matching the flat filter.
func (s *MongoStore) ListThoughts(ctx context.Context, filter map[string]string) ([]models.Thought, error) {
	cur, err := s.thoughts.Find(ctx, toBSON(filter))
	if err != nil {
		return nil, fmt.Errorf("list thoughts: %w", err)
	}
	defer cur.Close(ctx)

	var thoughts []models.Thought
	if err := cur.All(ctx, &thoughts); err != nil {
		return nil, fmt.Errorf("decode thoughts: %w", err)
	}
	return thoughts, nil
}
