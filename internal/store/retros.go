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

// InsertRetro inserts a retro and fills in the generated id.
func (s *MongoStore) InsertRetro(ctx context.Context, retro *models.Retro) error {
	res, err := s.retros.InsertOne(ctx, retro)
	if err != nil {
		return fmt.Errorf("insert retro: %w", err)
	}
	retro.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetRetro returns the retro with the given hex id.
func (s *MongoStore) GetRetro(ctx context.Context, id string) (*models.Retro, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var retro models.Retro
	err = s.retros.FindOne(ctx, bson.M{"_id": oid}).Decode(&retro)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("retro %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find retro: %w", err)
	}
	return &retro, nil
}

// UpdateRetro applies the given fields as a $set overwrite and returns the
// post-update document.
func (s *MongoStore) UpdateRetro(ctx context.Context, id string, fields map[string]interface{}) (*models.Retro, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	delete(fields, "_id")
	delete(fields, "id")
	// The server rejects an empty $set; a body with no updatable fields
	// is a no-op returning the current document.
	if len(fields) == 0 {
		return s.GetRetro(ctx, id)
	}

	var retro models.Retro
	err = s.retros.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&retro)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("retro %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update retro: %w", err)
	}
	return &retro, nil
}

// DeleteRetro removes a retro and returns the deleted document. Thoughts
// and action items referencing it are deliberately left untouched.
func (s *MongoStore) DeleteRetro(ctx context.Context, id string) (*models.Retro, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var retro models.Retro
	err = s.retros.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&retro)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("retro %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete retro: %w", err)
	}
	return &retro, nil
}

// ListRetros returns retros matching the flat filter.
func (s *MongoStore) ListRetros(ctx context.Context, filter map[string]string) ([]models.Retro, error) {
	return s.findRetros(ctx, toBSON(filter))
}

// ListRetrosForUser returns retros where the user is admin or participant.
func (s *MongoStore) ListRetrosForUser(ctx context.Context, userID string) ([]models.Retro, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return s.findRetros(ctx, bson.M{"$or": bson.A{
		bson.M{"admin": oid},
		bson.M{"participants": oid},
	}})
}

func (s *MongoStore) findRetros(ctx context.Context, filter bson.M) ([]models.Retro, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.retros.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list retros: %w", err)
	}
	defer cur.Close(ctx)

	var retros []models.Retro
	if err := cur.All(ctx, &retros); err != nil {
		return nil, fmt.Errorf("decode retros: %w", err)
	}
	return retros, nil
}
