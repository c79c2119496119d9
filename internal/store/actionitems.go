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

// InsertActionItem inserts an action item and fills in the generated id.
func (s *MongoStore) InsertActionItem(ctx context.Context, item *models.ActionItem) error {
	res, err := s.actionItems.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("insert action item: %w", err)
	}
	item.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// GetActionItem returns the action item with the given hex id.
func (s *MongoStore) GetActionItem(ctx context.Context, id string) (*models.ActionItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var item models.ActionItem
	err = s.actionItems.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("action item %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find action item: %w", err)
	}
	return &item, nil
}

// UpdateActionItem applies the given fields as a $set overwrite and returns
// the post-update document.
func (s *MongoStore) UpdateActionItem(ctx context.Context, id string, fields map[string]interface{}) (*models.ActionItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	delete(fields, "_id")
	delete(fields, "id")
	// The server rejects an empty $set; a body with no updatable fields
	// is a no-op returning the current document.
	if len(fields) == 0 {
		return s.GetActionItem(ctx, id)
	}

	var item models.ActionItem
	err = s.actionItems.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("action item %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update action item: %w", err)
	}
	return &item, nil
}

// DeleteActionItem removes an action item and returns the deleted document.
func (s *MongoStore) DeleteActionItem(ctx context.Context, id string) (*models.ActionItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var item models.ActionItem
	err = s.actionItems.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("action item %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete action item: %w", err)
	}
	return &item, nil
}

// ListActionItems returns action items matching the flat filter.
func (s *MongoStore) ListActionItems(ctx context.Context, filter map[string]string) ([]models.ActionItem, error) {
	cur, err := s.actionItems.Find(ctx, toBSON(filter))
	if err != nil {
		return nil, fmt.Errorf("list action items: %w", err)
	}
	defer cur.Close(ctx)

	var items []models.ActionItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode action items: %w", err)
	}
	return items, nil
}
