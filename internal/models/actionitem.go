package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ActionItem is a document in the actionitems collection, owned by a retro.
// Same lifecycle as Thought: deleting the retro leaves items in place.
type ActionItem struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	Description string             `json:"description" bson:"description"`
	Name        string             `json:"name"        bson:"name"`
	Retro       primitive.ObjectID `json:"retro"       bson:"retro"`
}

// CreateActionItemRequest is the JSON body for POST /retros/{retro}/actionitems.
type CreateActionItemRequest struct {
	Description string `json:"description"`
	Name        string `json:"name"`
}
