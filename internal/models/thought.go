package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Thought categories. The store rejects anything else.
const (
	CategoryDrop    = "Drop"
	CategoryAdd     = "Add"
	CategoryKeep    = "Keep"
	CategoryImprove = "Improve"
)

// ValidCategory reports whether c is one of the four thought categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryDrop, CategoryAdd, CategoryKeep, CategoryImprove:
		return true
	}
	return false
}

// Thought is a document in the thoughts collection, owned by a retro.
// Deleting the retro does not remove its thoughts.
type Thought struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	Description string             `json:"description" bson:"description"`
	Retro       primitive.ObjectID `json:"retro"       bson:"retro"`
	Category    string             `json:"category"    bson:"category"`
}

// CreateThoughtRequest is the JSON body for POST /retros/{retro}/thoughts.
type CreateThoughtRequest struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}
