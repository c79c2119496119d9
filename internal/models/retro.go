package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Retro is a document in the retros collection. Admin and participants are
// stored as user ObjectID references and populated on read.
type Retro struct {
	ID           primitive.ObjectID   `json:"id"           bson:"_id,omitempty"`
	Description  string               `json:"description"  bson:"description"`
	Admin        primitive.ObjectID   `json:"admin"        bson:"admin"`
	Participants []primitive.ObjectID `json:"participants" bson:"participants"`
	Active       bool                 `json:"active"       bson:"active"`
	CreatedAt    int64                `json:"created_at"   bson:"created_at"` // epoch millis
}

// CreateRetroRequest is the JSON body for POST /retros. Participants carry
// usernames in their text field; unknown usernames are dropped during
// resolution.
type CreateRetroRequest struct {
	Description  string            `json:"description"`
	Admin        string            `json:"admin"`
	Participants []ParticipantName `json:"participants"`
	Active       bool              `json:"active"`
}

// ParticipantName wraps a username as sent by the retro creation form.
type ParticipantName struct {
	Text string `json:"text"`
}
