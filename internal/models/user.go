package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a document in the users collection. The password hash and the
// access token never appear in JSON responses; signup/signin return the
// token through a dedicated response type.
type User struct {
	ID       primitive.ObjectID `json:"id"       bson:"_id,omitempty"`
	Username string             `json:"username" bson:"username"`
	Password string             `json:"-"        bson:"password"`
	Token    string             `json:"-"        bson:"token"`
}

// UserRef is the populated form of a user reference embedded in retro
// responses.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Ref returns the reference projection of the user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID.Hex(), Username: u.Username}
}

// SignupRequest is the JSON body for POST /signup and POST /signin.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
