package models

import "time"

// User records an anonymous dashboard session identity. There are no
// passwords; sign-in mints a fresh staff id and a session token.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Anonymous bool      `bson:"anonymous" json:"anonymous"`
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}
