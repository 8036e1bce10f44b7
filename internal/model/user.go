package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account.
type User struct {
	ID                  bson.ObjectID `bson:"_id,omitempty"       json:"id"`
	Name                string        `bson:"name"                json:"name"`
	Email               string        `bson:"email"               json:"email"`
	PasswordHash        string        `bson:"password_hash"       json:"-"`
	ResetToken          string        `bson:"reset_token,omitempty"            json:"-"`
	ResetTokenExpiresAt time.Time     `bson:"reset_token_expires_at,omitempty" json:"-"`
	CreatedAt           time.Time     `bson:"created_at"          json:"createdAt"`
	UpdatedAt           time.Time     `bson:"updated_at"          json:"updatedAt"`
}
