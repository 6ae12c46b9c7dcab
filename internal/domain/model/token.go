package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token is a stored refresh token or a blacklisted access token. A TTL
// index on ExpiresAt removes expired documents.
type Token struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Token     string             `bson:"token" json:"token"`
	Type      string             `bson:"type" json:"type"` // "refresh" or "blacklist"
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
