package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User mirrors the identity-provider profile of a signed-in user. The
// provider owns identity; this document only caches what the UI renders.
type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ExternalID string             `json:"externalId" bson:"external_id"`
	FullName   string             `json:"fullName" bson:"full_name"`
	ImageURL   string             `json:"imageUrl" bson:"image_url"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updated_at"`
}
