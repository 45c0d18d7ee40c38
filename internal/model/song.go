package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Song is a playable track. AudioURL and ImageURL point at the media CDN.
type Song struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Title     string              `json:"title" bson:"title"`
	Artist    string              `json:"artist" bson:"artist"`
	ImageURL  string              `json:"imageUrl" bson:"image_url"`
	AudioURL  string              `json:"audioUrl" bson:"audio_url"`
	Duration  int                 `json:"duration" bson:"duration"`
	AlbumID   *primitive.ObjectID `json:"albumId" bson:"album_id,omitempty"`
	CreatedAt time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updated_at"`
}
