package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Album struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Artist      string               `json:"artist" bson:"artist"`
	ImageURL    string               `json:"imageUrl" bson:"image_url"`
	ReleaseYear int                  `json:"releaseYear" bson:"release_year"`
	Songs       []primitive.ObjectID `json:"songs" bson:"songs"`
	CreatedAt   time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updated_at"`
}

// AlbumDetail is an album with its songs resolved, as returned by the
// album-by-id endpoint. The outer Songs field shadows Album.Songs in JSON.
type AlbumDetail struct {
	Album
	Songs []Song `json:"songs"`
}
