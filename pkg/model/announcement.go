package model

import "time"

type Announcement struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description string    `json:"description" bson:"description" validate:"required"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
