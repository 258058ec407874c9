package model

import "time"

type Coupon struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Code        string    `json:"code" bson:"code" validate:"required,min=2,max=30,uppercase"`
	Discount    int       `json:"discount" bson:"discount" validate:"required,min=1,max=100"`
	Description string    `json:"description" bson:"description" validate:"required"`
	IsAvailable bool      `json:"isAvailable" bson:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
