package model

import "time"

// Payment is one row of the append-only rent ledger, keyed by the
// paying member's email for history lookups.
type Payment struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty"`
	Email         string    `json:"email" bson:"email" validate:"required,email"`
	ApartmentNo   string    `json:"apartmentNo" bson:"apartmentNo"`
	Month         string    `json:"month" bson:"month" validate:"required"`
	Rent          int       `json:"rent" bson:"rent" validate:"required,min=0"`
	TransactionID string    `json:"transactionId" bson:"transactionId"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
