package model

import "time"

// AgreementStatus has two states: every agreement starts pending and is
// marked checked once an admin has accepted or rejected it. The outcome
// itself is carried by the side effects on the user and apartment
// records, not by the status field.
type AgreementStatus string

const (
	AgreementPending AgreementStatus = "pending"
	AgreementChecked AgreementStatus = "checked"
)

type Agreement struct {
	ID          string          `json:"id,omitempty" bson:"_id,omitempty"`
	UserName    string          `json:"userName" bson:"userName" validate:"required,min=2,max=100"`
	UserEmail   string          `json:"userEmail" bson:"userEmail" validate:"required,email"`
	ApartmentNo string          `json:"apartmentNo" bson:"apartmentNo" validate:"required"`
	Block       string          `json:"block" bson:"block" validate:"required"`
	Floor       int             `json:"floor" bson:"floor"`
	Rent        int             `json:"rent" bson:"rent" validate:"required,min=0"`
	Status      AgreementStatus `json:"status" bson:"status"`
	CreatedDate time.Time       `json:"createdDate" bson:"createdDate"`
}
