package model

import "time"

// Role is the closed set of access levels. Admins are pre-seeded in the
// store and never created through the API; members are promoted from
// users when an agreement is accepted.
type Role string

const (
	RoleUser   Role = "user"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleMember, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email       string     `json:"email" bson:"email" validate:"required,email"`
	Role        Role       `json:"role" bson:"role" validate:"omitempty,oneof=user member admin"`
	ApartmentNo string     `json:"apartmentNo,omitempty" bson:"apartmentNo,omitempty"`
	Block       string     `json:"block,omitempty" bson:"block,omitempty"`
	Floor       int        `json:"floor,omitempty" bson:"floor,omitempty"`
	Rent        int        `json:"rent,omitempty" bson:"rent,omitempty"`
	AgreementAt *time.Time `json:"agreementAt,omitempty" bson:"agreementAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
}
