package model

type Apartment struct {
	ID          string `json:"id,omitempty" bson:"_id,omitempty"`
	ApartmentNo string `json:"apartmentNo" bson:"apartmentNo" validate:"required"`
	Block       string `json:"block" bson:"block" validate:"required"`
	Floor       int    `json:"floor" bson:"floor"`
	Rent        int    `json:"rent" bson:"rent" validate:"required,min=0"`
	Image       string `json:"image,omitempty" bson:"image,omitempty"`
	IsAvailable bool   `json:"isAvailable" bson:"isAvailable"`
}

// ApartmentPage is the fixed-size listing payload: at most PageSize
// apartments per page with the overall match count.
type ApartmentPage struct {
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	TotalPages int64       `json:"totalPages"`
	Apartments []Apartment `json:"apartments"`
}
