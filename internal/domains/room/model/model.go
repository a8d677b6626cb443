package model

import "lodge/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldNumber      = "number"
	FieldType        = "type"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldDescription = "description"
	FieldAmenities   = "amenities"
	FieldStatus      = "status"
	FieldImage       = "image"
)

type Room struct {
	ID          string  `db:"id"`
	Number      string  `db:"number"`
	Type        string  `db:"type"`
	Price       float64 `db:"price"`
	Capacity    int     `db:"capacity"`
	Description string  `db:"description"`
	Amenities   string  `db:"amenities"`
	Status      string  `db:"status"`
	Image       string  `db:"image"`
	model.Metadata
}
