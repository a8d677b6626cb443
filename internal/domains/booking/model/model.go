package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldRoomID        = "room_id"
	FieldCustomerID    = "customer_id"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldTotalAmount   = "total_amount"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
)

type Booking struct {
	ID            string    `db:"id"`
	RoomID        string    `db:"room_id"`
	CustomerID    string    `db:"customer_id"`
	CheckIn       time.Time `db:"check_in"`
	CheckOut      time.Time `db:"check_out"`
	TotalAmount   float64   `db:"total_amount"`
	Status        string    `db:"status"`
	PaymentStatus string    `db:"payment_status"`
	model.Metadata
}

// Nights returns the number of calendar nights covered by the stay. Check-out
// day is exclusive, so a one-day stay counts as one night.
func (b *Booking) Nights() int {
	return NightsBetween(b.CheckIn, b.CheckOut)
}

// NightsBetween counts calendar nights between two dates. Both ends are
// truncated to their calendar date before subtracting, so a stay spanning a
// daylight saving change still charges every night.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in).Hours() / 24)
}
