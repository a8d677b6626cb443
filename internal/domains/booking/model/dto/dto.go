package dto

import (
	"time"

	"lodge/internal/domains/booking/model"
	customerModel "lodge/internal/domains/customer/model"
	roomModel "lodge/internal/domains/room/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID     string `json:"room_id"     validate:"required,uuid"`
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	CheckIn    string `json:"check_in"    validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out"   validate:"required,datetime=2006-01-02"`
}

// ParseDates converts the request dates into timestamps and rejects empty or
// inverted ranges.
func (c *CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse(constant.BookingDateFmt, c.CheckIn)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("invalid check_in date")
	}

	checkOut, err = timezone.Parse(constant.BookingDateFmt, c.CheckOut)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("invalid check_out date")
	}

	if !checkIn.Before(checkOut) {
		return checkIn, checkOut, failure.BadRequestFromString("check_out must be after check_in")
	}

	return checkIn, checkOut, nil
}

func (c *CreateBookingRequest) ToModel(user string, checkIn, checkOut time.Time, totalAmount float64) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		RoomID:        c.RoomID,
		CustomerID:    c.CustomerID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		TotalAmount:   totalAmount,
		Status:        constant.BookingStatusActive,
		PaymentStatus: constant.PaymentStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type BookingRoom struct {
	Number string  `json:"number"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
}

type BookingCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID            string          `json:"id"`
	RoomID        string          `json:"room_id"`
	CustomerID    string          `json:"customer_id"`
	CheckIn       string          `json:"check_in"`
	CheckOut      string          `json:"check_out"`
	TotalAmount   float64         `json:"total_amount"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Room          BookingRoom     `json:"room"`
	Customer      BookingCustomer `json:"customer"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking, room roomModel.Room, customer customerModel.Customer) {
	r.ID = booking.ID
	r.RoomID = booking.RoomID
	r.CustomerID = booking.CustomerID
	r.CheckIn = booking.CheckIn.Format(constant.BookingDateFmt)
	r.CheckOut = booking.CheckOut.Format(constant.BookingDateFmt)
	r.TotalAmount = booking.TotalAmount
	r.Status = booking.Status
	r.PaymentStatus = booking.PaymentStatus
	r.Room = BookingRoom{
		Number: room.Number,
		Type:   room.Type,
		Price:  room.Price,
	}
	r.Customer = BookingCustomer{
		Name:  customer.Name,
		Email: customer.Email,
	}
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(bookings []model.Booking, rooms map[string]roomModel.Room, customers map[string]customerModel.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		r.Bookings[i].FromModel(booking, rooms[booking.RoomID], customers[booking.CustomerID])
	}
}

// BookingEvent is the payload published to Kafka on lifecycle changes.
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	RoomID      string    `json:"room_id"`
	CustomerID  string    `json:"customer_id"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

const (
	BookingEventCreated   = "booking.created"
	BookingEventCompleted = "booking.completed"
)
