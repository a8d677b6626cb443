package dto

import (
	"mime/multipart"

	"lodge/internal/domains/room/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number      string                `json:"number"      validate:"required,max=20"`
	Type        string                `json:"type"        validate:"required,max=50"`
	Price       float64               `json:"price"       validate:"required,gt=0"`
	Capacity    int                   `json:"capacity"    validate:"required,min=1"`
	Description string                `json:"description" validate:"omitempty,max=500"`
	Amenities   string                `json:"amenities"   validate:"omitempty,max=500"`
	Status      string                `json:"status"      validate:"omitempty,oneof=available booked maintenance"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	status := c.Status
	if status == constant.Empty {
		status = constant.RoomStatusAvailable
	}

	return model.Room{
		ID:          uuid.NewString(),
		Number:      c.Number,
		Type:        c.Type,
		Price:       c.Price,
		Capacity:    c.Capacity,
		Description: c.Description,
		Amenities:   c.Amenities,
		Status:      status,
		Image:       imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number      string                `db:"number"      json:"number"      validate:"omitempty,max=20"`
	Type        string                `db:"type"        json:"type"        validate:"omitempty,max=50"`
	Price       *float64              `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=500"`
	Amenities   string                `db:"amenities"   json:"amenities"   validate:"omitempty,max=500"`
	Status      string                `db:"status"      json:"status"      validate:"omitempty,oneof=available booked maintenance"`
	Image       *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID          string  `json:"id"`
	Number      string  `json:"number"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	Description string  `json:"description"`
	Amenities   string  `json:"amenities"`
	Status      string  `json:"status"`
	Image       string  `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Description = model.Description
	r.Amenities = model.Amenities
	r.Status = model.Status
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
