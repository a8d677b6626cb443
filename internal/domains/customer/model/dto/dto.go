package dto

import (
	"lodge/internal/domains/customer/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Name          string `json:"name"            validate:"required,max=100"`
	Email         string `json:"email"           validate:"required,email,max=100"`
	Phone         string `json:"phone"           validate:"omitempty,max=20"`
	Address       string `json:"address"         validate:"omitempty,max=255"`
	IDProofType   string `json:"id_proof_type"   validate:"omitempty,max=50"`
	IDProofNumber string `json:"id_proof_number" validate:"omitempty,max=50"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:            uuid.NewString(),
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		IDProofType:   c.IDProofType,
		IDProofNumber: c.IDProofNumber,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	Name          string `db:"name"            json:"name"            validate:"omitempty,max=100"`
	Email         string `db:"email"           json:"email"           validate:"omitempty,email,max=100"`
	Phone         string `db:"phone"           json:"phone"           validate:"omitempty,max=20"`
	Address       string `db:"address"         json:"address"         validate:"omitempty,max=255"`
	IDProofType   string `db:"id_proof_type"   json:"id_proof_type"   validate:"omitempty,max=50"`
	IDProofNumber string `db:"id_proof_number" json:"id_proof_number" validate:"omitempty,max=50"`
}

type CustomerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IDProofType   string `json:"id_proof_type"`
	IDProofNumber string `json:"id_proof_number"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Address = model.Address
	r.IDProofType = model.IDProofType
	r.IDProofNumber = model.IDProofNumber
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
