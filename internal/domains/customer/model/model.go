package model

import "lodge/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID            = "id"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldAddress       = "address"
	FieldIDProofType   = "id_proof_type"
	FieldIDProofNumber = "id_proof_number"
)

type Customer struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Email         string `db:"email"`
	Phone         string `db:"phone"`
	Address       string `db:"address"`
	IDProofType   string `db:"id_proof_type"`
	IDProofNumber string `db:"id_proof_number"`
	model.Metadata
}
