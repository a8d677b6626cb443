package model

import (
	"database/sql"

	"lodge/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldFullName  = "full_name"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

type User struct {
	ID        string       `db:"id"`
	Username  string       `db:"username"`
	Password  string       `db:"password"`
	FullName  string       `db:"full_name"`
	Role      string       `db:"role"`
	Active    bool         `db:"active"`
	LastLogin sql.NullTime `db:"last_login"`
	model.Metadata
}
