package model

import (
	"cleanbook/shared/constant"
	"cleanbook/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID             = "id"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldPhone          = "phone"
	FieldServiceAddress = "service_address"
	FieldCity           = "city"
	FieldState          = "state"
	FieldZipCode        = "zip_code"
	FieldHomeType       = "home_type"
	FieldBedrooms       = "bedrooms"
	FieldBathrooms      = "bathrooms"
	FieldCleaningPrice  = "cleaning_price"
	FieldRole           = "role"
)

const (
	HomeTypeHouse     = "house"
	HomeTypeApartment = "apartment"
)

type User struct {
	ID             string  `db:"id"`
	Email          string  `db:"email"`
	Password       string  `db:"password"`
	FirstName      string  `db:"first_name"`
	LastName       string  `db:"last_name"`
	Phone          string  `db:"phone"`
	ServiceAddress string  `db:"service_address"`
	City           string  `db:"city"`
	State          string  `db:"state"`
	ZipCode        string  `db:"zip_code"`
	HomeType       string  `db:"home_type"`
	Bedrooms       int     `db:"bedrooms"`
	Bathrooms      int     `db:"bathrooms"`
	CleaningPrice  float64 `db:"cleaning_price"`
	Role           string  `db:"role"`
	model.Metadata
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

func (u User) IsAdmin() bool {
	return u.Role == constant.RoleAdmin
}
