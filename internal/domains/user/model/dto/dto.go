package dto

import (
	"cleanbook/internal/domains/user/model"
	gDto "cleanbook/shared/dto"
	"cleanbook/shared/pricing"
	"strings"
)

type HomeSize struct {
	Bedrooms  int `json:"bedrooms"  validate:"required,min=1,max=9"`
	Bathrooms int `json:"bathrooms" validate:"required,min=1,max=9"`
}

type ProfileResponse struct {
	ID             string   `json:"id"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	ServiceAddress string   `json:"serviceAddress"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	ZipCode        string   `json:"zipCode"`
	HomeType       string   `json:"homeType"`
	HomeSize       HomeSize `json:"homeSize"`
	CleaningPrice  float64  `json:"cleaningPrice"`
	Role           string   `json:"role"`
	gDto.Metadata
}

func (r *ProfileResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.FirstName = user.FirstName
	r.LastName = user.LastName
	r.Email = user.Email
	r.Phone = user.Phone
	r.ServiceAddress = user.ServiceAddress
	r.City = user.City
	r.State = user.State
	r.ZipCode = user.ZipCode
	r.HomeType = user.HomeType
	r.HomeSize = HomeSize{Bedrooms: user.Bedrooms, Bathrooms: user.Bathrooms}
	r.CleaningPrice = user.CleaningPrice
	r.Role = user.Role
	r.Metadata.FromModel(user.Metadata)
}

// HomeSizeUpdate accepts any integers; non-positive counts fall back to one room.
type HomeSizeUpdate struct {
	Bedrooms  int `json:"bedrooms"`
	Bathrooms int `json:"bathrooms"`
}

type UpdateProfileRequest struct {
	FirstName      string          `json:"firstName,omitempty"      validate:"omitempty,max=100"`
	LastName       string          `json:"lastName,omitempty"       validate:"omitempty,max=100"`
	Email          string          `json:"email,omitempty"          validate:"omitempty,email"`
	Phone          string          `json:"phone,omitempty"          validate:"omitempty,max=30"`
	ServiceAddress string          `json:"serviceAddress,omitempty" validate:"omitempty,max=255"`
	City           string          `json:"city,omitempty"           validate:"omitempty,max=100"`
	State          string          `json:"state,omitempty"          validate:"omitempty,max=100"`
	ZipCode        string          `json:"zipCode,omitempty"        validate:"omitempty,max=10"`
	HomeType       string          `json:"homeType,omitempty"       validate:"omitempty,oneof=house apartment"`
	HomeSize       *HomeSizeUpdate `json:"homeSize,omitempty"`
}

func (r UpdateProfileRequest) IsEmpty() bool {
	return r == UpdateProfileRequest{}
}

// ProfileUpdate is the column set written by a profile update. Zero fields are skipped.
type ProfileUpdate struct {
	FirstName      string  `db:"first_name"`
	LastName       string  `db:"last_name"`
	Email          string  `db:"email"`
	Phone          string  `db:"phone"`
	ServiceAddress string  `db:"service_address"`
	City           string  `db:"city"`
	State          string  `db:"state"`
	ZipCode        string  `db:"zip_code"`
	HomeType       string  `db:"home_type"`
	Bedrooms       int     `db:"bedrooms"`
	Bathrooms      int     `db:"bathrooms"`
	CleaningPrice  float64 `db:"cleaning_price"`
}

func (r UpdateProfileRequest) ToUpdate() ProfileUpdate {
	update := ProfileUpdate{
		FirstName:      strings.TrimSpace(r.FirstName),
		LastName:       strings.TrimSpace(r.LastName),
		Email:          strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:          strings.TrimSpace(r.Phone),
		ServiceAddress: strings.TrimSpace(r.ServiceAddress),
		City:           strings.TrimSpace(r.City),
		State:          strings.TrimSpace(r.State),
		ZipCode:        strings.TrimSpace(r.ZipCode),
		HomeType:       r.HomeType,
	}

	if r.HomeSize != nil {
		update.Bedrooms = pricing.ClampRooms(r.HomeSize.Bedrooms)
		update.Bathrooms = pricing.ClampRooms(r.HomeSize.Bathrooms)
		update.CleaningPrice = pricing.PriceOf(update.Bedrooms, update.Bathrooms)
	}

	return update
}

// ApplyTo returns user with the update applied, mirroring what the database row becomes.
func (u ProfileUpdate) ApplyTo(user model.User) model.User {
	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}

	set(&user.FirstName, u.FirstName)
	set(&user.LastName, u.LastName)
	set(&user.Email, u.Email)
	set(&user.Phone, u.Phone)
	set(&user.ServiceAddress, u.ServiceAddress)
	set(&user.City, u.City)
	set(&user.State, u.State)
	set(&user.ZipCode, u.ZipCode)
	set(&user.HomeType, u.HomeType)

	if u.Bedrooms > 0 {
		user.Bedrooms = u.Bedrooms
		user.Bathrooms = u.Bathrooms
		user.CleaningPrice = u.CleaningPrice
	}

	return user
}

type UpdateProfileResponse struct {
	Message string          `json:"message"`
	User    ProfileResponse `json:"user"`
}
