package dto

import (
	"cleanbook/infras/jwt"
	userModel "cleanbook/internal/domains/user/model"
	userDto "cleanbook/internal/domains/user/model/dto"
	"cleanbook/shared/constant"
	gModel "cleanbook/shared/model"
	"cleanbook/shared/pricing"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName      string           `json:"firstName"      validate:"required,notblank,max=100"`
	LastName       string           `json:"lastName"       validate:"required,notblank,max=100"`
	Email          string           `json:"email"          validate:"required,email"`
	Password       string           `json:"password"       validate:"required,min=8,max=72"`
	Phone          string           `json:"phone"          validate:"required,notblank,max=30"`
	ServiceAddress string           `json:"serviceAddress" validate:"required,notblank,max=255"`
	City           string           `json:"city"           validate:"required,notblank,max=100"`
	State          string           `json:"state"          validate:"required,notblank,max=100"`
	ZipCode        string           `json:"zipCode"        validate:"required,notblank,max=10"`
	HomeType       string           `json:"homeType"       validate:"omitempty,oneof=house apartment"`
	HomeSize       userDto.HomeSize `json:"homeSize"       validate:"required"`
	Role           string           `json:"role"           validate:"omitempty,oneof=admin user"`
}

func (r *RegisterRequest) ToUserModel(actor, hashedPassword string, now time.Time) userModel.User {
	homeType := r.HomeType
	if homeType == "" {
		homeType = userModel.HomeTypeApartment
	}

	role := r.Role
	if role == "" {
		role = constant.RoleUser
	}

	return userModel.User{
		ID:             uuid.NewString(),
		Email:          strings.ToLower(strings.TrimSpace(r.Email)),
		Password:       hashedPassword,
		FirstName:      strings.TrimSpace(r.FirstName),
		LastName:       strings.TrimSpace(r.LastName),
		Phone:          strings.TrimSpace(r.Phone),
		ServiceAddress: strings.TrimSpace(r.ServiceAddress),
		City:           strings.TrimSpace(r.City),
		State:          strings.TrimSpace(r.State),
		ZipCode:        strings.TrimSpace(r.ZipCode),
		HomeType:       homeType,
		Bedrooms:       r.HomeSize.Bedrooms,
		Bathrooms:      r.HomeSize.Bathrooms,
		CleaningPrice:  pricing.PriceOf(r.HomeSize.Bedrooms, r.HomeSize.Bathrooms),
		Role:           role,
		Metadata:       gModel.NewMetadata(actor, now),
	}
}

type RegisterResponse struct {
	ID            string  `json:"id"`
	Message       string  `json:"message"`
	CleaningPrice float64 `json:"cleaningPrice"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Message      string    `json:"message"`
	User         LoginUser `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresIn    int64     `json:"expiresIn"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}
