package dto

import (
	"time"

	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/geo"
)

// RegisterRequest describes the sign-up payload.
type RegisterRequest struct {
	Username       string   `json:"username" binding:"required,min=3,max=50"`
	Password       string   `json:"password" binding:"required,min=6"`
	Email          string   `json:"email" binding:"required,email"`
	UserType       string   `json:"userType" binding:"required,oneof=customer tavola_calda onlus"`
	Name           string   `json:"name" binding:"max=100"`
	Phone          string   `json:"phone" binding:"max=30"`
	Address        string   `json:"address" binding:"max=200"`
	Latitude       *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude      *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	BusinessName   string   `json:"businessName" binding:"max=100"`
	BusinessType   string   `json:"businessType" binding:"max=100"`
	AssistanceType string   `json:"assistanceType" binding:"max=100"`
	Activities     []string `json:"activities"`
}

// Registration converts the payload to the domain input.
func (r RegisterRequest) Registration() model.Registration {
	return model.Registration{
		Username:       r.Username,
		Password:       r.Password,
		Email:          r.Email,
		UserType:       model.UserType(r.UserType),
		Name:           r.Name,
		Phone:          r.Phone,
		Address:        r.Address,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		BusinessName:   r.BusinessName,
		BusinessType:   r.BusinessType,
		AssistanceType: r.AssistanceType,
		Activities:     r.Activities,
	}
}

// LoginRequest describes username/password payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID                  int64     `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	UserType            string    `json:"userType"`
	Name                string    `json:"name,omitempty"`
	Phone               string    `json:"phone,omitempty"`
	Address             string    `json:"address,omitempty"`
	Latitude            *float64  `json:"latitude,omitempty"`
	Longitude           *float64  `json:"longitude,omitempty"`
	BusinessName        string    `json:"businessName,omitempty"`
	BusinessType        string    `json:"businessType,omitempty"`
	AssistanceType      string    `json:"assistanceType,omitempty"`
	Activities          []string  `json:"activities,omitempty"`
	FavoriteRestaurants []int64   `json:"favoriteRestaurants,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

// NewUserResponse maps a user without its password hash.
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		UserType:            string(u.UserType),
		Name:                u.Name,
		Phone:               u.Phone,
		Address:             u.Address,
		Latitude:            u.Latitude,
		Longitude:           u.Longitude,
		BusinessName:        u.BusinessName,
		BusinessType:        u.BusinessType,
		AssistanceType:      u.AssistanceType,
		Activities:          u.Activities,
		FavoriteRestaurants: u.FavoriteRestaurants,
		CreatedAt:           u.CreatedAt,
	}
}

// NewUserList maps a slice of users.
func NewUserList(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// NearbyUserResponse is a user annotated with its distance in kilometres.
type NearbyUserResponse struct {
	UserResponse
	Distance float64 `json:"distance"`
}

// NewNearbyUserList maps geo lookup results.
func NewNearbyUserList(items []geo.Located[model.User]) []NearbyUserResponse {
	out := make([]NearbyUserResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NearbyUserResponse{UserResponse: NewUserResponse(it.Item), Distance: it.DistanceKm})
	}
	return out
}
