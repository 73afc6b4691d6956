package model

import (
	"time"

	"github.com/thermopolio/thermopolio/internal/geo"
)

// UserType distinguishes marketplace roles.
type UserType string

const (
	UserTypeCustomer   UserType = "customer"
	UserTypeRestaurant UserType = "tavola_calda"
	UserTypeOnlus      UserType = "onlus"
)

// Valid reports whether t is a known role.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeCustomer, UserTypeRestaurant, UserTypeOnlus:
		return true
	}
	return false
}

// User is a registered account of any role. Role specific fields are
// left empty for the other roles.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	UserType     UserType
	Name         string
	Phone        string
	Address      string
	Latitude     *float64
	Longitude    *float64

	// tavola_calda
	BusinessName string
	BusinessType string

	// onlus
	AssistanceType string
	Activities     []string

	// customer
	FavoriteRestaurants []int64

	CreatedAt time.Time
}

// Position implements geo.Locatable.
func (u User) Position() (geo.Point, bool) {
	if u.Latitude == nil || u.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *u.Latitude, Lng: *u.Longitude}, true
}

// HasFavorite reports whether restaurantID is among the user's favourites.
func (u User) HasFavorite(restaurantID int64) bool {
	for _, id := range u.FavoriteRestaurants {
		if id == restaurantID {
			return true
		}
	}
	return false
}

// Registration holds the input for a new account.
type Registration struct {
	Username       string
	Password       string
	Email          string
	UserType       UserType
	Name           string
	Phone          string
	Address        string
	Latitude       *float64
	Longitude      *float64
	BusinessName   string
	BusinessType   string
	AssistanceType string
	Activities     []string
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID   int64
	UserType UserType
}

// Authenticated reports whether the actor carries a session.
func (a Actor) Authenticated() bool {
	return a.UserID > 0
}

// Is reports whether the actor has the given role.
func (a Actor) Is(t UserType) bool {
	return a.Authenticated() && a.UserType == t
}
