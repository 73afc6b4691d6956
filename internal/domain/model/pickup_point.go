package model

import (
	"time"

	"github.com/thermopolio/thermopolio/internal/geo"
)

// PickupPoint is a restaurant location where customers collect orders.
type PickupPoint struct {
	ID            int64
	RestaurantID  int64
	Name          string
	Address       string
	Latitude      float64
	Longitude     float64
	BusinessHours string
	CreatedAt     time.Time
}

// Position implements geo.Locatable.
func (p PickupPoint) Position() (geo.Point, bool) {
	return geo.Point{Lat: p.Latitude, Lng: p.Longitude}, true
}
