package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/thermopolio/thermopolio/internal/domain/errors"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	"github.com/thermopolio/thermopolio/internal/domain/repository"
	"github.com/thermopolio/thermopolio/internal/geo"
)

// PickupPointUseCase manages restaurant pickup points.
type PickupPointUseCase struct {
	points repository.PickupPointRepository
}

// NewPickupPointUseCase constructs PickupPointUseCase.
func NewPickupPointUseCase(points repository.PickupPointRepository) *PickupPointUseCase {
	return &PickupPointUseCase{points: points}
}

// List returns the points of restaurantID, or all points when it is zero.
func (u *PickupPointUseCase) List(ctx context.Context, restaurantID int64) ([]model.PickupPoint, error) {
	return u.points.List(ctx, restaurantID)
}

// Nearby returns pickup points within radiusKm of origin, closest first.
func (u *PickupPointUseCase) Nearby(ctx context.Context, origin geo.Point, radiusKm float64) ([]geo.Located[model.PickupPoint], error) {
	if !origin.Valid() {
		return nil, domainErrors.Invalid("lat", "coordinate non valide")
	}
	points, err := u.points.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	return geo.Nearby(origin, points, radiusKm), nil
}

// Create stores a pickup point owned by the calling restaurant.
func (u *PickupPointUseCase) Create(ctx context.Context, actor model.Actor, point model.PickupPoint) (*model.PickupPoint, error) {
	if err := requireRole(actor, model.UserTypeRestaurant); err != nil {
		return nil, err
	}

	point.Name = strings.TrimSpace(point.Name)
	point.Address = strings.TrimSpace(point.Address)
	var fields []domainErrors.FieldError
	if point.Name == "" {
		fields = append(fields, domainErrors.FieldError{Field: "name", Message: "il nome è obbligatorio"})
	}
	if point.Address == "" {
		fields = append(fields, domainErrors.FieldError{Field: "address", Message: "l'indirizzo è obbligatorio"})
	}
	if !(geo.Point{Lat: point.Latitude, Lng: point.Longitude}).Valid() {
		fields = append(fields, domainErrors.FieldError{Field: "latitude", Message: "coordinate non valide"})
	}
	if len(fields) > 0 {
		return nil, &domainErrors.ValidationError{Fields: fields}
	}

	point.RestaurantID = actor.UserID
	return u.points.Create(ctx, point)
}
